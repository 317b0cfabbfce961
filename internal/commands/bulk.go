package commands

import (
	"github.com/raskcli/rask/internal/deps"
	"github.com/raskcli/rask/internal/task"
)

// BulkFailure records why one ID in a bulk operation was skipped.
type BulkFailure struct {
	ID  int
	Err error
}

// BulkResult reports which IDs a bulk operation applied to and which it
// skipped. Per-task failures never abort the rest of the batch.
type BulkResult struct {
	Succeeded   []int
	Failed      []BulkFailure
	SyncWarning error
}

// bulkApply loads once, applies fn per ID collecting failures, and persists
// once if anything succeeded.
func (e *Engine) bulkApply(ids []int, fn func(r *task.Roadmap, id int) error) (*BulkResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}

	res := &BulkResult{}
	for _, id := range dedupe(ids) {
		if err := fn(r, id); err != nil {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Err: err})
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	if len(res.Succeeded) == 0 {
		return res, nil
	}

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.touchProject()
	res.SyncWarning = syncWarn
	return res, nil
}

// BulkComplete completes each listed task that is ready, skipping the rest.
// Earlier completions in the batch can make later ones ready.
func (e *Engine) BulkComplete(ids []int) (*BulkResult, error) {
	return e.bulkApply(ids, func(r *task.Roadmap, id int) error {
		t := r.Find(id)
		if t == nil {
			return &task.NotFoundError{ID: id}
		}
		if t.Status == task.StatusCompleted {
			return nil
		}
		if err := deps.CheckReady(r, id); err != nil {
			return err
		}
		r.MarkCompleted(id, e.now())
		return nil
	})
}

// BulkAddTags adds every tag to each listed task.
func (e *Engine) BulkAddTags(ids []int, tags []string) (*BulkResult, error) {
	for _, tag := range tags {
		if err := task.ValidateTag(tag); err != nil {
			return nil, err
		}
	}
	return e.bulkApply(ids, func(r *task.Roadmap, id int) error {
		t := r.Find(id)
		if t == nil {
			return &task.NotFoundError{ID: id}
		}
		for _, tag := range tags {
			t.AddTag(tag)
		}
		return nil
	})
}

// BulkRemoveTags removes every tag from each listed task.
func (e *Engine) BulkRemoveTags(ids []int, tags []string) (*BulkResult, error) {
	return e.bulkApply(ids, func(r *task.Roadmap, id int) error {
		t := r.Find(id)
		if t == nil {
			return &task.NotFoundError{ID: id}
		}
		for _, tag := range tags {
			t.RemoveTag(tag)
		}
		return nil
	})
}

// BulkSetPriority sets the priority on each listed task.
func (e *Engine) BulkSetPriority(ids []int, priority string) (*BulkResult, error) {
	p, err := task.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	return e.bulkApply(ids, func(r *task.Roadmap, id int) error {
		t := r.Find(id)
		if t == nil {
			return &task.NotFoundError{ID: id}
		}
		t.Priority = p
		return nil
	})
}

// BulkSetPhase assigns the phase to each listed task.
func (e *Engine) BulkSetPhase(ids []int, phase string) (*BulkResult, error) {
	p := task.NewPhase(phase)
	return e.bulkApply(ids, func(r *task.Roadmap, id int) error {
		t := r.Find(id)
		if t == nil {
			return &task.NotFoundError{ID: id}
		}
		t.Phase = p
		return nil
	})
}

// BulkReset reverts each listed task to pending.
func (e *Engine) BulkReset(ids []int) (*BulkResult, error) {
	return e.bulkApply(ids, func(r *task.Roadmap, id int) error {
		if !r.ResetTask(id) {
			return &task.NotFoundError{ID: id}
		}
		return nil
	})
}

// BulkRemove applies the per-task dependent check to each ID, treating
// other tasks in the batch as already gone, then removes the survivors of
// the check in one pass so renumbering happens exactly once.
func (e *Engine) BulkRemove(ids []int, force bool) (*BulkResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}

	batch := make(map[int]bool, len(ids))
	for _, id := range ids {
		batch[id] = true
	}

	res := &BulkResult{}
	var removable []int
	for _, id := range dedupe(ids) {
		if r.Find(id) == nil {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Err: &task.NotFoundError{ID: id}})
			continue
		}
		if !force {
			var outside []int
			for _, dep := range deps.Dependents(r, id) {
				if !batch[dep] {
					outside = append(outside, dep)
				}
			}
			if len(outside) > 0 {
				res.Failed = append(res.Failed, BulkFailure{ID: id, Err: &HasDependentsError{ID: id, Dependents: outside}})
				continue
			}
		}
		removable = append(removable, id)
		res.Succeeded = append(res.Succeeded, id)
	}
	if len(removable) == 0 {
		return res, nil
	}

	r.RemoveMany(removable)

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.touchProject()
	res.SyncWarning = syncWarn
	return res, nil
}
