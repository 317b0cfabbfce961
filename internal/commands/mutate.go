package commands

import (
	"errors"
	"fmt"

	"github.com/raskcli/rask/internal/deps"
	"github.com/raskcli/rask/internal/task"
)

// HasDependentsError reports a remove attempt on a task other tasks still
// depend on. The caller may retry with force.
type HasDependentsError struct {
	ID         int
	Dependents []int
}

func (e *HasDependentsError) Error() string {
	return fmt.Sprintf("task %d is a dependency of tasks %v; use --force to remove it anyway", e.ID, e.Dependents)
}

// AddParams carries the validated-on-entry fields for a new task.
type AddParams struct {
	Description    string
	Tags           []string
	Priority       string
	Phase          string
	Notes          string
	Dependencies   []int
	EstimatedHours *float64
	AIInfo         *task.AIInfo
}

// MutationResult reports a successful mutation plus any markdown sync
// warning that accompanied it.
type MutationResult struct {
	Task        *task.Task
	SyncWarning error
}

// Add validates the fields, performs a trial insertion so dependency
// problems reject before anything is persisted, then saves and syncs.
func (e *Engine) Add(p AddParams) (*MutationResult, error) {
	if err := task.ValidateDescription(p.Description); err != nil {
		return nil, err
	}
	for _, tag := range p.Tags {
		if err := task.ValidateTag(tag); err != nil {
			return nil, err
		}
	}
	if p.Notes != "" {
		if err := task.ValidateNotes(p.Notes); err != nil {
			return nil, err
		}
	}
	if p.EstimatedHours != nil {
		if err := task.ValidateEstimatedHours(*p.EstimatedHours); err != nil {
			return nil, err
		}
	}

	priority := task.PriorityMedium
	if p.Priority != "" {
		var err error
		priority, err = task.ParsePriority(p.Priority)
		if err != nil {
			return nil, err
		}
	}
	phase := task.DefaultPhase()
	if p.Phase != "" {
		phase = task.NewPhase(p.Phase)
	}

	r, st, err := e.load()
	if err != nil {
		return nil, err
	}

	t := task.Task{
		Description:    p.Description,
		Status:         task.StatusPending,
		Tags:           p.Tags,
		Priority:       priority,
		Phase:          phase,
		Dependencies:   dedupe(p.Dependencies),
		CreatedAt:      e.now(),
		EstimatedHours: p.EstimatedHours,
		AIInfo:         p.AIInfo,
	}
	if p.Notes != "" {
		notes := p.Notes
		t.Notes = &notes
	}

	id := r.Add(t)
	if errs := deps.Validate(r, id); len(errs) > 0 {
		// Trial insertion failed; nothing has been written.
		return nil, errors.Join(errs...)
	}

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.touchProject()
	e.log.WithCommand("add").WithTask(id).Info("task added")
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}

// CompleteResult reports a completion, the tasks it unblocked, and whether
// the task was already completed (a warning, not an error).
type CompleteResult struct {
	Task             *task.Task
	AlreadyCompleted bool
	NewlyUnblocked   []int
	SyncWarning      error
}

// Complete marks a task completed. A task whose dependencies are not all
// completed is rejected with the list of unmet dependency IDs. Completing
// an already-completed task changes nothing.
func (e *Engine) Complete(id int) (*CompleteResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	if t.Status == task.StatusCompleted {
		return &CompleteResult{Task: t, AlreadyCompleted: true}, nil
	}
	if err := deps.CheckReady(r, id); err != nil {
		return nil, err
	}

	r.MarkCompleted(id, e.now())
	unblocked := deps.NewlyUnblocked(r, id)

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.touchProject()
	e.log.WithCommand("complete").WithTask(id).WithField("unblocked", unblocked).Info("task completed")
	return &CompleteResult{Task: r.Find(id), NewlyUnblocked: unblocked, SyncWarning: syncWarn}, nil
}

// Edit replaces a task's description.
func (e *Engine) Edit(id int, description string) (*MutationResult, error) {
	if err := task.ValidateDescription(description); err != nil {
		return nil, err
	}
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	t.Description = description

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.touchProject()
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}

// RemoveResult reports a removal.
type RemoveResult struct {
	Removed     task.Task
	Renumbered  int
	SyncWarning error
}

// Remove deletes a task. Without force, a task that other tasks depend on
// is rejected. Survivors are renumbered to keep IDs dense and their
// dependency lists rewritten.
func (e *Engine) Remove(id int, force bool) (*RemoveResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	if r.Find(id) == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	if dependents := deps.Dependents(r, id); len(dependents) > 0 && !force {
		return nil, &HasDependentsError{ID: id, Dependents: dependents}
	}

	removed, _ := r.Remove(id)

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.touchProject()
	e.log.WithCommand("remove").WithTask(id).Info("task removed")
	return &RemoveResult{Removed: removed, Renumbered: len(r.Tasks), SyncWarning: syncWarn}, nil
}

// Reset reverts the listed tasks to pending, or every task when ids is
// empty, clearing completed_at.
func (e *Engine) Reset(ids []int) (*MutationResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		for i := range r.Tasks {
			r.ResetTask(r.Tasks[i].ID)
		}
	} else {
		for _, id := range ids {
			if !r.ResetTask(id) {
				return nil, &task.NotFoundError{ID: id}
			}
		}
	}

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.touchProject()
	return &MutationResult{SyncWarning: syncWarn}, nil
}

// dedupe drops repeated dependency IDs, keeping first occurrence order.
func dedupe(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
