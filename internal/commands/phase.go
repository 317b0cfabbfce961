package commands

import (
	"github.com/raskcli/rask/internal/task"
)

// PhaseInfo summarizes one phase for overview rendering.
type PhaseInfo struct {
	Phase     task.Phase
	Total     int
	Completed int
}

// PhaseOverview returns the predefined phases plus any custom phases in
// use, each with completion counts, in display order.
func (e *Engine) PhaseOverview() ([]PhaseInfo, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*PhaseInfo)
	var order []task.Phase
	for _, name := range []string{task.PhaseMVP, task.PhaseBeta, task.PhaseRelease, task.PhaseFuture, task.PhaseBacklog} {
		p := task.NewPhase(name)
		byName[p.Name] = &PhaseInfo{Phase: p}
		order = append(order, p)
	}
	for i := range r.Tasks {
		p := r.Tasks[i].Phase
		info, ok := byName[p.Name]
		if !ok {
			info = &PhaseInfo{Phase: p}
			byName[p.Name] = info
			order = append(order, p)
		}
		info.Total++
		if r.Tasks[i].Status == task.StatusCompleted {
			info.Completed++
		}
	}

	task.SortPhases(order)
	out := make([]PhaseInfo, 0, len(order))
	for _, p := range order {
		out = append(out, *byName[p.Name])
	}
	return out, nil
}

// PhaseShow returns the tasks assigned to the named phase.
func (e *Engine) PhaseShow(name string) ([]task.Task, task.Phase, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, task.Phase{}, err
	}
	p := task.NewPhase(name)
	var out []task.Task
	for i := range r.Tasks {
		if r.Tasks[i].Phase.Equal(p) {
			out = append(out, r.Tasks[i])
		}
	}
	return out, p, nil
}

// PhaseSet assigns a phase to one task.
func (e *Engine) PhaseSet(id int, name string) (*MutationResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	t.Phase = task.NewPhase(name)

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}

// PhaseCreate registers a custom phase by assigning it to the given tasks.
// A name that canonicalizes to a predefined phase uses that phase instead.
func (e *Engine) PhaseCreate(name, description, emoji string, ids []int) (task.Phase, *BulkResult, error) {
	if name == "" {
		return task.Phase{}, nil, &task.ValidationError{Field: "phase", Reason: "name must not be empty"}
	}
	p := task.NewCustomPhase(name, description, emoji)
	if len(ids) == 0 {
		return p, &BulkResult{}, nil
	}
	res, err := e.bulkApply(ids, func(r *task.Roadmap, id int) error {
		t := r.Find(id)
		if t == nil {
			return &task.NotFoundError{ID: id}
		}
		t.Phase = p
		return nil
	})
	return p, res, err
}

// PhaseFork clones a task into another phase as a fresh pending task. The
// clone keeps tags, priority, notes, estimate, and dependencies but no
// completion state or time sessions.
func (e *Engine) PhaseFork(id int, phaseName string) (*MutationResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	src := r.Find(id)
	if src == nil {
		return nil, &task.NotFoundError{ID: id}
	}

	clone := task.Task{
		Description:    src.Description,
		Status:         task.StatusPending,
		Tags:           append([]string(nil), src.Tags...),
		Priority:       src.Priority,
		Phase:          task.NewPhase(phaseName),
		Notes:          src.Notes,
		Dependencies:   append([]int(nil), src.Dependencies...),
		CreatedAt:      e.now(),
		EstimatedHours: src.EstimatedHours,
	}
	newID := r.Add(clone)

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	return &MutationResult{Task: r.Find(newID), SyncWarning: syncWarn}, nil
}
