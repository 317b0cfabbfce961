package commands

import (
	"strings"

	"github.com/raskcli/rask/internal/deps"
	"github.com/raskcli/rask/internal/task"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterPending   StatusFilter = "pending"
	StatusFilterCompleted StatusFilter = "completed"
)

// Filter is the predicate applied by List. Zero value matches everything.
type Filter struct {
	// Tags matches tasks carrying any of the listed tags.
	Tags []string

	// Priority matches exactly when set.
	Priority *task.Priority

	// Phase matches the canonical phase name when non-empty.
	Phase string

	// Status defaults to all.
	Status StatusFilter

	// Search is a case-insensitive substring over description, tags,
	// and notes.
	Search string
}

// Matches applies the filter to one task.
func (f *Filter) Matches(t *task.Task) bool {
	switch f.Status {
	case StatusFilterPending:
		if t.Status != task.StatusPending {
			return false
		}
	case StatusFilterCompleted:
		if t.Status != task.StatusCompleted {
			return false
		}
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Phase != "" && !t.Phase.Equal(task.NewPhase(f.Phase)) {
		return false
	}
	if len(f.Tags) > 0 {
		found := false
		for _, tag := range f.Tags {
			if t.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(t.Description)
		if t.Notes != nil {
			haystack += "\n" + strings.ToLower(*t.Notes)
		}
		for _, tag := range t.Tags {
			haystack += "\n" + strings.ToLower(tag)
		}
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

// Show loads the full roadmap for rendering.
func (e *Engine) Show() (*task.Roadmap, error) {
	r, _, err := e.load()
	return r, err
}

// List returns the tasks matching the filter, in ID order, together with
// the roadmap they came from.
func (e *Engine) List(f Filter) ([]task.Task, *task.Roadmap, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	var out []task.Task
	for i := range r.Tasks {
		if f.Matches(&r.Tasks[i]) {
			out = append(out, r.Tasks[i])
		}
	}
	return out, r, nil
}

// View returns one task and its roadmap for the detailed view.
func (e *Engine) View(id int) (*task.Task, *task.Roadmap, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, nil, &task.NotFoundError{ID: id}
	}
	return t, r, nil
}

// ValidateDependencies runs whole-graph validation.
func (e *Engine) ValidateDependencies() ([]error, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, err
	}
	return deps.ValidateAll(r), nil
}

// DependencyTree returns the tree rooted at id.
func (e *Engine) DependencyTree(id int) (*deps.Node, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, err
	}
	if r.Find(id) == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	return deps.Tree(r, id), nil
}

// ReadyTasks returns the pending tasks whose dependencies are all complete.
func (e *Engine) ReadyTasks() ([]task.Task, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, err
	}
	return deps.Ready(r), nil
}

// BlockedTasks returns the pending tasks that are not ready, with the
// dependencies still holding each one back.
func (e *Engine) BlockedTasks() ([]BlockedTask, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, err
	}
	var out []BlockedTask
	for _, t := range deps.Blocked(r) {
		out = append(out, BlockedTask{
			Task:    t,
			Missing: deps.MissingCompleted(r, t.ID),
		})
	}
	return out, nil
}

// BlockedTask pairs a blocked task with its unmet dependencies.
type BlockedTask struct {
	Task    task.Task
	Missing []int
}
