// Package deps implements dependency validation and readiness queries over
// a roadmap: existence and acyclicity checks, the ready/blocked partition,
// transitive chains, dependency trees, and the newly-unblocked set after a
// completion.
package deps

import (
	"fmt"

	"github.com/raskcli/rask/internal/task"
)

// MissingDependencyError reports a dependency on a task ID that does not
// exist in the roadmap.
type MissingDependencyError struct {
	TaskID int
	DepID  int
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("task %d depends on missing task %d", e.TaskID, e.DepID)
}

// CircularDependencyError reports a cycle in the dependency graph. Cycle is
// the path from the first occurrence of the re-encountered task back to
// itself, inclusive on both ends.
type CircularDependencyError struct {
	Cycle []int
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %v", e.Cycle)
}

// NotReadyError reports a completion attempt on a task whose dependencies
// are not all completed.
type NotReadyError struct {
	TaskID           int
	MissingCompleted []int
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("task %d is not ready: depends on incomplete tasks %v", e.TaskID, e.MissingCompleted)
}

// Validate checks a single task: it must exist, every dependency must
// exist, and no dependency path may loop back. Returns all problems found.
func Validate(r *task.Roadmap, id int) []error {
	t := r.Find(id)
	if t == nil {
		return []error{&task.NotFoundError{ID: id}}
	}

	var errs []error
	for _, d := range t.Dependencies {
		if r.Find(d) == nil {
			errs = append(errs, &MissingDependencyError{TaskID: id, DepID: d})
		}
	}
	if cycle := findCycle(r, id); cycle != nil {
		errs = append(errs, &CircularDependencyError{Cycle: cycle})
	}
	return errs
}

// ValidateAll validates every task and concatenates the per-task errors.
func ValidateAll(r *task.Roadmap) []error {
	var errs []error
	for i := range r.Tasks {
		errs = append(errs, Validate(r, r.Tasks[i].ID)...)
	}
	return errs
}

// findCycle runs a DFS from id tracking the current path. When a task
// already on the path is re-encountered, the returned cycle is the path
// slice from its first occurrence through the re-encounter.
func findCycle(r *task.Roadmap, id int) []int {
	var path []int
	onPath := make(map[int]int) // id -> index in path
	var visit func(id int) []int
	visit = func(id int) []int {
		if at, ok := onPath[id]; ok {
			cycle := make([]int, 0, len(path)-at+1)
			cycle = append(cycle, path[at:]...)
			cycle = append(cycle, id)
			return cycle
		}
		t := r.Find(id)
		if t == nil {
			return nil
		}
		onPath[id] = len(path)
		path = append(path, id)
		for _, d := range t.Dependencies {
			if cycle := visit(d); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		delete(onPath, id)
		return nil
	}
	return visit(id)
}

// IsReady reports whether a pending task has every dependency completed.
// Completed tasks are never ready; a dependency on a missing task blocks.
func IsReady(r *task.Roadmap, t *task.Task) bool {
	if t.Status != task.StatusPending {
		return false
	}
	for _, d := range t.Dependencies {
		dep := r.Find(d)
		if dep == nil || dep.Status != task.StatusCompleted {
			return false
		}
	}
	return true
}

// MissingCompleted lists the dependencies of id that are not completed,
// including references to missing tasks.
func MissingCompleted(r *task.Roadmap, id int) []int {
	t := r.Find(id)
	if t == nil {
		return nil
	}
	var missing []int
	for _, d := range t.Dependencies {
		dep := r.Find(d)
		if dep == nil || dep.Status != task.StatusCompleted {
			missing = append(missing, d)
		}
	}
	return missing
}

// CheckReady returns a NotReadyError when the task cannot be completed yet.
func CheckReady(r *task.Roadmap, id int) error {
	t := r.Find(id)
	if t == nil {
		return &task.NotFoundError{ID: id}
	}
	if missing := MissingCompleted(r, id); len(missing) > 0 {
		return &NotReadyError{TaskID: id, MissingCompleted: missing}
	}
	return nil
}

// Ready returns the pending tasks whose dependencies are all completed.
func Ready(r *task.Roadmap) []task.Task {
	var out []task.Task
	for i := range r.Tasks {
		if IsReady(r, &r.Tasks[i]) {
			out = append(out, r.Tasks[i])
		}
	}
	return out
}

// Blocked returns the pending tasks that are not ready.
func Blocked(r *task.Roadmap) []task.Task {
	var out []task.Task
	for i := range r.Tasks {
		t := &r.Tasks[i]
		if t.Status == task.StatusPending && !IsReady(r, t) {
			out = append(out, *t)
		}
	}
	return out
}

// Chain returns every task id transitively depends on, in discovery order,
// without duplicates and without id itself. Cycles and missing references
// are simply not descended into; Validate reports those.
func Chain(r *task.Roadmap, id int) []int {
	seen := map[int]bool{id: true}
	var order []int
	var visit func(id int)
	visit = func(cur int) {
		t := r.Find(cur)
		if t == nil {
			return
		}
		for _, d := range t.Dependencies {
			if seen[d] {
				continue
			}
			seen[d] = true
			order = append(order, d)
			visit(d)
		}
	}
	visit(id)
	return order
}

// Dependents returns the IDs of every task whose dependency list contains id.
func Dependents(r *task.Roadmap, id int) []int {
	var out []int
	for i := range r.Tasks {
		for _, d := range r.Tasks[i].Dependencies {
			if d == id {
				out = append(out, r.Tasks[i].ID)
				break
			}
		}
	}
	return out
}

// Node is one node of a dependency tree.
type Node struct {
	ID          int
	Description string
	Status      task.Status
	Circular    bool
	NotFound    bool
	Children    []*Node
}

// Tree builds the dependency tree rooted at id. A task re-encountered along
// the current path yields a circular marker leaf; unknown IDs yield
// not-found leaves instead of failing.
func Tree(r *task.Roadmap, id int) *Node {
	onPath := make(map[int]bool)
	var build func(id int) *Node
	build = func(id int) *Node {
		t := r.Find(id)
		if t == nil {
			return &Node{ID: id, NotFound: true}
		}
		if onPath[id] {
			return &Node{ID: id, Description: t.Description, Status: t.Status, Circular: true}
		}
		node := &Node{ID: id, Description: t.Description, Status: t.Status}
		onPath[id] = true
		for _, d := range t.Dependencies {
			node.Children = append(node.Children, build(d))
		}
		delete(onPath, id)
		return node
	}
	return build(id)
}

// NewlyUnblocked returns the pending tasks that become ready as a direct
// consequence of completing completedID: they depend on it, and every
// other dependency is already completed.
func NewlyUnblocked(r *task.Roadmap, completedID int) []int {
	var out []int
	for i := range r.Tasks {
		t := &r.Tasks[i]
		if t.Status != task.StatusPending {
			continue
		}
		dependsOnCompleted := false
		for _, d := range t.Dependencies {
			if d == completedID {
				dependsOnCompleted = true
				break
			}
		}
		if !dependsOnCompleted {
			continue
		}
		if IsReady(r, t) {
			out = append(out, t.ID)
		}
	}
	return out
}
