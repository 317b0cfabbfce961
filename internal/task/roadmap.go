package task

import (
	"time"
)

// Roadmap is the top-level aggregate for one project.
type Roadmap struct {
	Title      string   `json:"title"`
	Tasks      []Task   `json:"tasks"`
	SourceFile string   `json:"source_file,omitempty"`
	Metadata   Metadata `json:"metadata"`
	ProjectID  string   `json:"project_id,omitempty"`
}

// Metadata carries bookkeeping fields for a roadmap.
type Metadata struct {
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
	Version      string    `json:"version"`
}

// CurrentVersion is written into new roadmap metadata.
const CurrentVersion = "1.0.0"

// NewRoadmap builds an empty roadmap with fresh metadata.
func NewRoadmap(title string, now time.Time) *Roadmap {
	return &Roadmap{
		Title: title,
		Metadata: Metadata{
			Name:         title,
			CreatedAt:    now,
			LastModified: now,
			Version:      CurrentVersion,
		},
	}
}

// Touch updates the last-modified timestamp.
func (r *Roadmap) Touch(now time.Time) {
	r.Metadata.LastModified = now
}

// Find returns the task with the given ID, or nil.
func (r *Roadmap) Find(id int) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			return &r.Tasks[i]
		}
	}
	return nil
}

// NextID returns the ID the next added task will receive.
func (r *Roadmap) NextID() int {
	max := 0
	for i := range r.Tasks {
		if r.Tasks[i].ID > max {
			max = r.Tasks[i].ID
		}
	}
	return max + 1
}

// Add appends a task, assigning it the next ID, and returns that ID.
func (r *Roadmap) Add(t Task) int {
	t.ID = r.NextID()
	r.Tasks = append(r.Tasks, t)
	return t.ID
}

// Remove deletes the task with the given ID and renumbers the survivors so
// IDs stay dense and 1-based. Dependency lists are rewritten with the same
// old-to-new map; references to the removed task are dropped.
func (r *Roadmap) Remove(id int) (Task, bool) {
	return r.RemoveMany([]int{id})
}

// RemoveMany deletes every listed task in one pass, then renumbers.
// Returns the first removed task (by original ID order) and whether
// anything was removed.
func (r *Roadmap) RemoveMany(ids []int) (Task, bool) {
	doomed := make(map[int]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	var first Task
	var removed bool
	survivors := r.Tasks[:0]
	for _, t := range r.Tasks {
		if doomed[t.ID] {
			if !removed || t.ID < first.ID {
				first = t
			}
			removed = true
			continue
		}
		survivors = append(survivors, t)
	}
	if !removed {
		return Task{}, false
	}
	r.Tasks = survivors
	r.renumber()
	return first, true
}

// renumber rewrites task IDs to 1..N in slice order. Two passes: first build
// the old-to-new map, then rewrite IDs and dependency lists. Dependencies
// pointing at IDs that no longer exist are dropped.
func (r *Roadmap) renumber() {
	oldToNew := make(map[int]int, len(r.Tasks))
	for i := range r.Tasks {
		oldToNew[r.Tasks[i].ID] = i + 1
	}
	for i := range r.Tasks {
		r.Tasks[i].ID = i + 1
		if len(r.Tasks[i].Dependencies) == 0 {
			continue
		}
		deps := r.Tasks[i].Dependencies[:0]
		for _, d := range r.Tasks[i].Dependencies {
			if nd, ok := oldToNew[d]; ok {
				deps = append(deps, nd)
			}
		}
		if len(deps) == 0 {
			r.Tasks[i].Dependencies = nil
		} else {
			r.Tasks[i].Dependencies = deps
		}
	}
}

// MarkCompleted transitions a task to completed and stamps completed_at.
func (r *Roadmap) MarkCompleted(id int, now time.Time) bool {
	t := r.Find(id)
	if t == nil {
		return false
	}
	t.Status = StatusCompleted
	t.CompletedAt = &now
	return true
}

// ResetTask reverts a task to pending and clears completed_at.
func (r *Roadmap) ResetTask(id int) bool {
	t := r.Find(id)
	if t == nil {
		return false
	}
	t.Status = StatusPending
	t.CompletedAt = nil
	return true
}

// ActiveSession returns the task ID owning the single active time session,
// if one exists anywhere in the roadmap.
func (r *Roadmap) ActiveSession() (int, *TimeSession, bool) {
	for i := range r.Tasks {
		if s := r.Tasks[i].ActiveSession(); s != nil {
			return r.Tasks[i].ID, s, true
		}
	}
	return 0, nil, false
}

// StartSession opens a time session on the given task. At most one session
// may be active across the whole roadmap; a second start is rejected at
// this call site.
func (r *Roadmap) StartSession(id int, description string, now time.Time) error {
	if activeID, _, ok := r.ActiveSession(); ok {
		return &SessionActiveError{TaskID: activeID}
	}
	t := r.Find(id)
	if t == nil {
		return &NotFoundError{ID: id}
	}
	session := TimeSession{StartTime: now}
	if description != "" {
		session.Description = &description
	}
	t.TimeSessions = append(t.TimeSessions, session)
	return nil
}

// StopSession closes the active session, derives its duration, and updates
// the owning task's actual_hours. Returns the task ID and the session
// duration in minutes.
func (r *Roadmap) StopSession(now time.Time) (int, int64, error) {
	id, session, ok := r.ActiveSession()
	if !ok {
		return 0, 0, ErrNoActiveSession
	}
	session.Close(now)
	t := r.Find(id)
	t.RecalcActualHours()
	return id, *session.DurationMinutes, nil
}

// Progress returns the number of completed tasks and the total.
func (r *Roadmap) Progress() (completed, total int) {
	for i := range r.Tasks {
		if r.Tasks[i].Status == StatusCompleted {
			completed++
		}
	}
	return completed, len(r.Tasks)
}

// Phases returns every phase in use, in display order, without duplicates.
func (r *Roadmap) Phases() []Phase {
	seen := make(map[string]bool)
	var phases []Phase
	for i := range r.Tasks {
		p := r.Tasks[i].Phase
		if p.IsZero() || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		phases = append(phases, p)
	}
	SortPhases(phases)
	return phases
}

// Normalize fills defaults for fields older state files may omit. Called
// after every load so downstream code can rely on them.
func (r *Roadmap) Normalize() {
	for i := range r.Tasks {
		t := &r.Tasks[i]
		if t.Status == "" {
			t.Status = StatusPending
		}
		if t.Priority == "" {
			t.Priority = PriorityMedium
		}
		if t.Phase.IsZero() {
			t.Phase = DefaultPhase()
		}
	}
	if r.Metadata.Version == "" {
		r.Metadata.Version = CurrentVersion
	}
	if r.Metadata.Name == "" {
		r.Metadata.Name = r.Title
	}
}
