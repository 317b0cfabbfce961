// Package task defines the roadmap data model: tasks, phases, time
// sessions, and the roadmap aggregate that owns them. All mutation helpers
// keep the model invariants (dense 1-based IDs, at most one active time
// session, completed_at set iff completed).
package task

import (
	"math"
	"time"
)

// Status represents the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Priority represents task priority levels.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Weight returns the sort weight of a priority; higher is more urgent.
func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Task is a single unit of work in a roadmap.
type Task struct {
	ID                  int           `json:"id"`
	Description         string        `json:"description"`
	Status              Status        `json:"status"`
	Tags                []string      `json:"tags,omitempty"`
	Priority            Priority      `json:"priority,omitempty"`
	Phase               Phase         `json:"phase,omitempty"`
	Notes               *string       `json:"notes,omitempty"`
	ImplementationNotes []string      `json:"implementation_notes,omitempty"`
	Dependencies        []int         `json:"dependencies,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	CompletedAt         *time.Time    `json:"completed_at,omitempty"`
	EstimatedHours      *float64      `json:"estimated_hours,omitempty"`
	ActualHours         *float64      `json:"actual_hours,omitempty"`
	TimeSessions        []TimeSession `json:"time_sessions,omitempty"`
	AIInfo              *AIInfo       `json:"ai_info,omitempty"`
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// AddTag appends a tag if not already present.
func (t *Task) AddTag(tag string) {
	if !t.HasTag(tag) {
		t.Tags = append(t.Tags, tag)
	}
}

// RemoveTag drops a tag if present and reports whether it was there.
func (t *Task) RemoveTag(tag string) bool {
	for i, existing := range t.Tags {
		if existing == tag {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// ActiveSession returns the open time session on this task, if any.
func (t *Task) ActiveSession() *TimeSession {
	for i := range t.TimeSessions {
		if t.TimeSessions[i].Active() {
			return &t.TimeSessions[i]
		}
	}
	return nil
}

// RecalcActualHours recomputes actual_hours as the sum of closed session
// durations. A task with no closed sessions has no actual_hours.
func (t *Task) RecalcActualHours() {
	var minutes int64
	var closed bool
	for _, s := range t.TimeSessions {
		if s.DurationMinutes != nil {
			minutes += *s.DurationMinutes
			closed = true
		}
	}
	if !closed {
		t.ActualHours = nil
		return
	}
	hours := float64(minutes) / 60
	t.ActualHours = &hours
}

// TimeSession records one tracked work interval. A session is active while
// end_time is unset; duration_minutes is derived when the session closes.
type TimeSession struct {
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
	Description     *string    `json:"description,omitempty"`
}

// Active reports whether the session has not been closed yet.
func (s *TimeSession) Active() bool {
	return s.EndTime == nil
}

// Close sets the end time and derives the duration.
func (s *TimeSession) Close(end time.Time) {
	s.EndTime = &end
	minutes := int64(math.Round(end.Sub(s.StartTime).Minutes()))
	if minutes < 0 {
		minutes = 0
	}
	s.DurationMinutes = &minutes
}

// AIInfo records provenance for tasks produced by an AI provider.
type AIInfo struct {
	GeneratedByAI bool      `json:"generated_by_ai"`
	Operation     string    `json:"operation,omitempty"`
	Reasoning     string    `json:"reasoning,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Model         string    `json:"model,omitempty"`
}
