package task

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Field limits enforced on user input.
const (
	MinDescriptionLen = 3
	MaxDescriptionLen = 500
	MaxNotesLen       = 1000
	MaxTagLen         = 50
	MaxEstimatedHours = 1000
)

var tagPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// ErrNoActiveSession is returned by StopSession when nothing is running.
var ErrNoActiveSession = errors.New("no active time session")

// ValidationError reports a field-level input failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a reference to a task ID that does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// SessionActiveError reports an attempt to start a second time session
// while one is already running somewhere in the roadmap.
type SessionActiveError struct {
	TaskID int
}

func (e *SessionActiveError) Error() string {
	return fmt.Sprintf("a time session is already active on task %d", e.TaskID)
}

// ValidateDescription checks length bounds and requires at least one
// letter or digit, so punctuation-only descriptions are rejected.
func ValidateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	n := len([]rune(trimmed))
	if n < MinDescriptionLen {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at least %d characters", MinDescriptionLen)}
	}
	if n > MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)}
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return nil
		}
	}
	return &ValidationError{Field: "description", Reason: "must contain letters or digits"}
}

// ValidateTag checks a single stored tag. Stored tags never contain '#';
// the CLI strips a leading '#' before validation.
func ValidateTag(tag string) error {
	if !tagPattern.MatchString(tag) {
		return &ValidationError{Field: "tag", Reason: fmt.Sprintf("%q must match [A-Za-z0-9_-]{1,%d}", tag, MaxTagLen)}
	}
	return nil
}

// ValidateNotes checks the free-text notes length.
func ValidateNotes(notes string) error {
	if len([]rune(notes)) > MaxNotesLen {
		return &ValidationError{Field: "notes", Reason: fmt.Sprintf("must be at most %d characters", MaxNotesLen)}
	}
	return nil
}

// ValidateEstimatedHours checks the estimate is a positive real within range.
func ValidateEstimatedHours(hours float64) error {
	if hours <= 0 {
		return &ValidationError{Field: "estimated_hours", Reason: "must be positive"}
	}
	if hours > MaxEstimatedHours {
		return &ValidationError{Field: "estimated_hours", Reason: fmt.Sprintf("must be at most %d", MaxEstimatedHours)}
	}
	return nil
}

// ParsePriority maps a case-insensitive priority literal to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	default:
		return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("%q is not one of low, medium, high, critical", s)}
	}
}

// ParseStatus maps a case-insensitive status literal to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not one of pending, completed", s)}
	}
}
