package task

import (
	"sort"
	"strings"
)

// Phase is a named grouping of tasks. A phase is either one of the five
// predefined phases or a user-defined one; equality is by canonical name.
type Phase struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Emoji       string  `json:"emoji,omitempty"`
	Custom      bool    `json:"custom,omitempty"`
}

// Predefined phase names in display order.
const (
	PhaseMVP     = "MVP"
	PhaseBeta    = "Beta"
	PhaseRelease = "Release"
	PhaseFuture  = "Future"
	PhaseBacklog = "Backlog"
)

var predefinedOrder = []string{PhaseMVP, PhaseBeta, PhaseRelease, PhaseFuture, PhaseBacklog}

var predefinedEmoji = map[string]string{
	PhaseMVP:     "🚀",
	PhaseBeta:    "🧪",
	PhaseRelease: "📦",
	PhaseFuture:  "🔮",
	PhaseBacklog: "📋",
}

// DefaultPhase is the phase assigned to tasks that do not name one.
func DefaultPhase() Phase {
	return NewPhase(PhaseMVP)
}

// NewPhase canonicalizes a phase name. Case-insensitive matches against the
// predefined names map to the predefined variant; anything else becomes a
// custom phase with the name kept as given.
func NewPhase(name string) Phase {
	trimmed := strings.TrimSpace(name)
	for _, canonical := range predefinedOrder {
		if strings.EqualFold(trimmed, canonical) {
			return Phase{Name: canonical, Emoji: predefinedEmoji[canonical]}
		}
	}
	return Phase{Name: trimmed, Custom: true}
}

// NewCustomPhase builds a custom phase with an optional description and
// emoji. A name colliding with a predefined phase canonicalizes to it.
func NewCustomPhase(name, description, emoji string) Phase {
	p := NewPhase(name)
	if !p.Custom {
		return p
	}
	if description != "" {
		p.Description = &description
	}
	if emoji != "" {
		p.Emoji = emoji
	}
	return p
}

// IsZero reports whether the phase is unset (as on older state files).
func (p Phase) IsZero() bool {
	return p.Name == ""
}

// Equal compares phases by name.
func (p Phase) Equal(other Phase) bool {
	return p.Name == other.Name
}

// String renders the phase with its emoji when present.
func (p Phase) String() string {
	if p.Emoji != "" {
		return p.Emoji + " " + p.Name
	}
	return p.Name
}

// phaseRank returns the fixed index for predefined phases, or the number of
// predefined phases for custom ones so they sort after.
func phaseRank(p Phase) int {
	for i, name := range predefinedOrder {
		if p.Name == name {
			return i
		}
	}
	return len(predefinedOrder)
}

// PhaseLess orders phases for display: predefined first in fixed order,
// then custom phases alphabetically.
func PhaseLess(a, b Phase) bool {
	ra, rb := phaseRank(a), phaseRank(b)
	if ra != rb {
		return ra < rb
	}
	return a.Name < b.Name
}

// SortPhases sorts a slice of phases into display order.
func SortPhases(phases []Phase) {
	sort.Slice(phases, func(i, j int) bool {
		return PhaseLess(phases[i], phases[j])
	})
}
