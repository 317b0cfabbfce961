// Package ai defines the provider capability the command dispatcher depends
// on for task suggestions. The roadmap engine itself has no AI vocabulary;
// it only ever consumes Suggestion values and stamps provenance on the
// tasks they produce.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrNoProvider is returned when an AI command runs without a provider.
	ErrNoProvider = errors.New("no AI provider configured")

	// ErrEmptyResponse is returned when a provider yields no suggestions.
	ErrEmptyResponse = errors.New("provider returned no suggestions")
)

// Suggestion is one task proposed by a provider, expressed entirely in
// roadmap vocabulary so the dispatcher can feed it straight into Add.
type Suggestion struct {
	Description    string   `json:"description"`
	Tags           []string `json:"tags,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Phase          string   `json:"phase,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Dependencies   []int    `json:"dependencies,omitempty"`
	EstimatedHours float64  `json:"estimated_hours,omitempty"`
	Reasoning      string   `json:"reasoning,omitempty"`
}

// Request describes what the provider is asked to do.
type Request struct {
	// Operation tags the kind of request (e.g. "breakdown", "suggest").
	Operation string

	// Prompt is the user's instruction.
	Prompt string

	// RoadmapTitle and TaskSummaries give the provider context.
	RoadmapTitle  string
	TaskSummaries []string
}

// Provider is the capability the dispatcher is handed. Implementations own
// their transport, credentials, and timeouts.
type Provider interface {
	// Name identifies the backing model for provenance records.
	Name() string

	// Suggest returns proposed tasks for the request.
	Suggest(ctx context.Context, req Request) ([]Suggestion, error)
}
