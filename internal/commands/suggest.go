package commands

import (
	"github.com/raskcli/rask/internal/ai"
	"github.com/raskcli/rask/internal/task"
)

// ApplySuggestions turns accepted provider suggestions into tasks with
// provenance stamped, continuing past per-suggestion failures. Both the
// succeeded and failed lists report 1-based indices into the suggestion
// slice, since the suggestions carry no task IDs of their own.
func (e *Engine) ApplySuggestions(suggestions []ai.Suggestion, operation, model string) (*BulkResult, error) {
	res := &BulkResult{}
	for i, s := range suggestions {
		var estimate *float64
		if s.EstimatedHours > 0 {
			hours := s.EstimatedHours
			estimate = &hours
		}
		params := AddParams{
			Description:    s.Description,
			Tags:           s.Tags,
			Priority:       s.Priority,
			Phase:          s.Phase,
			Notes:          s.Notes,
			Dependencies:   s.Dependencies,
			EstimatedHours: estimate,
			AIInfo: &task.AIInfo{
				GeneratedByAI: true,
				Operation:     operation,
				Reasoning:     s.Reasoning,
				Timestamp:     e.now(),
				Model:         model,
			},
		}
		added, err := e.Add(params)
		if err != nil {
			res.Failed = append(res.Failed, BulkFailure{ID: i + 1, Err: err})
			continue
		}
		res.Succeeded = append(res.Succeeded, i+1)
		res.SyncWarning = added.SyncWarning
	}
	return res, nil
}
