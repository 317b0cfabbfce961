package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/raskcli/rask/internal/markdown"
	"github.com/raskcli/rask/internal/store"
)

// InitResult reports what an init ingested.
type InitResult struct {
	Title     string
	TaskCount int
	StatePath string
}

// Init ingests a markdown roadmap file into the active project's state
// file and links the file so future mutations sync back to it.
func (e *Engine) Init(path string) (*InitResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r, err := markdown.Parse(data, e.now())
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	r.SourceFile = abs

	statePath, err := e.ws.StatePath()
	if err != nil {
		return nil, err
	}

	// Record the source file on the project the state path belongs to.
	p, reg, err := e.ws.ActiveProject()
	if err != nil {
		return nil, err
	}
	if p != nil {
		r.ProjectID = p.Name
		p.SourceFile = abs
		p.LastAccessed = e.now()
		if err := e.ws.SaveRegistry(reg); err != nil {
			return nil, err
		}
	}

	if err := store.New(statePath).Save(r); err != nil {
		return nil, err
	}

	e.log.WithCommand("init").WithField("tasks", len(r.Tasks)).Infof("ingested %s", abs)
	return &InitResult{Title: r.Title, TaskCount: len(r.Tasks), StatePath: statePath}, nil
}
