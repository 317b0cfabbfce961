// Package commands implements the roadmap command handlers. Every mutating
// operation follows the same order: load the state file resolved by the
// workspace, mutate the roadmap in memory, validate, save the JSON state,
// then sync the markdown source file. A failed markdown sync is reported as
// a warning and never rolls back the saved state.
package commands

import (
	"errors"
	"time"

	"github.com/raskcli/rask/internal/logging"
	"github.com/raskcli/rask/internal/markdown"
	"github.com/raskcli/rask/internal/store"
	"github.com/raskcli/rask/internal/task"
	"github.com/raskcli/rask/internal/workspace"
)

// ErrNotInitialized is returned when a command needs a roadmap but no state
// file exists yet.
var ErrNotInitialized = errors.New("no roadmap found; run 'rask init <file>' first")

// Engine orchestrates roadmap commands against one workspace. Construct one
// per command invocation.
type Engine struct {
	ws  *workspace.Workspace
	log *logging.Logger
	now func() time.Time
}

// New creates an engine over the given workspace.
func New(ws *workspace.Workspace) *Engine {
	return &Engine{
		ws:  ws,
		log: logging.Get(),
		now: time.Now,
	}
}

// Workspace exposes the engine's workspace for project-level commands.
func (e *Engine) Workspace() *workspace.Workspace {
	return e.ws
}

// load resolves the current state file and reads the roadmap from it.
func (e *Engine) load() (*task.Roadmap, *store.Store, error) {
	path, err := e.ws.StatePath()
	if err != nil {
		return nil, nil, err
	}
	st := store.New(path)
	r, err := st.Load()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNotInitialized
		}
		return nil, nil, err
	}
	return r, st, nil
}

// persist saves the roadmap and best-effort syncs the markdown source.
// The returned error is the sync warning only; the JSON state is already
// authoritative by the time it is produced.
func (e *Engine) persist(r *task.Roadmap, st *store.Store) (error, error) {
	r.Touch(e.now())
	if err := st.Save(r); err != nil {
		return err, nil
	}
	if err := markdown.Sync(r); err != nil {
		e.log.WithError(err).Warn("markdown sync failed; JSON state is authoritative")
		return nil, err
	}
	return nil, nil
}

// touchProject bumps last_accessed on the project the command wrote to.
func (e *Engine) touchProject() {
	p, _, err := e.ws.ActiveProject()
	if err != nil || p == nil {
		return
	}
	if err := e.ws.UpdateLastAccessed(p.Name); err != nil {
		e.log.WithError(err).Debug("failed to update project last_accessed")
	}
}
