package commands

import (
	"fmt"

	"github.com/raskcli/rask/internal/task"
)

// NoteAdd appends an implementation note to a task. Notes share the same
// length limit as the free-text notes field.
func (e *Engine) NoteAdd(id int, text string) (*MutationResult, error) {
	if text == "" {
		return nil, &task.ValidationError{Field: "note", Reason: "must not be empty"}
	}
	if err := task.ValidateNotes(text); err != nil {
		return nil, err
	}
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	t.ImplementationNotes = append(t.ImplementationNotes, text)

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}

// NotesList returns a task's implementation notes in order.
func (e *Engine) NotesList(id int) ([]string, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	return t.ImplementationNotes, nil
}

// NoteEdit replaces the note at a 1-based index.
func (e *Engine) NoteEdit(id, index int, text string) (*MutationResult, error) {
	if text == "" {
		return nil, &task.ValidationError{Field: "note", Reason: "must not be empty"}
	}
	if err := task.ValidateNotes(text); err != nil {
		return nil, err
	}
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	if index < 1 || index > len(t.ImplementationNotes) {
		return nil, fmt.Errorf("task %d has no note %d", id, index)
	}
	t.ImplementationNotes[index-1] = text

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}

// NoteRemove deletes the note at a 1-based index.
func (e *Engine) NoteRemove(id, index int) (*MutationResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	if index < 1 || index > len(t.ImplementationNotes) {
		return nil, fmt.Errorf("task %d has no note %d", id, index)
	}
	t.ImplementationNotes = append(t.ImplementationNotes[:index-1], t.ImplementationNotes[index:]...)

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}

// NotesClear removes every implementation note from a task.
func (e *Engine) NotesClear(id int) (*MutationResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	t := r.Find(id)
	if t == nil {
		return nil, &task.NotFoundError{ID: id}
	}
	t.ImplementationNotes = nil

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}
