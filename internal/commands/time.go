package commands

// StartTime opens a time session on a task. Sessions are globally
// exclusive: a second start anywhere in the roadmap is rejected with the
// ID of the task holding the active session.
func (e *Engine) StartTime(id int, description string) (*MutationResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	if err := r.StartSession(id, description, e.now()); err != nil {
		return nil, err
	}

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.log.WithCommand("start").WithTask(id).Info("time session started")
	return &MutationResult{Task: r.Find(id), SyncWarning: syncWarn}, nil
}

// StopResult reports a closed time session.
type StopResult struct {
	TaskID      int
	Minutes     int64
	SyncWarning error
}

// StopTime closes the unique active session, derives its duration, and
// refreshes the owning task's actual_hours.
func (e *Engine) StopTime() (*StopResult, error) {
	r, st, err := e.load()
	if err != nil {
		return nil, err
	}
	id, minutes, err := r.StopSession(e.now())
	if err != nil {
		return nil, err
	}

	saveErr, syncWarn := e.persist(r, st)
	if saveErr != nil {
		return nil, saveErr
	}
	e.log.WithCommand("stop").WithTask(id).WithField("minutes", minutes).Info("time session stopped")
	return &StopResult{TaskID: id, Minutes: minutes, SyncWarning: syncWarn}, nil
}

// TaskTime is one row of the time summary.
type TaskTime struct {
	ID             int
	Description    string
	EstimatedHours *float64
	ActualHours    float64
	Sessions       int
	Active         bool
}

// TimeSummary aggregates tracked time per task and in total. Only tasks
// with sessions or an estimate appear.
func (e *Engine) TimeSummary() ([]TaskTime, float64, error) {
	r, _, err := e.load()
	if err != nil {
		return nil, 0, err
	}

	var rows []TaskTime
	var total float64
	for i := range r.Tasks {
		t := &r.Tasks[i]
		if len(t.TimeSessions) == 0 && t.EstimatedHours == nil {
			continue
		}
		row := TaskTime{
			ID:             t.ID,
			Description:    t.Description,
			EstimatedHours: t.EstimatedHours,
			Sessions:       len(t.TimeSessions),
			Active:         t.ActiveSession() != nil,
		}
		if t.ActualHours != nil {
			row.ActualHours = *t.ActualHours
			total += *t.ActualHours
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}
