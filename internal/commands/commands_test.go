package commands

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/raskcli/rask/internal/ai"
	"github.com/raskcli/rask/internal/deps"
	"github.com/raskcli/rask/internal/markdown"
	"github.com/raskcli/rask/internal/task"
	"github.com/raskcli/rask/internal/workspace"
)

const basicRoadmap = `# Demo Project

- [ ] write the spec
- [ ] hire a contractor
- [ ] ship v1
`

// newTestEngine builds an engine over throwaway workspace and working
// directories with a fixed clock.
func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	cwd := t.TempDir()
	e := New(workspace.OpenAt(t.TempDir(), cwd))
	e.now = func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	return e, cwd
}

func initRoadmap(t *testing.T, e *Engine, cwd, content string) string {
	t.Helper()
	path := filepath.Join(cwd, "roadmap.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return path
}

func TestInitIngestsRoadmap(t *testing.T) {
	e, cwd := newTestEngine(t)
	path := filepath.Join(cwd, "roadmap.md")
	if err := os.WriteFile(path, []byte(basicRoadmap), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := e.Init(path)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if res.Title != "Demo Project" {
		t.Errorf("Title = %q, want %q", res.Title, "Demo Project")
	}
	if res.TaskCount != 3 {
		t.Errorf("TaskCount = %d, want 3", res.TaskCount)
	}

	r, err := e.Show()
	if err != nil {
		t.Fatalf("Show after init failed: %v", err)
	}
	if len(r.Tasks) != 3 {
		t.Errorf("len(Tasks) = %d, want 3", len(r.Tasks))
	}
	if r.SourceFile == "" {
		t.Error("SourceFile not linked")
	}
}

func TestShowBeforeInit(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.Show(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("error = %v, want ErrNotInitialized", err)
	}
}

func TestAddAppendsTask(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	hours := 4.0
	res, err := e.Add(AddParams{
		Description:    "review contracts",
		Tags:           []string{"legal"},
		Priority:       "high",
		Phase:          "beta",
		Notes:          "external counsel needed",
		Dependencies:   []int{2, 2, 1},
		EstimatedHours: &hours,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got := res.Task
	if got.ID != 4 {
		t.Errorf("ID = %d, want 4", got.ID)
	}
	if got.Priority != task.PriorityHigh {
		t.Errorf("Priority = %q, want %q", got.Priority, task.PriorityHigh)
	}
	if got.Phase.Name != "Beta" {
		t.Errorf("Phase.Name = %q, want %q", got.Phase.Name, "Beta")
	}
	if !reflect.DeepEqual(got.Dependencies, []int{2, 1}) {
		t.Errorf("Dependencies = %v, want deduped [2 1]", got.Dependencies)
	}
	if got.Notes == nil || *got.Notes != "external counsel needed" {
		t.Errorf("Notes = %v", got.Notes)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	tests := []struct {
		name   string
		params AddParams
	}{
		{"short description", AddParams{Description: "ab"}},
		{"bad tag", AddParams{Description: "valid task", Tags: []string{"no spaces allowed"}}},
		{"bad priority", AddParams{Description: "valid task", Priority: "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Add(tt.params); err == nil {
				t.Error("Add succeeded, want validation error")
			}
		})
	}

	// Nothing was persisted by the rejected adds.
	r, _ := e.Show()
	if len(r.Tasks) != 3 {
		t.Errorf("len(Tasks) = %d after rejected adds, want 3", len(r.Tasks))
	}
}

func TestAddRejectsMissingDependencyWithoutPersisting(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	_, err := e.Add(AddParams{Description: "depends on ghost", Dependencies: []int{99}})
	var missing *deps.MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingDependencyError", err)
	}

	r, _ := e.Show()
	if len(r.Tasks) != 3 {
		t.Errorf("rejected add leaked into state: %d tasks", len(r.Tasks))
	}
}

func TestCompleteEnforcesDependencies(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	if _, err := e.Add(AddParams{Description: "launch party", Dependencies: []int{1, 3}}); err != nil {
		t.Fatal(err)
	}

	_, err := e.Complete(4)
	var notReady *deps.NotReadyError
	if !errors.As(err, &notReady) {
		t.Fatalf("error = %v, want *NotReadyError", err)
	}
	if !reflect.DeepEqual(notReady.MissingCompleted, []int{1, 3}) {
		t.Errorf("MissingCompleted = %v, want [1 3]", notReady.MissingCompleted)
	}

	if _, err := e.Complete(1); err != nil {
		t.Fatal(err)
	}
	res, err := e.Complete(3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.NewlyUnblocked, []int{4}) {
		t.Errorf("NewlyUnblocked = %v, want [4]", res.NewlyUnblocked)
	}

	if _, err := e.Complete(4); err != nil {
		t.Errorf("Complete(4) after deps done failed: %v", err)
	}
}

func TestCompleteAlreadyCompletedIsWarning(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	if _, err := e.Complete(1); err != nil {
		t.Fatal(err)
	}
	res, err := e.Complete(1)
	if err != nil {
		t.Fatalf("repeat Complete returned error %v, want warning result", err)
	}
	if !res.AlreadyCompleted {
		t.Error("AlreadyCompleted = false, want true")
	}

	r, _ := e.Show()
	if got := r.Find(1); got.CompletedAt == nil {
		t.Error("CompletedAt cleared by repeated complete")
	}
}

func TestCompleteSyncsMarkdown(t *testing.T) {
	e, cwd := newTestEngine(t)
	path := initRoadmap(t, e, cwd, basicRoadmap)

	res, err := e.Complete(2)
	if err != nil {
		t.Fatal(err)
	}
	if res.SyncWarning != nil {
		t.Errorf("SyncWarning = %v, want nil", res.SyncWarning)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# Demo Project\n\n- [ ] write the spec\n- [x] hire a contractor\n- [ ] ship v1\n"
	if string(data) != want {
		t.Errorf("source file after sync:\n%s\nwant:\n%s", data, want)
	}
}

func TestMissingSourceFileIsWarningNotError(t *testing.T) {
	e, cwd := newTestEngine(t)
	path := initRoadmap(t, e, cwd, basicRoadmap)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	res, err := e.Complete(1)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	var missing *markdown.SourceFileMissingError
	if !errors.As(res.SyncWarning, &missing) {
		t.Errorf("SyncWarning = %v, want *SourceFileMissingError", res.SyncWarning)
	}

	// The JSON state is authoritative: the completion survived.
	r, _ := e.Show()
	if r.Find(1).Status != task.StatusCompleted {
		t.Error("completion rolled back by sync warning")
	}
}

func TestEditReplacesDescription(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	res, err := e.Edit(2, "hire two contractors")
	if err != nil {
		t.Fatal(err)
	}
	if res.Task.Description != "hire two contractors" {
		t.Errorf("Description = %q", res.Task.Description)
	}

	if _, err := e.Edit(2, "ab"); err == nil {
		t.Error("Edit with short description succeeded")
	}
	if _, err := e.Edit(99, "valid text"); err == nil {
		t.Error("Edit of missing task succeeded")
	}
}

func TestRemoveGuardsDependents(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	if _, err := e.Add(AddParams{Description: "launch party", Dependencies: []int{2}}); err != nil {
		t.Fatal(err)
	}

	_, err := e.Remove(2, false)
	var hasDeps *HasDependentsError
	if !errors.As(err, &hasDeps) {
		t.Fatalf("error = %v, want *HasDependentsError", err)
	}
	if !reflect.DeepEqual(hasDeps.Dependents, []int{4}) {
		t.Errorf("Dependents = %v, want [4]", hasDeps.Dependents)
	}

	res, err := e.Remove(2, true)
	if err != nil {
		t.Fatalf("forced Remove failed: %v", err)
	}
	if res.Removed.Description != "hire a contractor" {
		t.Errorf("Removed.Description = %q", res.Removed.Description)
	}

	r, _ := e.Show()
	if len(r.Tasks) != 3 {
		t.Fatalf("len(Tasks) = %d, want 3", len(r.Tasks))
	}
	// Old 3 and 4 shifted down; the dangling dependency on old 2 is gone.
	launch := r.Find(3)
	if launch.Description != "launch party" {
		t.Errorf("Find(3).Description = %q", launch.Description)
	}
	if launch.Dependencies != nil {
		t.Errorf("Dependencies = %v, want nil after forced removal", launch.Dependencies)
	}
}

func TestResetSpecificAndAll(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	for _, id := range []int{1, 2, 3} {
		if _, err := e.Complete(id); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := e.Reset([]int{2}); err != nil {
		t.Fatal(err)
	}
	r, _ := e.Show()
	if r.Find(2).Status != task.StatusPending {
		t.Error("task 2 not reset")
	}
	if r.Find(1).Status != task.StatusCompleted {
		t.Error("task 1 reset unexpectedly")
	}

	if _, err := e.Reset(nil); err != nil {
		t.Fatal(err)
	}
	r, _ = e.Show()
	for _, tk := range r.Tasks {
		if tk.Status != task.StatusPending || tk.CompletedAt != nil {
			t.Errorf("task %d not fully reset: %+v", tk.ID, tk)
		}
	}

	if _, err := e.Reset([]int{42}); err == nil {
		t.Error("Reset of missing id succeeded")
	}
}

func TestListFilters(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	if _, err := e.BulkAddTags([]int{1, 3}, []string{"core"}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.BulkSetPriority([]int{3}, "critical"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Complete(1); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"all", Filter{}, []int{1, 2, 3}},
		{"pending", Filter{Status: StatusFilterPending}, []int{2, 3}},
		{"completed", Filter{Status: StatusFilterCompleted}, []int{1}},
		{"by tag", Filter{Tags: []string{"core"}}, []int{1, 3}},
		{"by priority", Filter{Priority: priorityPtr(task.PriorityCritical)}, []int{3}},
		{"search description", Filter{Search: "CONTRACTOR"}, []int{2}},
		{"search tag", Filter{Search: "core"}, []int{1, 3}},
		{"tag and status", Filter{Tags: []string{"core"}, Status: StatusFilterPending}, []int{3}},
		{"no match", Filter{Search: "nonexistent"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, _, err := e.List(tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if got := taskIDs(tasks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBulkCompleteOrderWithinBatch(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	if _, err := e.Add(AddParams{Description: "launch party", Dependencies: []int{1}}); err != nil {
		t.Fatal(err)
	}

	// 4 depends on 1; completing them in one batch works because 1 is
	// handled first. 99 fails without aborting the rest.
	res, err := e.BulkComplete([]int{1, 4, 99})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Succeeded, []int{1, 4}) {
		t.Errorf("Succeeded = %v, want [1 4]", res.Succeeded)
	}
	if len(res.Failed) != 1 || res.Failed[0].ID != 99 {
		t.Errorf("Failed = %+v, want one failure for 99", res.Failed)
	}
}

func TestBulkRemoveBatchAwareDependents(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	if _, err := e.Add(AddParams{Description: "launch party", Dependencies: []int{2}}); err != nil {
		t.Fatal(err)
	}

	// Removing 2 alone is blocked by its dependent 4; removing both in one
	// batch is allowed because the dependent goes too.
	res, err := e.BulkRemove([]int{2}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Failed) != 1 {
		t.Fatalf("Failed = %+v, want the dependent rejection", res.Failed)
	}

	res, err = e.BulkRemove([]int{2, 4}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Succeeded, []int{2, 4}) {
		t.Errorf("Succeeded = %v, want [2 4]", res.Succeeded)
	}

	r, _ := e.Show()
	if got := taskIDs(r.Tasks); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("remaining IDs = %v, want dense [1 2]", got)
	}
}

func TestBulkTagAndPhaseOperations(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	if _, err := e.BulkAddTags([]int{1, 2}, []string{"q3", "infra"}); err != nil {
		t.Fatal(err)
	}
	r, _ := e.Show()
	if !r.Find(1).HasTag("q3") || !r.Find(2).HasTag("infra") {
		t.Error("tags not applied")
	}

	if _, err := e.BulkRemoveTags([]int{1}, []string{"q3"}); err != nil {
		t.Fatal(err)
	}
	r, _ = e.Show()
	if r.Find(1).HasTag("q3") {
		t.Error("tag not removed")
	}
	if !r.Find(2).HasTag("q3") {
		t.Error("tag removed from wrong task")
	}

	if _, err := e.BulkSetPhase([]int{1, 2, 3}, "future"); err != nil {
		t.Fatal(err)
	}
	r, _ = e.Show()
	if r.Find(3).Phase.Name != "Future" {
		t.Errorf("Phase = %q, want Future", r.Find(3).Phase.Name)
	}

	if _, err := e.BulkAddTags([]int{1}, []string{"bad tag"}); err == nil {
		t.Error("invalid tag accepted by bulk add")
	}
}

func TestNotesLifecycle(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	if _, err := e.NoteAdd(1, "first note"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.NoteAdd(1, "second note"); err != nil {
		t.Fatal(err)
	}

	notes, err := e.NotesList(1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(notes, []string{"first note", "second note"}) {
		t.Errorf("notes = %v", notes)
	}

	if _, err := e.NoteEdit(1, 2, "revised note"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.NoteRemove(1, 1); err != nil {
		t.Fatal(err)
	}
	notes, _ = e.NotesList(1)
	if !reflect.DeepEqual(notes, []string{"revised note"}) {
		t.Errorf("notes = %v, want [revised note]", notes)
	}

	if _, err := e.NoteEdit(1, 5, "out of range"); err == nil {
		t.Error("NoteEdit with bad index succeeded")
	}
	if _, err := e.NoteAdd(1, ""); err == nil {
		t.Error("empty note accepted")
	}

	if _, err := e.NotesClear(1); err != nil {
		t.Fatal(err)
	}
	notes, _ = e.NotesList(1)
	if len(notes) != 0 {
		t.Errorf("notes = %v after clear", notes)
	}
}

func TestTimeTracking(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }

	if _, err := e.StartTime(1, "deep work"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.StartTime(2, ""); err == nil {
		t.Error("second concurrent session accepted")
	}

	clock = clock.Add(45 * time.Minute)
	res, err := e.StopTime()
	if err != nil {
		t.Fatal(err)
	}
	if res.TaskID != 1 || res.Minutes != 45 {
		t.Errorf("StopTime = task %d after %dm, want task 1 after 45m", res.TaskID, res.Minutes)
	}

	if _, err := e.StopTime(); !errors.Is(err, task.ErrNoActiveSession) {
		t.Errorf("StopTime with no session = %v, want ErrNoActiveSession", err)
	}

	rows, total, err := e.TimeSummary()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("summary rows = %d, want 1", len(rows))
	}
	if rows[0].ID != 1 || rows[0].Sessions != 1 || rows[0].ActualHours != 0.75 {
		t.Errorf("row = %+v", rows[0])
	}
	if total != 0.75 {
		t.Errorf("total = %v, want 0.75", total)
	}
}

func TestPhaseOverviewAndFork(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	if _, err := e.PhaseSet(3, "beta"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Complete(1); err != nil {
		t.Fatal(err)
	}

	overview, err := e.PhaseOverview()
	if err != nil {
		t.Fatal(err)
	}
	counts := make(map[string]PhaseInfo, len(overview))
	for _, info := range overview {
		counts[info.Phase.Name] = info
	}
	if got := counts["MVP"]; got.Total != 2 || got.Completed != 1 {
		t.Errorf("MVP = %+v, want 2 total 1 completed", got)
	}
	if got := counts["Beta"]; got.Total != 1 || got.Completed != 0 {
		t.Errorf("Beta = %+v, want 1 total 0 completed", got)
	}
	if overview[0].Phase.Name != "MVP" {
		t.Errorf("overview[0] = %q, want MVP first", overview[0].Phase.Name)
	}

	res, err := e.PhaseFork(1, "future")
	if err != nil {
		t.Fatal(err)
	}
	clone := res.Task
	if clone.ID != 4 {
		t.Errorf("clone.ID = %d, want 4", clone.ID)
	}
	if clone.Status != task.StatusPending || clone.CompletedAt != nil {
		t.Error("clone carried completion state")
	}
	if clone.Phase.Name != "Future" {
		t.Errorf("clone.Phase = %q, want Future", clone.Phase.Name)
	}
	if clone.Description != "write the spec" {
		t.Errorf("clone.Description = %q", clone.Description)
	}
}

func TestPhaseCreateAssignsCustomPhase(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	p, res, err := e.PhaseCreate("hardening", "security pass", "🔒", []int{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Custom || p.Name != "hardening" {
		t.Errorf("phase = %+v, want custom hardening", p)
	}
	if !reflect.DeepEqual(res.Succeeded, []int{2, 3}) {
		t.Errorf("Succeeded = %v, want [2 3]", res.Succeeded)
	}

	tasks, _, err := e.PhaseShow("hardening")
	if err != nil {
		t.Fatal(err)
	}
	if got := taskIDs(tasks); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("PhaseShow = %v, want [2 3]", got)
	}
}

func TestDependencyQueries(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)
	if _, err := e.Add(AddParams{Description: "launch party", Dependencies: []int{1, 2}}); err != nil {
		t.Fatal(err)
	}

	ready, err := e.ReadyTasks()
	if err != nil {
		t.Fatal(err)
	}
	if got := taskIDs(ready); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("ReadyTasks = %v, want [1 2 3]", got)
	}

	blocked, err := e.BlockedTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocked) != 1 || blocked[0].Task.ID != 4 {
		t.Fatalf("BlockedTasks = %+v, want task 4", blocked)
	}
	if !reflect.DeepEqual(blocked[0].Missing, []int{1, 2}) {
		t.Errorf("Missing = %v, want [1 2]", blocked[0].Missing)
	}

	tree, err := e.DependencyTree(4)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Children) != 2 {
		t.Errorf("tree children = %d, want 2", len(tree.Children))
	}

	errs, err := e.ValidateDependencies()
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 0 {
		t.Errorf("ValidateDependencies = %v, want clean", errs)
	}
}

func TestApplySuggestionsStampsProvenance(t *testing.T) {
	e, cwd := newTestEngine(t)
	initRoadmap(t, e, cwd, basicRoadmap)

	// Both result lists report 1-based suggestion indices, not task IDs.
	res, err := e.ApplySuggestions([]ai.Suggestion{
		{Description: "add integration tests", Priority: "high"},
		{Description: "xx"}, // too short, skipped
		{Description: "write release notes"},
	}, "add", "test-model")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Succeeded, []int{1, 3}) {
		t.Errorf("Succeeded = %v, want [1 3]", res.Succeeded)
	}
	if len(res.Failed) != 1 || res.Failed[0].ID != 2 {
		t.Errorf("Failed = %+v", res.Failed)
	}

	r, _ := e.Show()
	for _, id := range []int{4, 5} {
		added := r.Find(id)
		if added == nil || added.AIInfo == nil {
			t.Fatalf("task %d applied without provenance", id)
		}
		if !added.AIInfo.GeneratedByAI || added.AIInfo.Model != "test-model" {
			t.Errorf("task %d AIInfo = %+v", id, added.AIInfo)
		}
	}
}

func priorityPtr(p task.Priority) *task.Priority {
	return &p
}

func taskIDs(tasks []task.Task) []int {
	var out []int
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
