package workspace

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return OpenAt(t.TempDir(), t.TempDir())
}

func TestCreateFirstProjectBecomesDefault(t *testing.T) {
	w := testWorkspace(t)

	p, err := w.Create("alpha", "first project")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.StateFile != filepath.Join(w.Root(), "project_alpha.json") {
		t.Errorf("StateFile = %q", p.StateFile)
	}

	reg, err := w.LoadRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if reg.DefaultProject != "alpha" {
		t.Errorf("DefaultProject = %q, want %q", reg.DefaultProject, "alpha")
	}

	if _, err := w.Create("beta", ""); err != nil {
		t.Fatal(err)
	}
	reg, _ = w.LoadRegistry()
	if reg.DefaultProject != "alpha" {
		t.Errorf("DefaultProject changed to %q after second create", reg.DefaultProject)
	}
}

func TestCreateRejectsDuplicateAndBadNames(t *testing.T) {
	w := testWorkspace(t)
	if _, err := w.Create("alpha", ""); err != nil {
		t.Fatal(err)
	}

	if _, err := w.Create("alpha", ""); !errors.Is(err, ErrProjectExists) {
		t.Errorf("duplicate create error = %v, want ErrProjectExists", err)
	}

	for _, name := range []string{"", "has space", "semi;colon", "dot.name"} {
		if _, err := w.Create(name, ""); !errors.Is(err, ErrInvalidProjectName) {
			t.Errorf("Create(%q) error = %v, want ErrInvalidProjectName", name, err)
		}
	}
}

func TestSwitchSetsCurrent(t *testing.T) {
	w := testWorkspace(t)
	if _, err := w.Create("alpha", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Create("beta", ""); err != nil {
		t.Fatal(err)
	}

	if err := w.Switch("beta"); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	reg, _ := w.LoadRegistry()
	if got := w.Current(reg); got != "beta" {
		t.Errorf("Current = %q, want %q", got, "beta")
	}

	if err := w.Switch("missing"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Switch(missing) error = %v, want ErrProjectNotFound", err)
	}
}

func TestStaleCurrentPointerCleared(t *testing.T) {
	w := testWorkspace(t)
	if _, err := w.Create("alpha", ""); err != nil {
		t.Fatal(err)
	}
	if err := w.SetCurrent("ghost"); err != nil {
		t.Fatal(err)
	}

	reg, _ := w.LoadRegistry()
	if got := w.Current(reg); got != "" {
		t.Errorf("Current = %q, want empty for stale pointer", got)
	}
	if _, err := os.Stat(filepath.Join(w.Root(), currentFile)); !os.IsNotExist(err) {
		t.Error("stale current_project file not removed")
	}
}

func TestDeleteReassignsDefaultAndRemovesState(t *testing.T) {
	w := testWorkspace(t)
	if _, err := w.Create("alpha", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Create("beta", ""); err != nil {
		t.Fatal(err)
	}
	statePath := w.stateFilePath("alpha")
	if err := os.WriteFile(statePath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := w.Switch("alpha"); err != nil {
		t.Fatal(err)
	}

	if err := w.Delete("alpha"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(statePath); !os.IsNotExist(err) {
		t.Error("state file not deleted")
	}

	reg, _ := w.LoadRegistry()
	if reg.DefaultProject != "beta" {
		t.Errorf("DefaultProject = %q, want %q", reg.DefaultProject, "beta")
	}
	if got := w.Current(reg); got != "beta" {
		t.Errorf("Current = %q, want %q", got, "beta")
	}

	if err := w.Delete("beta"); err != nil {
		t.Fatal(err)
	}
	reg, _ = w.LoadRegistry()
	if reg.DefaultProject != "" {
		t.Errorf("DefaultProject = %q after last delete, want empty", reg.DefaultProject)
	}
}

func TestDeleteOtherProjectKeepsCurrent(t *testing.T) {
	w := testWorkspace(t)
	if _, err := w.Create("alpha", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Create("beta", ""); err != nil {
		t.Fatal(err)
	}
	if err := w.Switch("beta"); err != nil {
		t.Fatal(err)
	}

	if err := w.Delete("alpha"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	reg, _ := w.LoadRegistry()
	if got := w.Current(reg); got != "beta" {
		t.Errorf("Current = %q after deleting another project, want %q", got, "beta")
	}
}

func TestListSortsByLastAccessed(t *testing.T) {
	w := testWorkspace(t)
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if _, err := w.Create(name, ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Switch("beta"); err != nil {
		t.Fatal(err)
	}

	projects, _, err := w.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 3 {
		t.Fatalf("len = %d, want 3", len(projects))
	}
	if projects[0].Name != "beta" {
		t.Errorf("projects[0].Name = %q, want %q (most recently accessed)", projects[0].Name, "beta")
	}
}

func TestStatePathResolutionOrder(t *testing.T) {
	w := testWorkspace(t)

	// No projects, no legacy file: fixed default under the root.
	got, err := w.StatePath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(w.Root(), "state.json"); got != want {
		t.Errorf("StatePath = %q, want %q", got, want)
	}

	// A legacy flat state file in the working directory wins over the default.
	legacy := filepath.Join(w.cwd, legacyStateFile)
	if err := os.WriteFile(legacy, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	got, _ = w.StatePath()
	if got != legacy {
		t.Errorf("StatePath = %q, want legacy %q", got, legacy)
	}

	// A default project wins over the legacy file.
	if _, err := w.Create("alpha", ""); err != nil {
		t.Fatal(err)
	}
	got, _ = w.StatePath()
	if want := w.stateFilePath("alpha"); got != want {
		t.Errorf("StatePath = %q, want default project %q", got, want)
	}

	// The current project wins over the default.
	if _, err := w.Create("beta", ""); err != nil {
		t.Fatal(err)
	}
	if err := w.Switch("beta"); err != nil {
		t.Fatal(err)
	}
	got, _ = w.StatePath()
	if want := w.stateFilePath("beta"); got != want {
		t.Errorf("StatePath = %q, want current project %q", got, want)
	}
}

func TestActiveProject(t *testing.T) {
	w := testWorkspace(t)

	p, _, err := w.ActiveProject()
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("ActiveProject = %+v, want nil with empty registry", p)
	}

	if _, err := w.Create("alpha", ""); err != nil {
		t.Fatal(err)
	}
	p, _, _ = w.ActiveProject()
	if p == nil || p.Name != "alpha" {
		t.Errorf("ActiveProject = %+v, want default alpha", p)
	}
}

func TestLegacyRegistryUpgraded(t *testing.T) {
	w := testWorkspace(t)
	legacy := `{"projects":{"old":{"name":"old","state_file":"x.json"}},"default_project":"old"}`
	if err := os.MkdirAll(w.Root(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(w.registryPath(), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := w.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	if reg.GlobalSettings != DefaultGlobalSettings() {
		t.Errorf("GlobalSettings = %+v, want defaults", reg.GlobalSettings)
	}
	if reg.DefaultProject != "old" {
		t.Errorf("DefaultProject = %q, want %q", reg.DefaultProject, "old")
	}

	// The upgrade is written back so the next load sees the new schema.
	data, err := os.ReadFile(w.registryPath())
	if err != nil {
		t.Fatal(err)
	}
	if !jsonHasKey(t, data, "global_settings") {
		t.Error("upgraded registry not persisted with global_settings")
	}
}

func TestMigrateLegacyFlatFiles(t *testing.T) {
	w := testWorkspace(t)
	if err := os.MkdirAll(w.Root(), 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		legacyRegistryFile:               `{"projects":{}}`,
		legacyCurrentFile:                "alpha\n",
		legacyStatePrefix + "alpha.json": `{"title":"Alpha"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(w.cwd, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.migrateLegacy(); err != nil {
		t.Fatalf("migrateLegacy failed: %v", err)
	}

	for _, dst := range []string{w.registryPath(), w.currentPath(), w.stateFilePath("alpha")} {
		if _, err := os.Stat(dst); err != nil {
			t.Errorf("migrated file %s missing: %v", dst, err)
		}
	}
	for name := range files {
		if _, err := os.Stat(filepath.Join(w.cwd, name)); !os.IsNotExist(err) {
			t.Errorf("legacy file %s not removed from working directory", name)
		}
	}

	// Re-running is a no-op.
	if err := w.migrateLegacy(); err != nil {
		t.Errorf("second migrateLegacy failed: %v", err)
	}
}

func jsonHasKey(t *testing.T, data []byte, key string) bool {
	t.Helper()
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	_, ok := raw[key]
	return ok
}
