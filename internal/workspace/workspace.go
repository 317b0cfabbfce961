// Package workspace manages the user-level rask directory: the projects
// registry, one JSON state file per project, and the single-line file
// naming the currently active project.
//
// Layout under the user data dir:
//
//	rask/
//	  projects.json        registry
//	  current_project      active project name (absent when none)
//	  project_<name>.json  per-project state file
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/raskcli/rask/internal/store"
)

const (
	registryFile = "projects.json"
	currentFile  = "current_project"

	// legacyStateFile is the pre-workspace flat state file looked for in
	// the working directory when no project is configured.
	legacyStateFile = ".rask_state.json"
)

var projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

var (
	// ErrProjectExists is returned when creating a project whose name is taken.
	ErrProjectExists = errors.New("project already exists")

	// ErrProjectNotFound is returned when a named project is not registered.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidProjectName is returned for names outside [A-Za-z0-9_-]{1,50}.
	ErrInvalidProjectName = errors.New("project name must match [A-Za-z0-9_-]{1,50}")
)

// ProjectConfig is one registry entry.
type ProjectConfig struct {
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LastAccessed  time.Time `json:"last_accessed"`
	StateFile     string    `json:"state_file"`
	SourceFile    string    `json:"source_file,omitempty"`
	WorkDirectory string    `json:"work_directory,omitempty"`
}

// GlobalSettings are workspace-wide preferences stored in the registry.
type GlobalSettings struct {
	AutoSwitchDefault   bool `json:"auto_switch_default"`
	RecentProjectsCount int  `json:"recent_projects_count"`
	AutoCreateLocalDir  bool `json:"auto_create_local_dir"`
}

// DefaultGlobalSettings returns the settings applied to new registries and
// to legacy registries that predate the settings block.
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		AutoSwitchDefault:   true,
		RecentProjectsCount: 5,
		AutoCreateLocalDir:  false,
	}
}

// Registry is the on-disk projects.json document.
type Registry struct {
	Projects       map[string]*ProjectConfig `json:"projects"`
	DefaultProject string                    `json:"default_project,omitempty"`
	GlobalSettings GlobalSettings            `json:"global_settings"`
}

// Workspace is a handle on the user-level rask directory, constructed once
// per command and threaded through explicitly.
type Workspace struct {
	root string
	cwd  string
}

// Open locates the workspace under the user data directory, creates it if
// needed, and migrates any legacy flat files found in the working directory.
func Open() (*Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	w := OpenAt(filepath.Join(xdg.DataHome, "rask"), cwd)
	if err := os.MkdirAll(w.root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory %s: %w", w.root, err)
	}
	if err := w.migrateLegacy(); err != nil {
		return nil, err
	}
	return w, nil
}

// OpenAt binds a workspace to an explicit root and working directory
// without touching the filesystem. Used by Open and by tests.
func OpenAt(root, cwd string) *Workspace {
	return &Workspace{root: root, cwd: cwd}
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

func (w *Workspace) registryPath() string {
	return filepath.Join(w.root, registryFile)
}

func (w *Workspace) currentPath() string {
	return filepath.Join(w.root, currentFile)
}

func (w *Workspace) stateFilePath(name string) string {
	return filepath.Join(w.root, "project_"+name+".json")
}

// LoadRegistry reads projects.json, returning an empty registry with
// default settings when the file is absent. Registries written before the
// global_settings block existed are rewritten in the current shape.
func (w *Workspace) LoadRegistry() (*Registry, error) {
	data, err := os.ReadFile(w.registryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{
				Projects:       make(map[string]*ProjectConfig),
				GlobalSettings: DefaultGlobalSettings(),
			}, nil
		}
		return nil, fmt.Errorf("failed to read registry %s: %w", w.registryPath(), err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", w.registryPath(), err)
	}
	if reg.Projects == nil {
		reg.Projects = make(map[string]*ProjectConfig)
	}

	// Detect the legacy schema (no global_settings key) and upgrade it.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		if _, ok := raw["global_settings"]; !ok {
			reg.GlobalSettings = DefaultGlobalSettings()
			if err := w.SaveRegistry(&reg); err != nil {
				return nil, err
			}
		}
	}
	return &reg, nil
}

// SaveRegistry writes projects.json atomically.
func (w *Workspace) SaveRegistry(reg *Registry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}
	return store.WriteFileAtomic(w.registryPath(), append(data, '\n'), 0644)
}

// Current returns the active project name. A pointer to a project that no
// longer exists in the registry is stale and is cleared on the spot.
func (w *Workspace) Current(reg *Registry) string {
	data, err := os.ReadFile(w.currentPath())
	if err != nil {
		return ""
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return ""
	}
	if _, ok := reg.Projects[name]; !ok {
		_ = os.Remove(w.currentPath())
		return ""
	}
	return name
}

// SetCurrent records the active project name.
func (w *Workspace) SetCurrent(name string) error {
	return store.WriteFileAtomic(w.currentPath(), []byte(name+"\n"), 0644)
}

// ClearCurrent removes the active-project record.
func (w *Workspace) ClearCurrent() error {
	err := os.Remove(w.currentPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear current project: %w", err)
	}
	return nil
}

// List returns registry entries sorted by most recent access.
func (w *Workspace) List() ([]*ProjectConfig, *Registry, error) {
	reg, err := w.LoadRegistry()
	if err != nil {
		return nil, nil, err
	}
	projects := make([]*ProjectConfig, 0, len(reg.Projects))
	for _, p := range reg.Projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].LastAccessed.Equal(projects[j].LastAccessed) {
			return projects[i].LastAccessed.After(projects[j].LastAccessed)
		}
		return projects[i].Name < projects[j].Name
	})
	return projects, reg, nil
}

// Create registers a new project, recording the working directory and
// computing its state file path. The first project becomes the default.
func (w *Workspace) Create(name, description string) (*ProjectConfig, error) {
	if !projectNamePattern.MatchString(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidProjectName)
	}
	reg, err := w.LoadRegistry()
	if err != nil {
		return nil, err
	}
	if _, ok := reg.Projects[name]; ok {
		return nil, fmt.Errorf("%q: %w", name, ErrProjectExists)
	}

	now := time.Now()
	p := &ProjectConfig{
		Name:          name,
		Description:   description,
		CreatedAt:     now,
		LastAccessed:  now,
		StateFile:     w.stateFilePath(name),
		WorkDirectory: w.cwd,
	}
	first := len(reg.Projects) == 0
	reg.Projects[name] = p
	if first {
		reg.DefaultProject = name
	}
	if err := w.SaveRegistry(reg); err != nil {
		return nil, err
	}

	if reg.GlobalSettings.AutoCreateLocalDir {
		for _, sub := range []string{"cache", "exports"} {
			if err := os.MkdirAll(filepath.Join(w.cwd, ".rask", sub), 0755); err != nil {
				return nil, fmt.Errorf("failed to create local project directory: %w", err)
			}
		}
	}
	return p, nil
}

// Switch makes a registered project the active one and bumps last_accessed.
func (w *Workspace) Switch(name string) error {
	reg, err := w.LoadRegistry()
	if err != nil {
		return err
	}
	p, ok := reg.Projects[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrProjectNotFound)
	}
	p.LastAccessed = time.Now()
	if err := w.SaveRegistry(reg); err != nil {
		return err
	}
	return w.SetCurrent(name)
}

// Delete removes a project and its state file. When the deleted project was
// the default or the active one, the default is reassigned to the first
// remaining project (by name) or cleared.
func (w *Workspace) Delete(name string) error {
	reg, err := w.LoadRegistry()
	if err != nil {
		return err
	}
	p, ok := reg.Projects[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrProjectNotFound)
	}

	// Read the active pointer while the entry still exists; afterwards
	// Current would treat it as stale and clear it.
	wasCurrent := w.Current(reg) == name

	if err := os.Remove(p.StateFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file %s: %w", p.StateFile, err)
	}
	delete(reg.Projects, name)

	if reg.DefaultProject == name {
		reg.DefaultProject = ""
		var remaining []string
		for n := range reg.Projects {
			remaining = append(remaining, n)
		}
		if len(remaining) > 0 {
			sort.Strings(remaining)
			reg.DefaultProject = remaining[0]
		}
	}
	if err := w.SaveRegistry(reg); err != nil {
		return err
	}

	if wasCurrent || len(reg.Projects) == 0 {
		if reg.DefaultProject != "" {
			return w.SetCurrent(reg.DefaultProject)
		}
		return w.ClearCurrent()
	}
	return nil
}

// UpdateLastAccessed bumps a project's last_accessed timestamp.
func (w *Workspace) UpdateLastAccessed(name string) error {
	reg, err := w.LoadRegistry()
	if err != nil {
		return err
	}
	p, ok := reg.Projects[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrProjectNotFound)
	}
	p.LastAccessed = time.Now()
	return w.SaveRegistry(reg)
}

// StatePath resolves the state file the next command should use:
// the active project's file, then the default project's, then a legacy
// .rask_state.json in the working directory, then a fixed default under
// the workspace root.
func (w *Workspace) StatePath() (string, error) {
	reg, err := w.LoadRegistry()
	if err != nil {
		return "", err
	}
	if cur := w.Current(reg); cur != "" {
		return reg.Projects[cur].StateFile, nil
	}
	if reg.DefaultProject != "" {
		if p, ok := reg.Projects[reg.DefaultProject]; ok {
			return p.StateFile, nil
		}
	}
	legacy := filepath.Join(w.cwd, legacyStateFile)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}
	return filepath.Join(w.root, "state.json"), nil
}

// ActiveProject returns the registry entry the next command will write to:
// the current project if set, otherwise the default. Returns nil when no
// project is configured.
func (w *Workspace) ActiveProject() (*ProjectConfig, *Registry, error) {
	reg, err := w.LoadRegistry()
	if err != nil {
		return nil, nil, err
	}
	if cur := w.Current(reg); cur != "" {
		return reg.Projects[cur], reg, nil
	}
	if reg.DefaultProject != "" {
		if p, ok := reg.Projects[reg.DefaultProject]; ok {
			return p, reg, nil
		}
	}
	return nil, reg, nil
}
