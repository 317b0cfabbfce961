package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Legacy flat-file names rask wrote into the working directory before the
// user-level workspace existed.
const (
	legacyRegistryFile = ".rask_projects.json"
	legacyCurrentFile  = ".rask_current_project"
	legacyStatePrefix  = ".rask_state_"
)

// migrateLegacy moves pre-workspace files from the working directory into
// the workspace root, then removes the originals. Existing files in the
// workspace are never overwritten, so a half-finished migration can be
// re-run safely.
func (w *Workspace) migrateLegacy() error {
	if err := w.migrateFile(filepath.Join(w.cwd, legacyRegistryFile), w.registryPath()); err != nil {
		return err
	}
	if err := w.migrateFile(filepath.Join(w.cwd, legacyCurrentFile), w.currentPath()); err != nil {
		return err
	}

	entries, err := os.ReadDir(w.cwd)
	if err != nil {
		return fmt.Errorf("failed to scan %s for legacy state files: %w", w.cwd, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, legacyStatePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		project := strings.TrimSuffix(strings.TrimPrefix(name, legacyStatePrefix), ".json")
		if project == "" {
			continue
		}
		if err := w.migrateFile(filepath.Join(w.cwd, name), w.stateFilePath(project)); err != nil {
			return err
		}
	}
	return nil
}

// migrateFile copies src to dst unless dst already exists, then removes src.
func (w *Workspace) migrateFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read legacy file %s: %w", src, err)
	}
	if _, err := os.Stat(dst); err == nil {
		// Already migrated; just drop the old copy.
		return os.Remove(src)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to migrate %s to %s: %w", src, dst, err)
	}
	return os.Remove(src)
}
