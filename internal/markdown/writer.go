package markdown

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/raskcli/rask/internal/store"
	"github.com/raskcli/rask/internal/task"
)

// SourceFileMissingError reports a linked source file that no longer exists
// on disk. The JSON state change that preceded the sync is not rolled back.
type SourceFileMissingError struct {
	Path string
}

func (e *SourceFileMissingError) Error() string {
	return fmt.Sprintf("source file %s does not exist", e.Path)
}

// Render produces the markdown form of a roadmap: the title as a single H1
// followed by one checkbox line per task in ID order.
func Render(r *task.Roadmap) []byte {
	tasks := make([]task.Task, len(r.Tasks))
	copy(tasks, r.Tasks)
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(r.Title)
	b.WriteString("\n\n")
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			b.WriteString("- [x] ")
		} else {
			b.WriteString("- [ ] ")
		}
		b.WriteString(t.Description)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Sync rewrites the roadmap's source file to reflect the current state.
// A roadmap with no source file is a no-op success; a linked file that has
// disappeared is an error the caller reports as a warning. The write is a
// whole-file atomic replacement.
func Sync(r *task.Roadmap) error {
	if r.SourceFile == "" {
		return nil
	}
	if _, err := os.Stat(r.SourceFile); err != nil {
		if os.IsNotExist(err) {
			return &SourceFileMissingError{Path: r.SourceFile}
		}
		return fmt.Errorf("failed to stat source file %s: %w", r.SourceFile, err)
	}
	return store.WriteFileAtomic(r.SourceFile, Render(r), 0644)
}
