// Package main is the entry point for the rask CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/commands"
	"github.com/raskcli/rask/internal/config"
	"github.com/raskcli/rask/internal/deps"
	"github.com/raskcli/rask/internal/logging"
	"github.com/raskcli/rask/internal/markdown"
	"github.com/raskcli/rask/internal/store"
	"github.com/raskcli/rask/internal/task"
	"github.com/raskcli/rask/internal/workspace"
)

// Version is set at build time.
var Version = "dev"

func main() {
	initLogging()

	rootCmd := &cobra.Command{
		Use:   "rask",
		Short: "Plan projects from a markdown roadmap",
		Long: `Rask drives a task roadmap from a human-authored markdown file.

Edit the markdown, ingest it with init, and rask tracks completion,
priorities, phases, tags, dependencies, and time against it. Changes
made through rask are written back to the same markdown file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newShowCmd(),
		newListCmd(),
		newViewCmd(),
		newAddCmd(),
		newCompleteCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newResetCmd(),
		newBulkCmd(),
		newDependenciesCmd(),
		newPhaseCmd(),
		newProjectCmd(),
		newNotesCmd(),
		newStartCmd(),
		newStopCmd(),
		newTimeCmd(),
		newDashboardCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", errorCategory(err), err)
		os.Exit(1)
	}
}

// errorCategory maps an error to the category named on the first stderr
// line, so scripts can branch on failure kinds.
func errorCategory(err error) string {
	var (
		notFound   *task.NotFoundError
		validation *task.ValidationError
		session    *task.SessionActiveError
		missing    *deps.MissingDependencyError
		circular   *deps.CircularDependencyError
		notReady   *deps.NotReadyError
		dependents *commands.HasDependentsError
		corrupt    *store.CorruptError
		srcMissing *markdown.SourceFileMissingError
	)
	switch {
	case errors.Is(err, commands.ErrNotInitialized):
		return "not initialized"
	case errors.Is(err, markdown.ErrMissingTitle), errors.As(err, &corrupt):
		return "parse error"
	case errors.As(err, &notFound), errors.Is(err, workspace.ErrProjectNotFound):
		return "not found"
	case errors.As(err, &missing), errors.As(err, &circular),
		errors.As(err, &notReady), errors.As(err, &dependents):
		return "dependency error"
	case errors.As(err, &validation), errors.Is(err, workspace.ErrInvalidProjectName):
		return "validation error"
	case errors.As(err, &session), errors.Is(err, workspace.ErrProjectExists),
		errors.Is(err, task.ErrNoActiveSession):
		return "conflict"
	case errors.As(err, &srcMissing):
		return "markdown sync"
	default:
		return "io error"
	}
}

// initLogging initializes the logger from user settings, falling back to
// defaults when the config cannot be loaded.
func initLogging() {
	settings, err := config.Get()
	if err != nil {
		_ = logging.Init(nil)
		return
	}

	cfg := logging.DefaultConfig()
	if settings.Logging.Level != "" {
		if level, err := logging.ParseLevel(settings.Logging.Level); err == nil {
			cfg.Level = level
		}
	}
	cfg.FilePath = settings.Logging.FilePath
	cfg.Console = settings.Logging.Console
	if settings.Logging.MaxSizeMB > 0 {
		cfg.MaxSizeMB = settings.Logging.MaxSizeMB
	}
	if settings.Logging.MaxBackups > 0 {
		cfg.MaxBackups = settings.Logging.MaxBackups
	}
	if settings.Logging.MaxAgeDays > 0 {
		cfg.MaxAgeDays = settings.Logging.MaxAgeDays
	}
	cfg.Compress = settings.Logging.Compress

	if err := logging.Init(cfg); err != nil {
		_ = logging.Init(nil)
	}
}
