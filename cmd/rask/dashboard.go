package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/task"
	"github.com/raskcli/rask/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Full-screen roadmap view",
		RunE:  runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	r, err := engine.Show()
	if err != nil {
		return err
	}

	reload := func() (*task.Roadmap, error) {
		e, err := newEngine()
		if err != nil {
			return nil, err
		}
		return e.Show()
	}

	p := tea.NewProgram(tui.NewDashboard(r, reload), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
