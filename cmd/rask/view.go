package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/task"
	"github.com/raskcli/rask/internal/tui"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <ID>",
		Short: "Show one task in detail",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
}

func runView(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	t, r, err := engine.View(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", statusGlyph(r, t), tui.BoldStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Description)))
	fmt.Printf("  status:   %s\n", t.Status)
	fmt.Printf("  priority: %s\n", tui.GetPriorityStyle(string(t.Priority)).Render(string(t.Priority)))
	fmt.Printf("  phase:    %s\n", t.Phase.String())
	fmt.Printf("  created:  %s\n", t.CreatedAt.Format(time.RFC3339))
	if t.CompletedAt != nil {
		fmt.Printf("  completed: %s\n", t.CompletedAt.Format(time.RFC3339))
	}
	printTaskDetail(r, t, "  ")
	if len(t.ImplementationNotes) > 0 {
		fmt.Println("  implementation notes:")
		for i, note := range t.ImplementationNotes {
			fmt.Printf("    %d. %s\n", i+1, note)
		}
	}
	if len(t.TimeSessions) > 0 {
		fmt.Printf("  sessions: %d\n", len(t.TimeSessions))
		for _, s := range t.TimeSessions {
			if s.Active() {
				fmt.Printf("    %s %s (running)\n", tui.StatusReady.Render(tui.IndicatorActive), s.StartTime.Format(time.RFC3339))
			} else {
				fmt.Printf("    %s %dm\n", s.StartTime.Format(time.RFC3339), *s.DurationMinutes)
			}
		}
	}
	if t.Status == task.StatusPending && len(t.Dependencies) > 0 {
		fmt.Println()
		if tree, err := engine.DependencyTree(t.ID); err == nil {
			printDependencyTree(tree, "", true)
		}
	}
	return nil
}
