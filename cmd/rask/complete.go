package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/tui"
)

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <ID>",
		Short: "Mark a task completed",
		Long: `Mark a task completed. A task with incomplete dependencies is
rejected with the list of blocking IDs.`,
		Args: cobra.ExactArgs(1),
		RunE: runComplete,
	}
}

func runComplete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	res, err := engine.Complete(id)
	if err != nil {
		return err
	}
	if res.AlreadyCompleted {
		fmt.Println(tui.WarningStyle.Render(fmt.Sprintf("Task %d is already completed", id)))
		return nil
	}
	fmt.Printf("%s Completed task %d: %s\n", tui.StatusCompleted.Render(tui.IndicatorCompleted), id, res.Task.Description)
	if len(res.NewlyUnblocked) > 0 {
		fmt.Printf("%s Unblocked: %v\n", tui.StatusReady.Render(tui.IndicatorReady), res.NewlyUnblocked)
	}
	warnSync(res.SyncWarning)
	return nil
}
