package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/tui"
)

var timeSummary bool

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <ID> [DESCRIPTION]",
		Short: "Start a time session on a task",
		Long: `Start tracking time against a task. Sessions are globally
exclusive: only one may run across the whole roadmap.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			description := ""
			if len(args) == 2 {
				description = args[1]
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.StartTime(id, description)
			if err != nil {
				return err
			}
			fmt.Printf("%s Started timing task %d: %s\n", tui.StatusReady.Render(tui.IndicatorActive), id, res.Task.Description)
			warnSync(res.SyncWarning)
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active time session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.StopTime()
			if err != nil {
				return err
			}
			fmt.Printf("Stopped timing task %d after %dm\n", res.TaskID, res.Minutes)
			warnSync(res.SyncWarning)
			return nil
		},
	}
}

func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Show tracked time",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			rows, total, err := engine.TimeSummary()
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No time tracked yet")
				return nil
			}
			for _, row := range rows {
				marker := " "
				if row.Active {
					marker = tui.StatusReady.Render(tui.IndicatorActive)
				}
				line := fmt.Sprintf("%s %-4d %-40s %.1fh", marker, row.ID, row.Description, row.ActualHours)
				if row.EstimatedHours != nil {
					line += tui.DimStyle.Render(fmt.Sprintf(" / %.1fh est", *row.EstimatedHours))
				}
				fmt.Println(line)
			}
			if timeSummary {
				fmt.Println(tui.BoldStyle.Render(fmt.Sprintf("Total: %.1fh", total)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&timeSummary, "summary", false, "Show the total tracked hours")
	return cmd
}
