package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/commands"
)

var (
	addTags      string
	addPriority  string
	addPhase     string
	addNotes     string
	addDepends   string
	addEstimated float64
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <DESCRIPTION>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
	cmd.Flags().StringVar(&addTags, "tags", "", "Tags (comma-separated)")
	cmd.Flags().StringVar(&addPriority, "priority", "", "Priority (low, medium, high, critical)")
	cmd.Flags().StringVar(&addPhase, "phase", "", "Phase name")
	cmd.Flags().StringVar(&addNotes, "notes", "", "Free-text notes")
	cmd.Flags().StringVar(&addDepends, "dependencies", "", "Dependency task IDs (comma-separated)")
	cmd.Flags().Float64Var(&addEstimated, "estimated-hours", 0, "Estimated hours")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	params := commands.AddParams{
		Description: args[0],
		Priority:    addPriority,
		Phase:       addPhase,
		Notes:       addNotes,
	}
	if addTags != "" {
		params.Tags = splitTags(addTags)
	}
	if addDepends != "" {
		ids, err := parseIDList(addDepends)
		if err != nil {
			return err
		}
		params.Dependencies = ids
	}
	if cmd.Flags().Changed("estimated-hours") {
		hours := addEstimated
		params.EstimatedHours = &hours
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	res, err := engine.Add(params)
	if err != nil {
		return err
	}
	fmt.Printf("Added task %d: %s\n", res.Task.ID, res.Task.Description)
	warnSync(res.SyncWarning)
	return nil
}
