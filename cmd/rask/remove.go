package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeForce bool

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <ID>",
		Short: "Delete a task",
		Long: `Delete a task and renumber the survivors so IDs stay dense.

A task other tasks depend on is only removed with --force; dependency
lists of the survivors are rewritten either way.`,
		Args: cobra.ExactArgs(1),
		RunE: runRemove,
	}
	cmd.Flags().BoolVar(&removeForce, "force", false, "Remove even when other tasks depend on it")
	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	res, err := engine.Remove(id, removeForce)
	if err != nil {
		return err
	}
	fmt.Printf("Removed task %d: %s (%d task(s) remain)\n", id, res.Removed.Description, res.Renumbered)
	warnSync(res.SyncWarning)
	return nil
}
