package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ID> <DESCRIPTION>",
		Short: "Replace a task's description",
		Args:  cobra.ExactArgs(2),
		RunE:  runEdit,
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	res, err := engine.Edit(id, args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Updated task %d: %s\n", id, res.Task.Description)
	warnSync(res.SyncWarning)
	return nil
}
