package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [ID]",
		Short: "Revert a task (or every task) to pending",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReset,
	}
}

func runReset(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	var ids []int
	if len(args) == 1 {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ids = []int{id}
	}
	res, err := engine.Reset(ids)
	if err != nil {
		return err
	}
	if len(ids) == 1 {
		fmt.Printf("Reset task %d to pending\n", ids[0])
	} else {
		fmt.Println("Reset all tasks to pending")
	}
	warnSync(res.SyncWarning)
	return nil
}
