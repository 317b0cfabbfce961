package main

import (
	"github.com/spf13/cobra"
)

var bulkForce bool

func newBulkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Apply an operation to a comma-separated ID list",
		Long: `Batch variants of the single-task commands. Per-task preconditions
are checked individually; failures are reported and skipped without
aborting the rest of the batch.`,
	}

	complete := &cobra.Command{
		Use:   "complete <IDS>",
		Short: "Complete several tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.BulkComplete(ids)
			if err != nil {
				return err
			}
			printBulkResult("Completed", res)
			return nil
		},
	}

	addTags := &cobra.Command{
		Use:   "add-tags <IDS> <TAGS>",
		Short: "Add tags to several tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.BulkAddTags(ids, splitTags(args[1]))
			if err != nil {
				return err
			}
			printBulkResult("Tagged", res)
			return nil
		},
	}

	removeTags := &cobra.Command{
		Use:   "remove-tags <IDS> <TAGS>",
		Short: "Remove tags from several tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.BulkRemoveTags(ids, splitTags(args[1]))
			if err != nil {
				return err
			}
			printBulkResult("Untagged", res)
			return nil
		},
	}

	setPriority := &cobra.Command{
		Use:   "set-priority <IDS> <PRIORITY>",
		Short: "Set the priority on several tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.BulkSetPriority(ids, args[1])
			if err != nil {
				return err
			}
			printBulkResult("Updated", res)
			return nil
		},
	}

	setPhase := &cobra.Command{
		Use:   "set-phase <IDS> <PHASE>",
		Short: "Set the phase on several tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.BulkSetPhase(ids, args[1])
			if err != nil {
				return err
			}
			printBulkResult("Updated", res)
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset <IDS>",
		Short: "Reset several tasks to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.BulkReset(ids)
			if err != nil {
				return err
			}
			printBulkResult("Reset", res)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <IDS>",
		Short: "Remove several tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDList(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.BulkRemove(ids, bulkForce)
			if err != nil {
				return err
			}
			printBulkResult("Removed", res)
			return nil
		},
	}
	remove.Flags().BoolVar(&bulkForce, "force", false, "Remove even when tasks outside the batch depend on them")

	cmd.AddCommand(complete, addTags, removeTags, setPriority, setPhase, reset, remove)
	return cmd
}
