package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage a task's implementation notes",
	}

	add := &cobra.Command{
		Use:   "add <ID> <TEXT>",
		Short: "Append an implementation note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.NoteAdd(id, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added note %d to task %d\n", len(res.Task.ImplementationNotes), id)
			warnSync(res.SyncWarning)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list <ID>",
		Short: "List a task's implementation notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			notes, err := engine.NotesList(id)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Printf("Task %d has no implementation notes\n", id)
				return nil
			}
			for i, note := range notes {
				fmt.Printf("%d. %s\n", i+1, note)
			}
			return nil
		},
	}

	edit := &cobra.Command{
		Use:   "edit <ID> <INDEX> <TEXT>",
		Short: "Replace one implementation note",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			index, err := parseID(args[1])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.NoteEdit(id, index, args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Updated note %d on task %d\n", index, id)
			warnSync(res.SyncWarning)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <ID> <INDEX>",
		Short: "Delete one implementation note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			index, err := parseID(args[1])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.NoteRemove(id, index)
			if err != nil {
				return err
			}
			fmt.Printf("Removed note %d from task %d\n", index, id)
			warnSync(res.SyncWarning)
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear <ID>",
		Short: "Delete every implementation note on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			res, err := engine.NotesClear(id)
			if err != nil {
				return err
			}
			fmt.Printf("Cleared notes on task %d\n", id)
			warnSync(res.SyncWarning)
			return nil
		},
	}

	cmd.AddCommand(add, list, edit, remove, clear)
	return cmd
}
