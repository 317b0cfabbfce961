package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/tui"
)

var (
	depsTaskID   int
	depsValidate bool
	depsReady    bool
	depsBlocked  bool
)

func newDependenciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dependencies",
		Short: "Query the dependency graph",
		RunE:  runDependencies,
	}
	cmd.Flags().IntVar(&depsTaskID, "task-id", 0, "Show the dependency tree for one task")
	cmd.Flags().BoolVar(&depsValidate, "validate", false, "Validate the whole graph")
	cmd.Flags().BoolVar(&depsReady, "ready", false, "List ready tasks")
	cmd.Flags().BoolVar(&depsBlocked, "blocked", false, "List blocked tasks")
	return cmd
}

func runDependencies(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	switch {
	case depsTaskID > 0:
		tree, err := engine.DependencyTree(depsTaskID)
		if err != nil {
			return err
		}
		printDependencyTree(tree, "", true)
		return nil

	case depsValidate:
		errs, err := engine.ValidateDependencies()
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			fmt.Println(tui.StatusCompleted.Render(tui.IndicatorCompleted + " dependency graph is valid"))
			return nil
		}
		for _, e := range errs {
			fmt.Println(tui.ErrorStyle.Render("  " + e.Error()))
		}
		return fmt.Errorf("%d dependency problem(s) found", len(errs))

	case depsReady:
		tasks, err := engine.ReadyTasks()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks are ready")
			return nil
		}
		for _, t := range tasks {
			fmt.Printf("%s %d %s\n", tui.StatusReady.Render(tui.IndicatorReady), t.ID, t.Description)
		}
		return nil

	case depsBlocked:
		blocked, err := engine.BlockedTasks()
		if err != nil {
			return err
		}
		if len(blocked) == 0 {
			fmt.Println("No tasks are blocked")
			return nil
		}
		for _, b := range blocked {
			fmt.Printf("%s %d %s %s\n",
				tui.StatusBlocked.Render(tui.IndicatorBlocked),
				b.Task.ID, b.Task.Description,
				tui.DimStyle.Render(fmt.Sprintf("waiting on %v", b.Missing)))
		}
		return nil

	default:
		return cmd.Help()
	}
}
