package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/tui"
)

var (
	phaseCreateDesc  string
	phaseCreateEmoji string
	phaseCreateIDs   string
)

func newPhaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage roadmap phases",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List phases with task counts",
		RunE:  runPhaseOverview,
	}

	overview := &cobra.Command{
		Use:   "overview",
		Short: "Show per-phase progress",
		RunE:  runPhaseOverview,
	}

	show := &cobra.Command{
		Use:   "show <PHASE>",
		Short: "List the tasks in a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			tasks, phase, err := engine.PhaseShow(args[0])
			if err != nil {
				return err
			}
			fmt.Println(tui.TitleStyle.Render(phase.String()))
			if len(tasks) == 0 {
				fmt.Println("No tasks in this phase")
				return nil
			}
			r, err := engine.Show()
			if err != nil {
				return err
			}
			printTaskTable(r, tasks, false)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <ID> <PHASE>",
		Short: "Assign a task to a phase",
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
			res, err := engine.PhaseSet(id, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Task %d moved to %s\n", id, res.Task.Phase.String())
			warnSync(res.SyncWarning)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <NAME>",
		Short: "Create a custom phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			var ids []int
			if phaseCreateIDs != "" {
				ids, err = parseIDList(phaseCreateIDs)
				if err != nil {
					return err
				}
			}
			phase, res, err := engine.PhaseCreate(args[0], phaseCreateDesc, phaseCreateEmoji, ids)
			if err != nil {
				return err
			}
			fmt.Printf("Created phase %s\n", phase.String())
			if len(ids) > 0 {
				printBulkResult("Assigned", res)
			}
			return nil
		},
	}
	create.Flags().StringVar(&phaseCreateDesc, "description", "", "Phase description")
	create.Flags().StringVar(&phaseCreateEmoji, "emoji", "", "Phase emoji")
	create.Flags().StringVar(&phaseCreateIDs, "tasks", "", "Task IDs to assign (comma-separated)")

	fork := &cobra.Command{
		Use:   "fork <ID> <PHASE>",
		Short: "Clone a task into another phase",
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
			res, err := engine.PhaseFork(id, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Forked task %d into %s as task %d\n", id, res.Task.Phase.String(), res.Task.ID)
			warnSync(res.SyncWarning)
			return nil
		},
	}

	cmd.AddCommand(list, show, set, overview, create, fork)
	return cmd
}

func runPhaseOverview(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	infos, err := engine.PhaseOverview()
	if err != nil {
		return err
	}
	for _, info := range infos {
		ratio := 0.0
		if info.Total > 0 {
			ratio = float64(info.Completed) / float64(info.Total)
		}
		fmt.Printf("%-14s %s %s\n",
			info.Phase.String(),
			tui.StatusCompleted.Render(tui.RenderProgressBar(ratio, 20)),
			tui.SubtitleStyle.Render(fmt.Sprintf("%d/%d", info.Completed, info.Total)),
		)
	}
	return nil
}
