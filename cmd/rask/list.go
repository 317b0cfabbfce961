package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/commands"
	"github.com/raskcli/rask/internal/config"
	"github.com/raskcli/rask/internal/task"
)

var (
	listTags     string
	listPriority string
	listPhase    string
	listStatus   string
	listSearch   string
	listDetailed bool
	listJSON     bool
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with optional filters",
		RunE:  runList,
	}
	cmd.Flags().StringVar(&listTags, "tags", "", "Filter by tags (comma-separated, any match)")
	cmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority (low, medium, high, critical)")
	cmd.Flags().StringVar(&listPhase, "phase", "", "Filter by phase name")
	cmd.Flags().StringVar(&listStatus, "status", "all", "Filter by status (pending, completed, all)")
	cmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive search over descriptions, tags, and notes")
	cmd.Flags().BoolVar(&listDetailed, "detailed", false, "Show task details")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	filter := commands.Filter{
		Phase:  listPhase,
		Search: listSearch,
	}
	if listTags != "" {
		filter.Tags = splitTags(listTags)
	}
	if listPriority != "" {
		p, err := task.ParsePriority(listPriority)
		if err != nil {
			return err
		}
		filter.Priority = &p
	}
	switch listStatus {
	case "pending":
		filter.Status = commands.StatusFilterPending
	case "completed":
		filter.Status = commands.StatusFilterCompleted
	case "all", "":
		filter.Status = commands.StatusFilterAll
	default:
		return fmt.Errorf("invalid status filter %q (pending, completed, all)", listStatus)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	tasks, r, err := engine.List(filter)
	if err != nil {
		return err
	}

	if listJSON {
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks match")
		return nil
	}

	detailed := listDetailed
	if settings, err := config.Get(); err == nil && settings.DetailedList {
		detailed = true
	}
	printRoadmapHeader(r)
	printTaskTable(r, tasks, detailed)
	return nil
}
