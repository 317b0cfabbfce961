package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/raskcli/rask/internal/deps"
	"github.com/raskcli/rask/internal/task"
	"github.com/raskcli/rask/internal/tui"
)

// statusGlyph renders a task's state, taking readiness into account.
func statusGlyph(r *task.Roadmap, t *task.Task) string {
	switch {
	case t.Status == task.StatusCompleted:
		return tui.StatusCompleted.Render(tui.IndicatorCompleted)
	case deps.IsReady(r, t):
		return tui.StatusReady.Render(tui.IndicatorReady)
	default:
		return tui.StatusBlocked.Render(tui.IndicatorBlocked)
	}
}

// printTaskTable renders tasks in the list/show layout.
func printTaskTable(r *task.Roadmap, tasks []task.Task, detailed bool) {
	header := fmt.Sprintf("%-4s %-2s %-50s %-9s %-10s", "ID", "", "TASK", "PRIORITY", "PHASE")
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(tui.ColorGray).Render(header))
	fmt.Println(strings.Repeat("-", 80))

	for i := range tasks {
		t := &tasks[i]
		desc := t.Description
		if len(desc) > 48 {
			desc = desc[:45] + "..."
		}
		style := lipgloss.NewStyle()
		if t.Status == task.StatusCompleted {
			style = style.Foreground(tui.ColorGray)
		}
		fmt.Printf("%-4d %s %s %s %s\n",
			t.ID,
			statusGlyph(r, t),
			style.Width(51).Render(desc),
			tui.GetPriorityStyle(string(t.Priority)).Width(10).Render(string(t.Priority)),
			t.Phase.String(),
		)
		if detailed {
			printTaskDetail(r, t, "     ")
		}
	}
}

// printTaskDetail renders the secondary fields of one task.
func printTaskDetail(r *task.Roadmap, t *task.Task, indent string) {
	dim := tui.DimStyle
	if len(t.Tags) > 0 {
		fmt.Println(dim.Render(indent + "tags: " + strings.Join(t.Tags, ", ")))
	}
	if len(t.Dependencies) > 0 {
		fmt.Println(dim.Render(indent + fmt.Sprintf("depends on: %v", t.Dependencies)))
	}
	if t.Notes != nil {
		fmt.Println(dim.Render(indent + "notes: " + *t.Notes))
	}
	if t.EstimatedHours != nil {
		fmt.Println(dim.Render(indent + fmt.Sprintf("estimate: %.1fh", *t.EstimatedHours)))
	}
	if t.ActualHours != nil {
		fmt.Println(dim.Render(indent + fmt.Sprintf("tracked: %.1fh", *t.ActualHours)))
	}
	if t.AIInfo != nil && t.AIInfo.GeneratedByAI {
		fmt.Println(dim.Render(indent + "generated by " + t.AIInfo.Model))
	}
}

// printRoadmapHeader renders the title and progress line.
func printRoadmapHeader(r *task.Roadmap) {
	completed, total := r.Progress()
	ratio := 0.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}
	fmt.Println(tui.TitleStyle.Render(r.Title))
	fmt.Printf("%s %s\n\n",
		tui.StatusCompleted.Render(tui.RenderProgressBar(ratio, 30)),
		tui.SubtitleStyle.Render(fmt.Sprintf("%d/%d completed", completed, total)),
	)
}

// printDependencyTree renders a dependency tree with box-drawing prefixes.
func printDependencyTree(node *deps.Node, prefix string, last bool) {
	connector := "├─ "
	childPrefix := prefix + "│  "
	if last {
		connector = "└─ "
		childPrefix = prefix + "   "
	}
	if prefix == "" {
		connector = ""
		childPrefix = "   "
	}

	label := fmt.Sprintf("%d %s", node.ID, node.Description)
	switch {
	case node.NotFound:
		label = tui.ErrorStyle.Render(fmt.Sprintf("%d (not found)", node.ID))
	case node.Circular:
		label = tui.ErrorStyle.Render(fmt.Sprintf("%d %s (circular)", node.ID, node.Description))
	case node.Status == task.StatusCompleted:
		label = tui.StatusCompleted.Render(tui.IndicatorCompleted+" ") + tui.DimStyle.Render(label)
	default:
		label = tui.StatusPending.Render(tui.IndicatorPending+" ") + label
	}
	fmt.Println(prefix + connector + label)

	for i, child := range node.Children {
		printDependencyTree(child, childPrefix, i == len(node.Children)-1)
	}
}
