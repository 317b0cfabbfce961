package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/raskcli/rask/internal/deps"
	"github.com/raskcli/rask/internal/task"
)

// Loader re-reads the roadmap; the dashboard calls it on 'r'.
type Loader func() (*task.Roadmap, error)

// Dashboard is the bubbletea model for the full-screen roadmap view.
type Dashboard struct {
	load    Loader
	roadmap *task.Roadmap
	table   table.Model
	width   int
	height  int
	err     error
}

// NewDashboard builds the dashboard over an initial roadmap.
func NewDashboard(r *task.Roadmap, load Loader) *Dashboard {
	d := &Dashboard{load: load, roadmap: r}
	d.table = table.New(
		table.WithColumns(taskColumns(80)),
		table.WithRows(taskRows(r)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorCyan).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(ColorCyan).Bold(true)
	d.table.SetStyles(styles)
	return d
}

func taskColumns(width int) []table.Column {
	desc := width - 30
	if desc < 20 {
		desc = 20
	}
	return []table.Column{
		{Title: "ID", Width: 4},
		{Title: "TASK", Width: desc},
		{Title: "PRIORITY", Width: 9},
		{Title: "STATUS", Width: 10},
	}
}

func taskRows(r *task.Roadmap) []table.Row {
	rows := make([]table.Row, 0, len(r.Tasks))
	for i := range r.Tasks {
		t := &r.Tasks[i]
		status := "pending"
		switch {
		case t.Status == task.StatusCompleted:
			status = IndicatorCompleted + " done"
		case deps.IsReady(r, t):
			status = IndicatorReady + " ready"
		default:
			status = IndicatorBlocked + " blocked"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(t.ID),
			t.Description,
			string(t.Priority),
			status,
		})
	}
	return rows
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.table.SetColumns(taskColumns(msg.Width - 6))
		d.table.SetHeight(msg.Height - 10)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return d, tea.Quit
		case "r":
			if d.load != nil {
				r, err := d.load()
				if err != nil {
					d.err = err
				} else {
					d.err = nil
					d.roadmap = r
					d.table.SetRows(taskRows(r))
				}
			}
		}
	}
	var cmd tea.Cmd
	d.table, cmd = d.table.Update(msg)
	return d, cmd
}

// View implements tea.Model.
func (d *Dashboard) View() string {
	r := d.roadmap
	completed, total := r.Progress()
	ratio := 0.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d/%d tasks completed", completed, total)))
	b.WriteString("  ")
	b.WriteString(StatusCompleted.Render(RenderProgressBar(ratio, 30)))
	b.WriteString("\n\n")
	b.WriteString(d.table.View())
	b.WriteString("\n")

	ready := deps.Ready(r)
	blocked := deps.Blocked(r)
	summary := fmt.Sprintf("%s %d ready   %s %d blocked",
		StatusReady.Render(IndicatorReady), len(ready),
		StatusBlocked.Render(IndicatorBlocked), len(blocked))
	b.WriteString(summary)
	b.WriteString("\n")

	if d.err != nil {
		b.WriteString(ErrorStyle.Render("reload failed: " + d.err.Error()))
		b.WriteString("\n")
	}

	help := lipgloss.JoinHorizontal(lipgloss.Top,
		HelpKeyStyle.Render("↑/↓"), HelpTextStyle.Render(" navigate  "),
		HelpKeyStyle.Render("r"), HelpTextStyle.Render(" reload  "),
		HelpKeyStyle.Render("q"), HelpTextStyle.Render(" quit"),
	)
	b.WriteString(help)
	return b.String()
}
