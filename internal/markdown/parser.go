// Package markdown converts between roadmap values and the markdown source
// file format: a single H1 title followed by checkbox list items, one per
// task. The round trip preserves the title and each task's description and
// status; all other task fields live only in the JSON state file.
package markdown

import (
	"errors"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/raskcli/rask/internal/task"
)

// ErrMissingTitle is returned when the document has no level-1 heading.
var ErrMissingTitle = errors.New("markdown document has no level-1 heading to use as the roadmap title")

// Parse ingests a markdown document into a roadmap. The first H1 becomes
// the title; every list item, at any nesting level, becomes one task with
// IDs assigned in document order starting at 1.
func Parse(source []byte, now time.Time) (*task.Roadmap, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var title string
	var tasks []task.Task

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = strings.TrimSpace(inlineText(node, source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			raw := listItemText(node, source)
			if raw == "" {
				return ast.WalkContinue, nil
			}
			status, description := splitStatusPrefix(raw)
			if description == "" {
				return ast.WalkContinue, nil
			}
			t := task.Task{
				Description: description,
				Status:      status,
				Priority:    task.PriorityMedium,
				Phase:       task.DefaultPhase(),
				CreatedAt:   now,
			}
			if status == task.StatusCompleted {
				done := now
				t.CompletedAt = &done
			}
			tasks = append(tasks, t)
			// Keep walking: nested lists inside this item are tasks too.
			return ast.WalkContinue, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, ErrMissingTitle
	}

	for i := range tasks {
		tasks[i].ID = i + 1
	}

	r := task.NewRoadmap(title, now)
	r.Tasks = tasks
	return r, nil
}

// listItemText extracts the item's own text: inline text and inline code
// from its leading paragraph or text block children. The first nested block
// (a sublist, block quote, code block) terminates extraction for the item.
func listItemText(item *ast.ListItem, source []byte) string {
	var parts []string
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.TextBlock, *ast.Paragraph:
			if s := strings.TrimSpace(inlineText(child, source)); s != "" {
				parts = append(parts, s)
			}
		default:
			return strings.Join(parts, " ")
		}
	}
	return strings.Join(parts, " ")
}

// inlineText concatenates the text content of a node's inline children,
// descending through emphasis, links, and code spans.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteByte(' ')
				}
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// splitStatusPrefix interprets a leading checkbox marker on the extracted
// item text. "[x]" and "[X]" mean completed, "[ ]" means pending, and text
// with no marker is a pending task as-is.
func splitStatusPrefix(s string) (task.Status, string) {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(trimmed, "[x]"), strings.HasPrefix(trimmed, "[X]"):
		return task.StatusCompleted, strings.TrimSpace(trimmed[3:])
	case strings.HasPrefix(trimmed, "[ ]"):
		return task.StatusPending, strings.TrimSpace(trimmed[3:])
	default:
		return task.StatusPending, trimmed
	}
}
