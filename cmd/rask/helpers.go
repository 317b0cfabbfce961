package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/raskcli/rask/internal/commands"
	"github.com/raskcli/rask/internal/tui"
	"github.com/raskcli/rask/internal/workspace"
)

// newEngine opens the workspace and builds a command engine over it.
func newEngine() (*commands.Engine, error) {
	ws, err := workspace.Open()
	if err != nil {
		return nil, err
	}
	return commands.New(ws), nil
}

// parseID parses a single task ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// parseIDList parses a comma-separated ID list like "1,3,7".
func parseIDList(arg string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no task ids in %q", arg)
	}
	return ids, nil
}

// splitTags parses a comma-separated tag list, stripping one leading '#'
// from each element so "#feature" and "feature" store identically.
func splitTags(arg string) []string {
	var tags []string
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimPrefix(strings.TrimSpace(part), "#")
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// warnSync prints the markdown sync warning when a mutation saved its JSON
// state but could not rewrite the source file. Exit stays 0.
func warnSync(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, tui.WarningStyle.Render(fmt.Sprintf("warning: markdown sync failed: %v", err)))
}

// printBulkResult reports which IDs a bulk operation applied and which it
// skipped, with the reason for each skip.
func printBulkResult(verb string, res *commands.BulkResult) {
	if len(res.Succeeded) > 0 {
		fmt.Printf("%s %d task(s): %v\n", verb, len(res.Succeeded), res.Succeeded)
	}
	for _, f := range res.Failed {
		fmt.Println(tui.ErrorStyle.Render(fmt.Sprintf("  task %d skipped: %v", f.ID, f.Err)))
	}
	warnSync(res.SyncWarning)
}
