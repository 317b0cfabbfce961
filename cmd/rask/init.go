package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <FILE>",
		Short: "Ingest a markdown roadmap into the active project",
		Long: `Parse a markdown file into the active project's roadmap.

The first level-1 heading becomes the roadmap title and every list item
becomes a task ([x] marks completed ones). The file is linked as the
roadmap's source: later mutations are written back to it.`,
		Args: cobra.ExactArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	res, err := engine.Init(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Initialized roadmap %q with %d task(s)\n", res.Title, res.TaskCount)
	fmt.Printf("State file: %s\n", res.StatePath)
	return nil
}
