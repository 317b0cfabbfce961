package main

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the full roadmap",
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	r, err := engine.Show()
	if err != nil {
		return err
	}
	printRoadmapHeader(r)
	printTaskTable(r, r.Tasks, false)
	return nil
}
