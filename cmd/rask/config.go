package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/config"
)

var configInit bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration paths",
		RunE:  runConfig,
	}
	cmd.Flags().BoolVar(&configInit, "init", false, "Write an example config file")
	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.Paths()
	if configInit {
		path := paths[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := config.WriteExample(path); err != nil {
			return err
		}
		fmt.Printf("Wrote example config to %s\n", path)
		return nil
	}

	fmt.Println("Config search paths:")
	for _, path := range paths {
		marker := " "
		if _, err := os.Stat(path); err == nil {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, path)
	}
	return nil
}
