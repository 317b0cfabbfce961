package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raskcli/rask/internal/tui"
	"github.com/raskcli/rask/internal/workspace"
)

var (
	projectCreateDesc string
	projectDelForce   bool
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the project workspace",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspace.Open()
			if err != nil {
				return err
			}
			projects, reg, err := ws.List()
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects registered; use 'rask project create <name>'")
				return nil
			}
			current := ws.Current(reg)
			for _, p := range projects {
				marker := "  "
				name := p.Name
				switch {
				case p.Name == current:
					marker = tui.StatusReady.Render("→ ")
					name = tui.BoldStyle.Render(name)
				case p.Name == reg.DefaultProject:
					marker = tui.DimStyle.Render("* ")
				}
				line := fmt.Sprintf("%s%s", marker, name)
				if p.Description != "" {
					line += tui.SubtitleStyle.Render("  " + p.Description)
				}
				fmt.Println(line)
				fmt.Println(tui.DimStyle.Render("    " + p.StateFile))
			}
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <NAME>",
		Short: "Register a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspace.Open()
			if err != nil {
				return err
			}
			p, err := ws.Create(args[0], projectCreateDesc)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %q\n", p.Name)
			fmt.Printf("State file: %s\n", p.StateFile)
			return nil
		},
	}
	create.Flags().StringVar(&projectCreateDesc, "description", "", "Project description")

	switchCmd := &cobra.Command{
		Use:   "switch <NAME>",
		Short: "Make a project the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspace.Open()
			if err != nil {
				return err
			}
			if err := ws.Switch(args[0]); err != nil {
				return err
			}
			fmt.Printf("Switched to project %q\n", args[0])
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <NAME>",
		Short: "Delete a project and its state file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !projectDelForce && !confirm(fmt.Sprintf("Delete project %q and its state file?", args[0])) {
				fmt.Println("Aborted")
				return nil
			}
			ws, err := workspace.Open()
			if err != nil {
				return err
			}
			if err := ws.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted project %q\n", args[0])
			return nil
		},
	}
	del.Flags().BoolVar(&projectDelForce, "force", false, "Skip the confirmation prompt")

	cmd.AddCommand(list, create, switchCmd, del)
	return cmd
}

// confirm asks a y/N question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
