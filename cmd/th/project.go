package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Switch or rerun orchestrator projects",
}

var projectSwitchCmd = &cobra.Command{
	Use:   "switch <project-id>",
	Short: "Make another project the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ctl.SwitchProject(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Switched to %s\n", args[0])
		return nil
	},
}

var projectRerunCmd = &cobra.Command{
	Use:   "rerun <project-id>",
	Short: "Re-execute a project from its stored plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ctl.RerunProject(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Rerun started for %s\n", args[0])
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectSwitchCmd)
	projectCmd.AddCommand(projectRerunCmd)
}
