package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Force an orchestrator state snapshot to disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ctl.ForceSave(context.Background()); err != nil {
			return err
		}
		fmt.Println("State saved")
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore orchestrator state from the last snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ctl.ForceRestore(context.Background()); err != nil {
			return err
		}
		fmt.Println("State restored")
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check orchestrator health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := ctl.Health(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]string{"status": status})
			return nil
		}
		fmt.Println(status)
		return nil
	},
}
