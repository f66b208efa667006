package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alfredjeanlab/taskhelm/internal/model"
	"github.com/alfredjeanlab/taskhelm/internal/ui"
	"github.com/spf13/cobra"
)

var respondCmd = &cobra.Command{
	Use:   "respond <request-id> <approve|modify|abort>",
	Short: "Answer a pending checkpoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		requestID := args[0]
		action := model.HITLAction(args[1])
		if !action.IsValid() {
			return fmt.Errorf("action must be approve, modify, or abort (got %q)", args[1])
		}

		instructions, _ := cmd.Flags().GetString("message")
		if action == model.ActionModify && instructions == "" {
			return fmt.Errorf("modify requires instructions (-m)")
		}

		err := ctl.SendHITLResponse(context.Background(), &model.HITLResponse{
			RequestID:                requestID,
			Action:                   action,
			ModificationInstructions: instructions,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.RenderError("response not delivered: "+err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Sent %s for %s\n", action, requestID)
		return nil
	},
}

func init() {
	respondCmd.Flags().StringP("message", "m", "", "modification instructions (required for modify)")
}
