package main

import (
	"os"

	"github.com/alfredjeanlab/taskhelm/internal/client"
	"github.com/alfredjeanlab/taskhelm/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	authToken  string
	jsonOutput bool
	noColorOpt bool

	ctl client.ControlClient
)

func defaultServer() string {
	if s := os.Getenv("HELM_SERVER_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "th",
	Short: "CLI client for the TaskHelm orchestrator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColorOpt || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		if authToken == "" {
			authToken = os.Getenv("HELM_AUTH_TOKEN")
		}
		ctl = client.NewHTTPClient(serverURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if ctl != nil {
			ctl.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "orchestrator base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "bearer token (defaults to HELM_AUTH_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColorOpt, "no-color", false, "disable colored output")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(respondCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(viewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
