package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vitrinelabs/vitrine/internal/client"
	"github.com/vitrinelabs/vitrine/internal/ui"
)

var (
	httpURL    string
	authToken  string
	jsonOutput bool

	profileClient client.ProfileClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("VITRINE_HTTP_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("VITRINE_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

var rootCmd = &cobra.Command{
	Use:   "vitrine <command>",
	Short: "CLI client for the vitrine profile service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		profileClient = client.NewHTTPClient(httpURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profileClient != nil {
			profileClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "url", defaultHTTPURL(), "server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for authentication")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	if !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(mintCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
