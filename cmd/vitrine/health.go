package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrinelabs/vitrine/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the vitrine service",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := profileClient.Health(context.Background())
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}

		if jsonOutput {
			if err := printJSON(resp); err != nil {
				return err
			}
		} else {
			fmt.Printf("Health: %s\n", resp.Status)
			if resp.Store == "available" {
				fmt.Printf("Store:  %s\n", ui.RenderOK(resp.Store))
			} else {
				fmt.Printf("Store:  %s\n", ui.RenderWarn(resp.Store))
			}
		}

		if resp.Status != "ok" {
			return fmt.Errorf("unhealthy: %s", resp.Status)
		}
		return nil
	},
}
