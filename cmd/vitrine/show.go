package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <fid>",
	Short: "Show a profile's entitlement and saved preferences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseFIDArg(args[0])
		if err != nil {
			return err
		}

		res, err := profileClient.LoadProfile(context.Background(), fid)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}

		if jsonOutput {
			return printJSON(res)
		}
		printLoadResult(fid, res)
		return nil
	},
}
