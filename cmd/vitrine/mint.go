package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrinelabs/vitrine/internal/ui"
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Record and check mint entitlements",
}

var mintRecordCmd = &cobra.Command{
	Use:   "record <fid>",
	Short: "Record a mint entitlement for a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseFIDArg(args[0])
		if err != nil {
			return err
		}
		txHash, _ := cmd.Flags().GetString("tx")

		res, err := profileClient.RecordMint(context.Background(), fid, txHash)
		if err != nil {
			return fmt.Errorf("recording mint: %w", err)
		}
		return printSaveResult(res)
	},
}

var mintCheckCmd = &cobra.Command{
	Use:   "check <fid>",
	Short: "Check a profile's mint entitlement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fid, err := parseFIDArg(args[0])
		if err != nil {
			return err
		}

		status, err := profileClient.CheckMint(context.Background(), fid)
		if err != nil {
			return fmt.Errorf("checking mint: %w", err)
		}

		if jsonOutput {
			return printJSON(status)
		}
		if !status.Entitled {
			fmt.Printf("fid %d: %s\n", fid, ui.RenderWarn("not minted"))
			return nil
		}
		fmt.Printf("fid %d: %s", fid, ui.RenderOK("minted"))
		if status.Record != nil {
			fmt.Printf(" at %s", status.Record.GrantedAt.Format("2006-01-02 15:04:05"))
			if status.Record.TxHash != "" {
				fmt.Printf(" (%s)", ui.RenderMuted(status.Record.TxHash))
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	mintRecordCmd.Flags().String("tx", "", "mint transaction hash")

	mintCmd.AddCommand(mintRecordCmd)
	mintCmd.AddCommand(mintCheckCmd)
}
