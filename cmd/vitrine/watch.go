package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/vitrinelabs/vitrine/internal/events"
	"github.com/vitrinelabs/vitrine/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream profile events from the bus",
	Long: `Subscribe to the vitrine event bus and print mint and preference
events as they happen. Requires a NATS URL, from --nats, VITRINE_NATS_URL,
or the active remote.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats")
		if natsURL == "" {
			natsURL = os.Getenv("VITRINE_NATS_URL")
		}
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL; pass --nats or set VITRINE_NATS_URL")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe("vitrine.>")
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		fmt.Fprintf(os.Stderr, "watching %s\n", natsURL)
		for {
			select {
			case <-ctx.Done():
				return nil
			case data, ok := <-ch:
				if !ok {
					return nil
				}
				printEvent(data)
			}
		}
	},
}

// printEvent prints one raw event payload, prettified unless --json.
func printEvent(data []byte) {
	if jsonOutput {
		fmt.Println(string(data))
		return
	}

	ts := ui.RenderMuted(time.Now().Format("15:04:05"))

	var ev struct {
		EventID string `json:"event_id"`
		FID     int64  `json:"fid"`
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		fmt.Printf("%s %s\n", ts, string(data))
		return
	}
	fmt.Printf("%s %s %s\n", ts, ui.RenderAccent(fmt.Sprintf("fid=%d", ev.FID)), string(data))
}

func init() {
	watchCmd.Flags().String("nats", "", "NATS URL to subscribe to")
}
