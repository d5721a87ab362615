package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/groblegark/bingod/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live draw and lifecycle events from a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL := os.Getenv("BINGO_NATS_URL")
		if natsURL == "" {
			return fmt.Errorf("BINGO_NATS_URL is not set (watch requires the event bus)")
		}

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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// One subscription per topic keeps the payload type known without
		// carrying the subject in the message body.
		watchers := []struct {
			topic string
			print func([]byte)
		}{
			{events.TopicNumberDrawn, printDrawn},
			{events.TopicDrawUndone, printUndone},
			{events.TopicEventCreated, printLifecycle("created")},
			{events.TopicEventStarted, printLifecycle("started")},
			{events.TopicEventEnded, printLifecycle("ended")},
			{events.TopicCurrentCleared, func([]byte) { printLine("current event cleared") }},
			{events.TopicCurrentResumed, printLifecycle("resumed")},
		}
		for _, w := range watchers {
			ch, cancel, err := sub.Subscribe(w.topic)
			if err != nil {
				return fmt.Errorf("subscribing to events: %w", err)
			}
			defer cancel()
			go func(ch <-chan []byte, print func([]byte)) {
				for data := range ch {
					print(data)
				}
			}(ch, w.print)
		}

		fmt.Println("Watching for events (Ctrl-C to stop)...")
		<-ctx.Done()
		return nil
	},
}

func printLine(format string, args ...any) {
	fmt.Printf("%s  %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

func printDrawn(data []byte) {
	var evt events.NumberDrawn
	if err := json.Unmarshal(data, &evt); err != nil {
		return
	}
	printLine("drew %s (%d drawn, %d remaining)", evt.Label, evt.DrawCount, evt.Remaining)
}

func printUndone(data []byte) {
	var evt events.DrawUndone
	if err := json.Unmarshal(data, &evt); err != nil {
		return
	}
	printLine("undid %d (%d drawn, %d remaining)", evt.Number, evt.DrawCount, evt.Remaining)
}

// printLifecycle returns a printer for the lifecycle payloads that carry the
// full event.
func printLifecycle(verb string) func([]byte) {
	return func(data []byte) {
		var evt struct {
			Event struct {
				ID   string `json:"eventId"`
				Name string `json:"eventName"`
			} `json:"event"`
		}
		if err := json.Unmarshal(data, &evt); err != nil {
			return
		}
		printLine("event %s %s (%s)", evt.Event.Name, verb, evt.Event.ID)
	}
}
