package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/groblegark/bingod/internal/engine"
	"github.com/groblegark/bingod/internal/model"
	"github.com/groblegark/bingod/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [event-file]",
	Short: "Show the current event, or a named archival record",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		var ev *model.Event
		if len(args) == 1 {
			ev, err = store.GetEvent(ctx, args[0])
			if err != nil {
				return err
			}
		} else {
			ev, err = store.LoadCurrent(ctx)
			if err != nil {
				return err
			}
			if ev == nil {
				fmt.Println("No current event.")
				return nil
			}
		}

		if jsonOutput {
			data, err := json.MarshalIndent(ev, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printEvent(ev)
		return nil
	},
}

func printEvent(ev *model.Event) {
	fmt.Printf("ID:         %s\n", ev.ID)
	fmt.Printf("Name:       %s\n", ev.Name)
	fmt.Printf("Status:     %s\n", ui.RenderStatus(ev.Status))
	fmt.Printf("Created At: %s\n", ev.CreatedAt.Format("2006-01-02 15:04:05"))
	if ev.StartedAt != nil {
		fmt.Printf("Started At: %s\n", ev.StartedAt.Format("2006-01-02 15:04:05"))
	}
	if ev.EndedAt != nil {
		fmt.Printf("Ended At:   %s\n", ev.EndedAt.Format("2006-01-02 15:04:05"))
	}
	if ev.WinnersTarget > 0 {
		fmt.Printf("Winners:    %d\n", ev.WinnersTarget)
	}
	fmt.Printf("Drawn:      %d  Remaining: %d\n", ev.DrawCount(), ev.RemainingCount)
	if ev.CurrentLabel != nil {
		fmt.Printf("Current:    %s\n", *ev.CurrentLabel)
	}
	if len(ev.DrawnOrder) > 0 {
		labels := make([]string, len(ev.DrawnOrder))
		for i, n := range ev.DrawnOrder {
			labels[i] = engine.Label(n)
		}
		fmt.Printf("History:    %s\n", ui.RenderMuted(strings.Join(labels, " ")))
	}
	if ev.StorageLocation != "" {
		fmt.Printf("File:       %s\n", ui.RenderMuted(ev.StorageLocation))
	}
}
