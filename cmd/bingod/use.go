package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <event-file>",
	Short: "Make an archived event the current event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ev, err := store.UseEvent(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Now using %s (%s)\n", ev.Name, ev.ID)
		return nil
	},
}
