package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

var (
	listJSON      bool
	listDate      string
	listScheduled bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		ctx := context.Background()

		var (
			notes []core.Note
			err   error
		)
		switch {
		case listDate != "":
			notes, err = svc.NotesOn(ctx, *parseDay(listDate))
		case listScheduled:
			notes, err = svc.ScheduledNotes(ctx)
		default:
			notes, err = svc.ListNotes(ctx)
		}
		if err != nil {
			fatal("Failed to list notes", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, n := range notes {
			fmt.Printf("%d\t%s %s\t%s\t%s\n", n.ID, n.FormattedDate(), n.FormattedTime(), n.Title, n.Preview(40))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listDate, "date", "", "Only notes on this day (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listScheduled, "scheduled", false, "Only scheduled notes, soonest first")
}
