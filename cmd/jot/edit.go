package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/palette"
)

var (
	editTitle      string
	editContent    string
	editDate       string
	editUnschedule bool
	editBackground string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the fields of a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		svc := openService()
		ctx := changeContext(context.Background())

		n, err := svc.GetNote(ctx, id)
		if err != nil {
			reportNotFound(err, id)
			fatal("Failed to read note", err)
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			n.Title = editTitle
		}
		if flags.Changed("content") {
			n.Content = editContent
		}
		if flags.Changed("background") {
			c, err := palette.ParseHex(editBackground)
			if err != nil {
				fatal("Invalid background color", err)
			}
			n.BackgroundColor = c
		}
		switch {
		case editUnschedule:
			n.ScheduledDate = nil
		case editDate != "":
			n.ScheduledDate = parseDay(editDate)
		}

		if _, err := svc.SaveNote(ctx, n); err != nil {
			fatal("Failed to save note", err)
		}
		fmt.Printf("Note %d updated.\n", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content (markup)")
	editCmd.Flags().StringVar(&editDate, "date", "", "Schedule on a day (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editUnschedule, "unschedule", false, "Remove the scheduled date")
	editCmd.Flags().StringVar(&editBackground, "background", "", "Card color (#RRGGBB)")
	editCmd.Flags().StringVarP(&message, "message", "m", "", "Change reason (commit message)")
	editCmd.MarkFlagsMutuallyExclusive("date", "unschedule")
}
