package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/palette"
)

var (
	newTitle      string
	newContent    string
	newDate       string
	newBackground string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long:  `Create a note. Content may contain formatting markup (<b>, <i>, <font color='#RRGGBB'>).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		n := core.Note{Title: newTitle, Content: newContent}
		if newDate != "" {
			n.ScheduledDate = parseDay(newDate)
		}
		if newBackground != "" {
			c, err := palette.ParseHex(newBackground)
			if err != nil {
				fatal("Invalid background color", err)
			}
			n.BackgroundColor = c
		}

		reqID, results := svc.SaveNoteAsync(changeContext(context.Background()), n)
		slog.Debug("save requested", "request", reqID)
		res := <-results
		if res.Err != nil {
			fatal("Failed to save note", res.Err)
		}
		fmt.Printf("Note %d created.\n", res.Note.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newTitle, "title", "", "Note title")
	newCmd.Flags().StringVar(&newContent, "content", "", "Note content (markup)")
	newCmd.Flags().StringVar(&newDate, "date", "", "Schedule on a day (YYYY-MM-DD)")
	newCmd.Flags().StringVar(&newBackground, "background", "", "Card color (#RRGGBB)")
	newCmd.Flags().StringVarP(&message, "message", "m", "", "Change reason (commit message)")
}
