package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note from the vault",
	Long:  `Delete permanently removes a note and, in a versioned vault, commits the removal.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		svc := openService()

		if err := svc.DeleteNote(changeContext(context.Background()), id); err != nil {
			reportNotFound(err, id)
			fatal("Failed to delete note", err)
		}
		fmt.Printf("Note %d deleted.\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVarP(&message, "message", "m", "", "Change reason (commit message)")
}
