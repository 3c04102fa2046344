package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/render"
)

var (
	readJSON  bool
	readPlain bool
	readHTML  bool
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Read a note",
	Long:  `Print the content of a note with its markup, without it (--plain), as HTML (--html) or as JSON (--json).`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		svc := openService()

		n, err := svc.GetNote(context.Background(), id)
		if err != nil {
			reportNotFound(err, id)
			fatal("Failed to read note", err)
		}

		switch {
		case readJSON:
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(n); err != nil {
				fatal("Failed to encode JSON", err)
			}
		case readHTML:
			out, err := render.HTML(n.Content)
			if err != nil {
				fatal("Failed to render note", err)
			}
			fmt.Print(out)
		case readPlain:
			fmt.Println(n.PlainText())
		default:
			fmt.Println(n.Content)
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
	readCmd.Flags().BoolVar(&readPlain, "plain", false, "Strip formatting markup")
	readCmd.Flags().BoolVar(&readHTML, "html", false, "Render as HTML")
}
