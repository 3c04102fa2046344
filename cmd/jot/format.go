package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/editor"
)

var (
	formatBold   []string
	formatItalic []string
	formatColor  []string
	formatBullet []int
)

var formatCmd = &cobra.Command{
	Use:   "format [id]",
	Short: "Apply formatting to a note",
	Long: `Apply formatting to ranges of the note's plain text. Offsets count characters
of the text without markup, end exclusive, and refer to the text before any
--bullet toggle.

  jot format 3 --bold 0:5 --color '#FF0000@6:10' --bullet 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		svc := openService()
		ctx := changeContext(context.Background())

		n, err := svc.GetNote(ctx, id)
		if err != nil {
			reportNotFound(err, id)
			fatal("Failed to read note", err)
		}

		ed := jotter.NewEditor(&n)
		if err := applyFormat(ed, formatRequest{
			Bold:    formatBold,
			Italic:  formatItalic,
			Color:   formatColor,
			Bullets: formatBullet,
		}); err != nil {
			fatal("Invalid format request", err)
		}

		n.Content = ed.Markup()
		if _, err := svc.SaveNote(ctx, n); err != nil {
			fatal("Failed to save note", err)
		}
		fmt.Println(n.Content)
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringArrayVar(&formatBold, "bold", nil, "Toggle bold on start:end")
	formatCmd.Flags().StringArrayVar(&formatItalic, "italic", nil, "Toggle italic on start:end")
	formatCmd.Flags().StringArrayVar(&formatColor, "color", nil, "Color a range, '#RRGGBB@start:end' (empty color clears)")
	formatCmd.Flags().IntSliceVar(&formatBullet, "bullet", nil, "Toggle the bullet of a 0-based line")
	formatCmd.Flags().StringVarP(&message, "message", "m", "", "Change reason (commit message)")
}

type formatRequest struct {
	Bold    []string
	Italic  []string
	Color   []string
	Bullets []int
}

// applyFormat drives the editor like a user selecting text and pressing the
// toolbar buttons. Ranges are applied before bullets so offsets stay stable.
func applyFormat(ed *editor.Editor, req formatRequest) error {
	for _, spec := range req.Bold {
		sel, err := parseRange(spec)
		if err != nil {
			return err
		}
		ed.SetSelection(sel)
		ed.ToggleBold()
	}
	for _, spec := range req.Italic {
		sel, err := parseRange(spec)
		if err != nil {
			return err
		}
		ed.SetSelection(sel)
		ed.ToggleItalic()
	}
	for _, spec := range req.Color {
		hex, rng, ok := strings.Cut(spec, "@")
		if !ok {
			return fmt.Errorf("color %q: want '#RRGGBB@start:end'", spec)
		}
		sel, err := parseRange(rng)
		if err != nil {
			return err
		}
		ed.SetSelection(sel)
		ed.SetTextColor(hex)
	}
	for _, line := range req.Bullets {
		off, ok := lineOffset(ed.Text(), line)
		if !ok {
			return fmt.Errorf("line %d out of range", line)
		}
		ed.SetSelection(editor.Caret(off))
		ed.ToggleBulletList()
	}
	return nil
}

// parseRange parses "start:end" into a selection.
func parseRange(spec string) (editor.Selection, error) {
	a, b, ok := strings.Cut(spec, ":")
	if !ok {
		return editor.Selection{}, fmt.Errorf("range %q: want start:end", spec)
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return editor.Selection{}, fmt.Errorf("range %q: %w", spec, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return editor.Selection{}, fmt.Errorf("range %q: %w", spec, err)
	}
	if start < 0 || end < start {
		return editor.Selection{}, fmt.Errorf("range %q: want 0 <= start <= end", spec)
	}
	return editor.Selection{Start: start, End: end}, nil
}

// lineOffset returns the rune offset where the 0-based line starts.
func lineOffset(text string, line int) (int, bool) {
	if line < 0 {
		return 0, false
	}
	current := 0
	off := 0
	for _, r := range text {
		if current == line {
			return off, true
		}
		if r == '\n' {
			current++
		}
		off++
	}
	return off, current == line
}
