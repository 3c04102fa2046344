// Package jotter is the composition root of a local note keeper.
//
// Notes are Markdown files with YAML frontmatter under <vault>/notes, optionally
// versioned with Git. Note content carries inline formatting markup that the
// editor package produces and parses:
//
//	<b>bold</b> <i>italic</i> <font color='#FF0000'>red</font>
//
// Bulleted lines start with "• " and are plain text in the buffer.
//
// Usage:
//
//	svc, err := jotter.New("./vault",
//		jotter.WithAutoInit(true),
//		jotter.WithLogger(logger),
//	)
//
//	n, err := svc.SaveNote(ctx, core.Note{Title: "Groceries", Content: "• milk"})
//
//	ed := jotter.NewEditor(&n, editor.WithFormattedSink(func(markup string) {
//		n.Content = markup
//	}))
//	ed.SetSelection(editor.Selection{Start: 2, End: 6})
//	ed.ToggleBold()
package jotter
