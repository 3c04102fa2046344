package jotter_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/editor"
)

// Example_basic demonstrates how to open a vault, save a note, and read it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "jotter-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := jotter.New(tmpDir, jotter.WithAutoInit(true), jotter.WithVersioning(false))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	n, err := svc.SaveNote(ctx, core.Note{Title: "Hello", Content: "my first <b>note</b>"})
	if err != nil {
		log.Fatal(err)
	}

	got, err := svc.GetNote(ctx, n.ID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d: %s\n", got.ID, got.PlainText())
	// Output:
	// 1: my first note
}

// ExampleNewEditor formats part of a stored note and saves the result.
func ExampleNewEditor() {
	tmpDir, err := os.MkdirTemp("", "jotter-editor-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := jotter.New(tmpDir, jotter.WithAutoInit(true), jotter.WithVersioning(false))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	n, err := svc.SaveNote(ctx, core.Note{Title: "Groceries", Content: "• milk"})
	if err != nil {
		log.Fatal(err)
	}

	ed := jotter.NewEditor(&n, editor.WithFormattedSink(func(markup string) {
		n.Content = markup
	}))
	ed.SetSelection(editor.Selection{Start: 2, End: 6})
	ed.ToggleBold()

	if _, err := svc.SaveNote(ctx, n); err != nil {
		log.Fatal(err)
	}
	fmt.Println(n.Content)
	// Output:
	// • <b>milk</b>
}
