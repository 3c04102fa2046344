package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/adapters/lifecycle"
	"github.com/aretw0/jotter/pkg/core"
)

var watchEntity string

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print changes made to the vault by other programs",
	Long: `Watch reports notes and settings changed outside this process until
interrupted. The optional pattern filters vault-relative paths (e.g. "notes/1*.md").`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		svc := openService()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := svc.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to watch vault", err)
		}

		var opts []lifecycle.SourceOption
		if watchEntity != "" {
			opts = append(opts, lifecycle.WithEntities(core.Entity(watchEntity)))
		}
		src := lifecycle.NewSource(events, opts...)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		for e := range src.Events() {
			fmt.Println(e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchEntity, "entity", "", "Only report this entity (note or settings)")
}
