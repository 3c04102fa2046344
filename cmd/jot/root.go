package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/internal/api"
	"github.com/aretw0/jotter/internal/config"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

var (
	verbose   bool
	gitless   bool
	vaultFlag string
	message   string

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "A local note keeper with formatted notes, a calendar and optional Git history",
	Long: `jot keeps notes as Markdown files with YAML frontmatter.
Notes carry inline formatting (bold, italic, colors, bullet lists) and can be
scheduled on a calendar day. Every change can be committed to Git.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, err = config.Load(cwd)
		if err != nil {
			return err
		}

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&gitless, "gitless", false, "Disable Git versioning")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "Vault directory (default: config, then nearest vault root)")
}

// vaultPath picks the vault: the --vault flag, then the configured vault,
// then the nearest vault root above the working directory.
func vaultPath() string {
	if vaultFlag != "" {
		return vaultFlag
	}
	if cfg.Vault != "" && cfg.Vault != "." {
		return cfg.Vault
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, err := jotter.FindVaultRoot(cwd); err == nil {
		return root
	}
	return cwd
}

func serviceOptions(autoInit bool) []jotter.Option {
	opts := []jotter.Option{
		jotter.WithLogger(slog.Default()),
		jotter.WithAutoInit(autoInit),
		jotter.WithMustExist(!autoInit),
		jotter.WithReadOnly(cfg.ReadOnly),
	}
	switch {
	case gitless:
		opts = append(opts, jotter.WithVersioning(false))
	case cfg.Versioning != nil:
		opts = append(opts, jotter.WithVersioning(*cfg.Versioning))
	}
	if cfg.SystemDir != "" {
		opts = append(opts, jotter.WithSystemDir(cfg.SystemDir))
	}
	return opts
}

// openService opens the vault for an existing-vault command.
func openService() *core.Service {
	svc, err := jotter.New(vaultPath(), serviceOptions(false)...)
	if err != nil {
		fatal("Failed to open vault", err)
	}
	return svc
}

// changeContext attaches the -m commit message, if any.
func changeContext(ctx context.Context) context.Context {
	if message == "" {
		return ctx
	}
	return context.WithValue(ctx, core.ChangeReasonKey, git.AppendFooter(message))
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fatal("Invalid note id", fmt.Errorf("%q is not a positive integer", arg))
	}
	return id
}

func parseDay(value string) *time.Time {
	day, err := time.ParseInLocation(api.DateLayout, value, time.Local)
	if err != nil {
		fatal("Invalid date", fmt.Errorf("%q, want %s", value, api.DateLayout))
	}
	return &day
}

func reportNotFound(err error, id int64) {
	if errors.Is(err, core.ErrNotFound) {
		fatal("Note not found", fmt.Errorf("no note with id %d", id))
	}
}
