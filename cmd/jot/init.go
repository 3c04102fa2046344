package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a vault",
	Long:  `Create the notes and system directories and, unless --gitless, a Git repository.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := vaultFlag
		if path == "" {
			path = cfg.Vault
		}

		if _, err := jotter.Init(path, serviceOptions(true)...); err != nil {
			fatal("Failed to initialize vault", err)
		}
		fmt.Println("Initialized jotter vault in", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
