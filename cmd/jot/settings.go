package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

var (
	settingsDark bool
	settingsFont string
	settingsSize float64
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change display settings",
	Long: fmt.Sprintf(`Without flags, print the current settings. Fonts: %s. Sizes: %d to %d.`,
		strings.Join(core.Fonts, ", "), core.MinFontSize, core.MaxFontSize),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		ctx := context.Background()

		st, err := svc.Settings(ctx)
		if err != nil {
			fatal("Failed to load settings", err)
		}

		flags := cmd.Flags()
		if flags.Changed("dark") || flags.Changed("font") || flags.Changed("size") {
			if flags.Changed("dark") {
				st.DarkTheme = settingsDark
			}
			if flags.Changed("font") {
				st.FontFamily = settingsFont
			}
			if flags.Changed("size") {
				st.FontSize = settingsSize
			}
			if st, err = svc.UpdateSettings(ctx, st); err != nil {
				fatal("Failed to save settings", err)
			}
		}

		theme := "light"
		if st.DarkTheme {
			theme = "dark"
		}
		fmt.Printf("theme: %s\nfont:  %s\nsize:  %g\n", theme, st.FontFamily, st.FontSize)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().BoolVar(&settingsDark, "dark", false, "Use the dark theme")
	settingsCmd.Flags().StringVar(&settingsFont, "font", "", "Font family")
	settingsCmd.Flags().Float64Var(&settingsSize, "size", 0, "Font size")
}
