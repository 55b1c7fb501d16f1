package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gocoil/internal/version"
	"github.com/spf13/cobra"
)

var (
	verbose bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "gocoil",
	Short: "Bobbin Winding Layout Calculator",
	Long: `gocoil - Go Coil Winding Layout Calculator

A CLI tool for laying out multi-strand windings on a coil bobbin.

This tool helps coil designers:
  - Find the usable winding window of a bobbin
  - Place every strand of every turn, layer by layer
  - Check whether the requested turns fit the window
  - Estimate fill factor, wire length, resistance and mass
  - Export drawings, charts and workbooks of the layout

Dimensions may be entered in millimetres or inches.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocoil v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Coil Winding Layout Calculator                       ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for laying out multi-strand windings on a bobbin.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Winding window and layer count from bobbin geometry")
		fmt.Println("    • Strand-by-strand placement with coverage check")
		fmt.Println("    • Fill factor, resistance and mass estimates")
		fmt.Println("    • PNG/SVG/PDF drawings, HTML charts and Excel workbooks")
		fmt.Println("    • HTTP API and desktop viewer")
		fmt.Println()
		fmt.Println("  Use 'gocoil --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}
