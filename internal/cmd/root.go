// Package cmd wires up the vport demo CLI.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log/v2"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/charmbracelet/vport/internal/demo"
	"github.com/charmbracelet/vport/internal/version"
)

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Log to this file (the TUI owns the terminal)")

	for _, c := range []*cobra.Command{listCmd, gridCmd} {
		c.Flags().Int("page-size", 200, "Items fetched per page")
		c.Flags().Int("max-pages", 10, "Pages available before the collection is exhausted")
		c.Flags().Int("overscan", 3, "Extra items rendered beyond the visible range")
		c.Flags().Int("threshold", 10, "Load-more trigger distance from the end, in lines")
		c.Flags().Duration("fetch-delay", 750*time.Millisecond, "Simulated fetch latency")
		rootCmd.AddCommand(c)
	}
	listCmd.Flags().Int("item-height", 1, "Item height in lines")
	gridCmd.Flags().Int("item-width", 14, "Cell width in columns")
	gridCmd.Flags().Int("item-height", 2, "Cell height in lines")
	gridCmd.Flags().Int("gap", 1, "Gap between cells")
}

var rootCmd = &cobra.Command{
	Use:   "vport",
	Short: "Virtualized windowing for terminal UIs",
	Long: `vport renders arbitrarily large collections inside a fixed-size viewport by
materializing only the items near the visible area. This demo drives the list
and grid components over a paginated collection, with a threshold loader
fetching more pages as you approach the end.`,
	Example: `
# Scroll a virtualized list
vport list

# Scroll a virtualized grid with wider cells
vport grid --item-width 20

# Exhaust the collection quickly
vport list --page-size 50 --max-pages 2
`,
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Demo the virtualized list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, demo.ModeList)
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Demo the virtualized grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, demo.ModeGrid)
	},
}

func runDemo(cmd *cobra.Command, mode demo.Mode) error {
	if err := setupLogging(cmd); err != nil {
		return err
	}

	cfg := demo.Config{Mode: mode}
	cfg.PageSize, _ = cmd.Flags().GetInt("page-size")
	cfg.MaxPages, _ = cmd.Flags().GetInt("max-pages")
	cfg.Overscan, _ = cmd.Flags().GetInt("overscan")
	cfg.Threshold, _ = cmd.Flags().GetInt("threshold")
	cfg.FetchDelay, _ = cmd.Flags().GetDuration("fetch-delay")
	cfg.ItemHeight, _ = cmd.Flags().GetInt("item-height")
	if mode == demo.ModeGrid {
		cfg.ItemWidth, _ = cmd.Flags().GetInt("item-width")
		cfg.Gap, _ = cmd.Flags().GetInt("gap")
	}

	m, err := demo.New(cfg)
	if err != nil {
		return fmt.Errorf("setting up demo: %w", err)
	}

	program := tea.NewProgram(
		m,
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		slog.Error("TUI run error", "error", err)
		return err
	}
	return nil
}

// setupLogging points slog at a rotating file, or discards everything when
// no file is requested: the TUI owns the terminal.
func setupLogging(cmd *cobra.Command) error {
	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	debug, _ := cmd.Flags().GetBool("debug")
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
