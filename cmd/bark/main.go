// Command bark is Bark's entry point: a dual-pane terminal file manager.
// Grounded on the teacher's cmd/sidecar/main.go — config load, a debug
// log file (never stderr, which would corrupt the TUI), an interactive-
// terminal guard, and a tea.NewProgram(..., tea.WithAltScreen()) run —
// generalized from the teacher's flag-package CLI to spf13/cobra (an
// indirect dependency of the teacher's own go.mod, promoted here to a
// directly exercised one) so a version subcommand and flag parsing come
// from the same library the rest of the ecosystem in the pack favors.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dumitru-stama/bark/internal/app"
	"github.com/dumitru-stama/bark/internal/config"
	"github.com/dumitru-stama/bark/internal/pluginhost"
	"github.com/dumitru-stama/bark/internal/styles"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func main() {
	var (
		configPath string
		leftPath   string
		rightPath  string
		debugFlag  bool
	)

	root := &cobra.Command{
		Use:   "bark",
		Short: "A dual-pane terminal file manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, leftPath, rightPath, debugFlag)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to config file")
	root.Flags().StringVar(&leftPath, "left", ".", "starting directory for the left panel")
	root.Flags().StringVar(&rightPath, "right", ".", "starting directory for the right panel")
	root.Flags().BoolVar(&debugFlag, "debug", false, "enable debug logging to bark's log file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the bark version and exit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("bark " + effectiveVersion())
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, leftPath, rightPath string, debugFlag bool) error {
	logLevel := slog.LevelInfo
	if debugFlag {
		logLevel = slog.LevelDebug
	}
	logWriter := io.Discard
	if f, err := openLogFile(); err == nil {
		logWriter = f
		defer f.Close()
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	plugins := pluginhost.Discover()
	logger.Info("discovered plugins", "count", len(plugins), "dirs", pluginhost.DiscoverDirs())

	left, err := filepath.Abs(leftPath)
	if err != nil {
		return fmt.Errorf("resolving left panel path: %w", err)
	}
	right, err := filepath.Abs(rightPath)
	if err != nil {
		return fmt.Errorf("resolving right panel path: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("bark requires an interactive terminal")
	}

	model := app.New(cfg, styles.DefaultStyles, left, right)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func openLogFile() (*os.File, error) {
	logPath := filepath.Join(filepath.Dir(config.ConfigPath()), "debug.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func effectiveVersion() string {
	if version != "" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "devel"
}
