package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/userdesk/userdesk/internal/config"
)

var (
	// global flags
	configPath string
	debug      bool
	logFile    string
	noColor    bool

	// cfg is loaded before any subcommand runs.
	cfg config.Config
)

// rootCmd is the base command for the CLI.  It delegates to
// subcommands defined in users.go, browse.go and serve.go.  See init
// functions in those files for flag definitions.
var rootCmd = &cobra.Command{
	Use:   "userdesk",
	Short: "Terminal client for a user directory",
	Long: "Userdesk talks to a REST user collection: list, create, update and " +
		"delete records from the command line, browse them in an interactive " +
		"session, or run a local stand-in server to work against.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if noColor {
			color.NoColor = true
		}
		return nil
	},
}

// setupLogging points the default slog logger at stderr or the
// requested file, with debug verbosity when asked for.
func setupLogging() error {
	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return nil
}

// Execute runs the root command.  It should be invoked from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath,
		"config", "c", "", "Path to the TOML config file (default userdesk.toml if present)")

	rootCmd.PersistentFlags().BoolVar(
		&debug, "debug", false, "Enable debug logging")

	rootCmd.PersistentFlags().StringVar(
		&logFile, "log-file", "", "Append logs to this file instead of stderr")

	rootCmd.PersistentFlags().BoolVar(
		&noColor, "no-color", false, "Disable colored output")
}
