package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/userdesk/userdesk/internal/session"
)

var browseTheme string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the user collection interactively",
	Long: "Opens a session that lists the collection, lets you draft and " +
		"submit records, delete them, and switch between the dark and light " +
		"themes.  Type help at the prompt for the command list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newDirectoryClient()
		if err != nil {
			return err
		}

		theme := cfg.UI.Theme
		if browseTheme != "" {
			theme = strings.ToLower(browseTheme)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctrl := session.NewController(c, session.ThemeByName(theme), slog.Default())
		return session.Run(ctx, ctrl, os.Stdin, os.Stdout)
	},
}

func init() {
	browseCmd.Flags().StringVarP(&usersBaseURL,
		"base-url", "a", "", "Collection base URL (overrides the config file)")

	browseCmd.Flags().StringVar(&usersCollection,
		"collection", "", "Collection name (overrides the config file)")

	browseCmd.Flags().DurationVar(&usersTimeout,
		"timeout", 0, "HTTP timeout, e.g. 5s (overrides the config file)")

	browseCmd.Flags().StringVar(&browseTheme,
		"theme", "", "Starting theme, dark or light (overrides the config file)")

	rootCmd.AddCommand(browseCmd)
}
