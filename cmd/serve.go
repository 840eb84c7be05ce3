package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/userdesk/userdesk/internal/config"
	"github.com/userdesk/userdesk/internal/server"
	"github.com/userdesk/userdesk/internal/store"
)

var (
	// server network config
	listenAddr string

	// storage config
	storeKind     string
	redisAddr     string
	redisPassword string

	// fixture config
	fixturePath  string
	watchFixture bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the stand-in collection server",
	Long: "Serves the same REST contract the client speaks, backed by an " +
		"in-memory or Redis store, optionally seeded from a JSON fixture " +
		"that can be watched for changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cfg.Server
		if cmd.Flags().Changed("addr") {
			sc.Addr = listenAddr
		}
		if cmd.Flags().Changed("store") {
			sc.Store = storeKind
		}
		if cmd.Flags().Changed("redis-address") {
			sc.RedisAddr = redisAddr
		}
		if cmd.Flags().Changed("redis-password") {
			sc.RedisPassword = redisPassword
		}
		if cmd.Flags().Changed("fixture") {
			sc.Fixture = fixturePath
		}
		if cmd.Flags().Changed("watch") {
			sc.Watch = watchFixture
		}

		st, err := buildStore(sc)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if sc.Fixture != "" {
			n, err := server.LoadFixture(ctx, st, sc.Fixture)
			if err != nil {
				return err
			}
			slog.Info("fixture loaded", "path", sc.Fixture, "records", n)
		} else if sc.Watch {
			slog.Warn("watch enabled without a fixture, nothing to watch")
		}

		srv, err := server.New(server.Config{
			Addr:       sc.Addr,
			Collection: cfg.API.Collection,
			Store:      st,
			Logger:     slog.Default(),
		})
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(gctx)
		})
		if sc.Watch && sc.Fixture != "" {
			g.Go(func() error {
				return server.WatchFixture(gctx, st, sc.Fixture, sc.Debounce(), slog.Default())
			})
		}
		return g.Wait()
	},
}

// buildStore picks the backing store from the effective config.  The
// kind is normalized the same way config loading normalizes it, so a
// flag value like "Redis" still reaches Redis instead of silently
// serving from memory.
func buildStore(sc config.Server) (store.UserStore, error) {
	switch strings.ToLower(strings.TrimSpace(sc.Store)) {
	case "memory":
		return store.NewInMemoryStore(), nil
	case "redis":
		st, err := store.NewRedisStore(sc.RedisAddr, sc.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("store must be \"memory\" or \"redis\", got %q", sc.Store)
	}
}

func init() {

	serveCmd.Flags().StringVarP(&listenAddr,
		"addr", "a", "127.0.0.1:8080", "Address to listen on")

	serveCmd.Flags().StringVar(&storeKind,
		"store", "memory", "Backing store: memory or redis")

	serveCmd.Flags().StringVarP(&redisAddr,
		"redis-address", "r", "127.0.0.1:6379", "Redis address")

	serveCmd.Flags().StringVarP(&redisPassword,
		"redis-password", "p", "", "Redis password")

	serveCmd.Flags().StringVar(&fixturePath,
		"fixture", "", "JSON file of users to seed the store with")

	serveCmd.Flags().BoolVar(&watchFixture,
		"watch", false, "Reload the store when the fixture file changes")

	rootCmd.AddCommand(serveCmd)
}
