// Package config loads the userdesk TOML file and applies defaults,
// so every command starts from the same settings regardless of which
// keys the file actually sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is checked when no --config flag is given.
const DefaultPath = "userdesk.toml"

// API configures the remote collection the client talks to.
type API struct {
	BaseURL    string `toml:"base_url"`
	Collection string `toml:"collection"`
	TimeoutMS  int    `toml:"timeout_ms"`
}

// UI configures the interactive session.
type UI struct {
	Theme string `toml:"theme"`
}

// Server configures the stand-in collaborator started by serve.
type Server struct {
	Addr            string `toml:"addr"`
	Store           string `toml:"store"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	Fixture         string `toml:"fixture"`
	Watch           bool   `toml:"watch"`
	WatchDebounceMS int    `toml:"watch_debounce_ms"`
}

// Config is the whole file.
type Config struct {
	API    API    `toml:"api"`
	UI     UI     `toml:"ui"`
	Server Server `toml:"server"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		API: API{
			BaseURL:    "https://jsonplaceholder.typicode.com",
			Collection: "users",
			TimeoutMS:  10000,
		},
		UI: UI{
			Theme: "dark",
		},
		Server: Server{
			Addr:            "127.0.0.1:8080",
			Store:           "memory",
			RedisAddr:       "127.0.0.1:6379",
			WatchDebounceMS: 250,
		},
	}
}

// Load reads a TOML file and overlays it on the defaults: keys the
// file leaves out keep their default values.  With an empty path the
// default location is tried and a missing file is fine; an explicit
// path that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// validate normalizes the enum fields and rejects values no command
// could act on.
func (c *Config) validate() error {
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be \"dark\" or \"light\", got %q", c.UI.Theme)
	}

	c.Server.Store = strings.ToLower(strings.TrimSpace(c.Server.Store))
	switch c.Server.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("server.store must be \"memory\" or \"redis\", got %q", c.Server.Store)
	}

	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.TimeoutMS <= 0 {
		return errors.New("api.timeout_ms must be positive")
	}
	if c.Server.WatchDebounceMS <= 0 {
		return errors.New("server.watch_debounce_ms must be positive")
	}
	return nil
}

// Timeout returns the API timeout as a duration.
func (a API) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// Debounce returns the fixture watcher's quiet period as a duration.
func (s Server) Debounce() time.Duration {
	return time.Duration(s.WatchDebounceMS) * time.Millisecond
}
