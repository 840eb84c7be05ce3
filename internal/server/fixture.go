package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/userdesk/userdesk/internal/model"
	"github.com/userdesk/userdesk/internal/store"
)

// LoadFixture reads a JSON array of users from path and replaces the
// store's contents with it.  Records without a positive id are
// assigned sequential ones past the largest seen.  It returns how many
// records were loaded.
func LoadFixture(ctx context.Context, st store.UserStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixture: %w", err)
	}
	users, err := parseFixture(data)
	if err != nil {
		return 0, err
	}
	if err := st.ReplaceAll(ctx, users); err != nil {
		return 0, fmt.Errorf("seed store: %w", err)
	}
	return len(users), nil
}

func parseFixture(data []byte) ([]*model.User, error) {
	var raw []*model.User
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	users := make([]*model.User, 0, len(raw))
	next := 1
	for _, u := range raw {
		if u == nil {
			continue
		}
		users = append(users, u)
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	for _, u := range users {
		if u.ID <= 0 {
			u.ID = next
			next++
		}
	}
	return users, nil
}

// WatchFixture reloads the store whenever the fixture file changes,
// until ctx is cancelled.  Bursts of filesystem events are debounced
// and a reload is skipped when the content digest has not moved, so an
// editor's save dance triggers a single reload.  A fixture that fails
// to parse is logged and skipped; the store keeps its last good state.
func WatchFixture(ctx context.Context, st store.UserStore, path string, debounce time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start fixture watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors replace
	// files by rename, which silently drops a watch held on the file
	// itself.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	var lastDigest uint64
	if data, err := os.ReadFile(target); err == nil {
		lastDigest = xxhash.Sum64(data)
	}

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			reload = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("fixture watcher error", "error", err)

		case <-reload:
			reload = nil
			data, err := os.ReadFile(target)
			if err != nil {
				logger.Warn("fixture read failed", "path", target, "error", err)
				continue
			}
			digest := xxhash.Sum64(data)
			if digest == lastDigest {
				continue
			}
			users, err := parseFixture(data)
			if err != nil {
				logger.Warn("fixture reload skipped", "path", target, "error", err)
				continue
			}
			if err := st.ReplaceAll(ctx, users); err != nil {
				logger.Error("fixture reload failed", "path", target, "error", err)
				continue
			}
			lastDigest = digest
			logger.Info("fixture reloaded", "path", target, "records", len(users))
		}
	}
}
