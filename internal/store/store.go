// Package store provides the deck slot backends: in-memory, a JSON file and
// SQLite.
package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/inwo/internal/game"
)

// Store is a deck slot that may hold resources.
type Store interface {
	game.DeckStore
	io.Closer
}

type nopCloser struct{ game.DeckStore }

func (nopCloser) Close() error { return nil }

// Open returns the backend named by driver: "memory", "file" or "sqlite".
// path is ignored for memory.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "memory":
		return nopCloser{NewMemory()}, nil
	case "file", "json":
		if path == "" {
			return nil, fmt.Errorf("file store: path is required")
		}
		return nopCloser{NewFile(path)}, nil
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
