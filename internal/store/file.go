package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterkuimelis/inwo/internal/game"
)

// File keeps the deck slot in a JSON key-value document on disk. Other keys
// in the document are preserved. Writes replace the file atomically.
type File struct {
	path string
	key  string
	mu   sync.Mutex
}

// NewFile returns a store backed by path, using the default slot key.
func NewFile(path string) *File {
	return &File{path: path, key: game.SavedDeckKey}
}

func (f *File) Path() string { return f.path }

func (f *File) readDoc() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode deck file: %w", err)
	}
	return doc, nil
}

func (f *File) SaveDeck(ctx context.Context, factionID string, cardIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readDoc()
	if err != nil {
		return err
	}
	if cardIDs == nil {
		cardIDs = []string{}
	}
	slot, err := json.Marshal(game.SavedDeck{FactionID: factionID, CardIDs: cardIDs})
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	doc[f.key] = slot

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck file: %w", err)
	}
	return writeAtomic(f.path, data)
}

func (f *File) LoadDeck(ctx context.Context) (game.SavedDeck, bool, error) {
	if err := ctx.Err(); err != nil {
		return game.SavedDeck{}, false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readDoc()
	if err != nil {
		return game.SavedDeck{}, false, err
	}
	raw, ok := doc[f.key]
	if !ok {
		return game.SavedDeck{}, false, nil
	}
	var saved game.SavedDeck
	if err := json.Unmarshal(raw, &saved); err != nil {
		return game.SavedDeck{}, false, fmt.Errorf("decode %s: %w", f.key, err)
	}
	return saved, true, nil
}

// writeAtomic writes data to a temp file in the same directory and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".inwo-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace deck file: %w", err)
	}
	return nil
}
