package store

import (
	"context"
	"sync"

	"github.com/peterkuimelis/inwo/internal/game"
)

// Memory is a session-scoped deck slot. State is lost when the process exits.
type Memory struct {
	mu    sync.RWMutex
	saved *game.SavedDeck
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveDeck(ctx context.Context, factionID string, cardIDs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &game.SavedDeck{FactionID: factionID, CardIDs: append([]string{}, cardIDs...)}
	return nil
}

func (m *Memory) LoadDeck(ctx context.Context) (game.SavedDeck, bool, error) {
	if err := ctx.Err(); err != nil {
		return game.SavedDeck{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.saved == nil {
		return game.SavedDeck{}, false, nil
	}
	out := *m.saved
	out.CardIDs = append([]string{}, m.saved.CardIDs...)
	return out, true, nil
}
