package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterkuimelis/inwo/internal/game"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS deck_slots (
	slot       TEXT PRIMARY KEY,
	faction_id TEXT NOT NULL,
	card_ids   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite keeps the deck slot in a single-row table.
type SQLite struct {
	db   *sql.DB
	slot string
}

// OpenSQLite opens (creating if needed) a SQLite deck store at path.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db, slot: game.SavedDeckKey}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) SaveDeck(ctx context.Context, factionID string, cardIDs []string) error {
	if cardIDs == nil {
		cardIDs = []string{}
	}
	ids, err := json.Marshal(cardIDs)
	if err != nil {
		return fmt.Errorf("encode card ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO deck_slots (slot, faction_id, card_ids, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		    faction_id = excluded.faction_id,
		    card_ids = excluded.card_ids,
		    updated_at = excluded.updated_at`,
		s.slot, factionID, string(ids), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

func (s *SQLite) LoadDeck(ctx context.Context) (game.SavedDeck, bool, error) {
	var saved game.SavedDeck
	var ids string
	row := s.db.QueryRowContext(ctx, `SELECT faction_id, card_ids FROM deck_slots WHERE slot = ?`, s.slot)
	if err := row.Scan(&saved.FactionID, &ids); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.SavedDeck{}, false, nil
		}
		return game.SavedDeck{}, false, fmt.Errorf("load deck: %w", err)
	}
	if err := json.Unmarshal([]byte(ids), &saved.CardIDs); err != nil {
		return game.SavedDeck{}, false, fmt.Errorf("decode card ids: %w", err)
	}
	return saved, true, nil
}
