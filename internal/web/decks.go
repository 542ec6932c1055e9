package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peterkuimelis/inwo/internal/game"
)

// DeckInfo is a deck with its validation result.
type DeckInfo struct {
	FactionID  string                `json:"factionId"`
	Deck       []string              `json:"deck"`
	Validation game.ValidationResult `json:"validation"`
}

// ShareInfo is the share form of the saved deck.
type ShareInfo struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

func (s *Server) handlePrebuiltDeck(w http.ResponseWriter, r *http.Request) {
	factionID := chi.URLParam(r, "faction")
	f, ok := s.catalog.Faction(factionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_faction", factionID)
		return
	}
	ids := s.prebuilt(factionID)
	if ids == nil {
		writeError(w, http.StatusNotFound, "no_prebuilt_deck", factionID)
		return
	}
	writeJSON(w, http.StatusOK, s.deckInfo(f, ids))
}

// handleValidate checks a candidate deck. Unknown card ids are rejected.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req game.SavedDeck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	var faction *game.FactionCard
	if req.FactionID != "" {
		f, ok := s.catalog.Faction(req.FactionID)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown_faction", req.FactionID)
			return
		}
		faction = f
	}
	cards, err := s.catalog.ResolveStrict(req.CardIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_card", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, game.ValidateDeck(faction, cards))
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadSaved(w, r)
	if !ok {
		return
	}
	f, _ := s.catalog.Faction(saved.FactionID)
	info := s.deckInfo(f, game.CardIDs(game.ResolveSavedDeck(s.catalog, saved)))
	info.FactionID = saved.FactionID
	writeJSON(w, http.StatusOK, info)
}

// handlePutDeck saves the deck as sent, whether or not it is valid.
func (s *Server) handlePutDeck(w http.ResponseWriter, r *http.Request) {
	var req game.SavedDeck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	s.saveDeck(w, r, req)
}

// handleImportDeck saves the deck encoded in a share code.
func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	saved, err := game.DecodeDeckCode(req.Code)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_code", err.Error())
		return
	}
	s.saveDeck(w, r, saved)
}

func (s *Server) saveDeck(w http.ResponseWriter, r *http.Request, req game.SavedDeck) {
	f, ok := s.catalog.Faction(req.FactionID)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_faction", req.FactionID)
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_store", "")
		return
	}
	if req.CardIDs == nil {
		req.CardIDs = []string{}
	}
	if err := s.store.SaveDeck(r.Context(), req.FactionID, req.CardIDs); err != nil {
		s.logger.Error().Err(err).Str("faction", req.FactionID).Msg("save deck")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	s.logger.Info().Str("faction", req.FactionID).Int("cards", len(req.CardIDs)).Msg("deck saved")
	writeJSON(w, http.StatusOK, s.deckInfo(f, req.CardIDs))
}

func (s *Server) handleDeckCode(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadSaved(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ShareInfo{
		Code: game.EncodeDeckCode(saved.FactionID, saved.CardIDs),
		Text: game.ExportDeckText(saved.FactionID, saved.CardIDs),
	})
}

// loadSaved reads the store slot, writing the error response itself when
// there is nothing to return.
func (s *Server) loadSaved(w http.ResponseWriter, r *http.Request) (game.SavedDeck, bool) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "no_saved_deck", "")
		return game.SavedDeck{}, false
	}
	saved, ok, err := s.store.LoadDeck(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("load deck")
		writeError(w, http.StatusInternalServerError, "load_failed", "")
		return game.SavedDeck{}, false
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no_saved_deck", "")
		return game.SavedDeck{}, false
	}
	return saved, true
}

// deckInfo resolves ids (dropping unknown ones) and validates the result.
func (s *Server) deckInfo(f *game.FactionCard, ids []string) DeckInfo {
	cards := s.catalog.Resolve(ids)
	info := DeckInfo{Deck: ids, Validation: game.ValidateDeck(f, cards)}
	if f != nil {
		info.FactionID = f.ID
	}
	if info.Deck == nil {
		info.Deck = []string{}
	}
	return info
}
