package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/peterkuimelis/inwo/internal/game"
	inwonet "github.com/peterkuimelis/inwo/internal/net"
)

// FactionInfo is a faction card plus whether it ships with a starter deck.
type FactionInfo struct {
	inwonet.CardView
	StartingMoney int  `json:"startingMoney"`
	HasPrebuilt   bool `json:"hasPrebuilt"`
}

// handleCards lists the deck-building pool. Query parameters:
// q (free text), kind (group|event), type (repeatable), alignment, unique.
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	opt, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_filter", err.Error())
		return
	}
	cards := game.FilterCards(s.catalog.Pool(), opt)
	writeJSON(w, http.StatusOK, inwonet.CardViews(cards))
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	out := []FactionInfo{}
	for _, f := range s.catalog.Factions() {
		out = append(out, FactionInfo{
			CardView:      inwonet.CardViewOf(f),
			StartingMoney: f.StartingMoney(),
			HasPrebuilt:   len(s.prebuilt(f.ID)) > 0,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleTableCards lists the cards synthesised from table-card scans.
func (s *Server) handleTableCards(w http.ResponseWriter, r *http.Request) {
	cards := game.FilterCards(s.catalog.Pool(), game.FilterOptions{Alignment: game.TableCardAlignment})
	writeJSON(w, http.StatusOK, inwonet.CardViews(cards))
}

func parseFilter(r *http.Request) (game.FilterOptions, error) {
	q := r.URL.Query()
	opt := game.FilterOptions{
		Query:     q.Get("q"),
		Alignment: q.Get("alignment"),
	}
	switch strings.ToLower(q.Get("kind")) {
	case "":
	case "group", "group-like":
		opt.Kind = game.KindGroupLike
	case "event", "event-like", "plot":
		opt.Kind = game.KindEventLike
	default:
		return opt, fmt.Errorf("unknown kind %q", q.Get("kind"))
	}
	for _, raw := range q["type"] {
		t, err := game.ParseCardType(raw)
		if err != nil {
			return opt, err
		}
		opt.Types = append(opt.Types, t)
	}
	if raw := q.Get("unique"); raw != "" {
		u, err := strconv.ParseBool(raw)
		if err != nil {
			return opt, fmt.Errorf("unique: %w", err)
		}
		opt.Unique = &u
	}
	return opt, nil
}

// prebuilt returns the starter deck ids for a faction, keeping only the ids
// this catalog knows.
func (s *Server) prebuilt(factionID string) []string {
	ids := game.PrebuiltDeck(factionID)
	if len(ids) == 0 {
		return nil
	}
	return game.CardIDs(s.catalog.Resolve(ids))
}
