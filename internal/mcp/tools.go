package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/inwo/internal/game"
	inwonet "github.com/peterkuimelis/inwo/internal/net"
)

var (
	mu sync.Mutex

	// activeSession is the singleton match (one per stdio process).
	activeSession *GameSession

	// catalog, store and seed are set by main.
	catalog = game.DefaultCatalog()
	store   game.DeckStore
	seed    int64
)

// SetCatalog sets the card catalog the tools work against.
func SetCatalog(c *game.Catalog) {
	mu.Lock()
	defer mu.Unlock()
	catalog = c
}

// SetStore sets the deck slot used by save_deck, load_deck and start_game.
func SetStore(st game.DeckStore) {
	mu.Lock()
	defer mu.Unlock()
	store = st
}

// SetSeed fixes the shuffle seed for new matches (0 for random).
func SetSeed(n int64) {
	mu.Lock()
	defer mu.Unlock()
	seed = n
}

// RegisterTools adds all deck and game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(listFactionsTool(), handleListFactions)
	s.AddTool(searchCardsTool(), handleSearchCards)
	s.AddTool(validateDeckTool(), handleValidateDeck)
	s.AddTool(saveDeckTool(), handleSaveDeck)
	s.AddTool(loadDeckTool(), handleLoadDeck)
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(nextPhaseTool(), handleNextPhase)
	s.AddTool(buyCardTool(), handleBuyCard)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(endGameTool(), handleEndGame)
}

// --- Tool definitions ---

func listFactionsTool() mcp.Tool {
	return mcp.NewTool("list_factions",
		mcp.WithDescription("List the Illuminati faction cards with their power, starting money and whether a prebuilt starter deck exists."),
	)
}

func searchCardsTool() mcp.Tool {
	return mcp.NewTool("search_cards",
		mcp.WithDescription("Search the deck-building pool (every non-faction card). Matching ignores case and accents."),
		mcp.WithString("query", mcp.Description("Words that must all appear in the card name or description")),
		mcp.WithString("kind", mcp.Description("'group' for group-like cards, 'event' for plot/event-like cards, empty for both")),
		mcp.WithString("alignment", mcp.Description("Only group cards with this alignment, e.g. 'Weird'")),
	)
}

func validateDeckTool() mcp.Tool {
	return mcp.NewTool("validate_deck",
		mcp.WithDescription("Check a deck against the construction rules: at least 45 cards, at least 1/3 groups, at least 1/3 plots, copy limits, no faction cards. "+
			"Without card_ids the saved deck is checked."),
		mcp.WithString("faction_id", mcp.Description("Faction the deck is built for")),
		mcp.WithString("card_ids", mcp.Description("Card ids separated by spaces or commas; repeat an id for extra copies")),
	)
}

func saveDeckTool() mcp.Tool {
	return mcp.NewTool("save_deck",
		mcp.WithDescription("Save a deck to the single deck slot, replacing what was there. The deck does not need to be valid. "+
			"Use card_ids 'prebuilt' to save the faction's starter deck."),
		mcp.WithString("faction_id", mcp.Required(), mcp.Description("Faction the deck is built for")),
		mcp.WithString("card_ids", mcp.Required(), mcp.Description("Card ids separated by spaces or commas, or 'prebuilt'")),
	)
}

func loadDeckTool() mcp.Tool {
	return mcp.NewTool("load_deck",
		mcp.WithDescription("Load the saved deck with its validation result and share code. Unknown card ids are dropped."),
	)
}

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new match with the saved deck's faction against the scripted opponent. "+
			"Without a saved deck the default faction is used. Returns the opening state and events."),
	)
}

func nextPhaseTool() mcp.Tool {
	return mcp.NewTool("next_phase",
		mcp.WithDescription("Finish the current phase and move to the next: Collect Income → Main Actions → Reposition Groups → End Turn. "+
			"Leaving Collect Income adds the income of your groups; leaving End Turn runs the opponent's turn."),
	)
}

func buyCardTool() mcp.Tool {
	return mcp.NewTool("buy_card",
		mcp.WithDescription("Pay 2 money to draw the top card of the main deck into your hand. Only allowed during Main Actions."),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Move a card from your hand onto your field. Allowed in any phase and free."),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("Id of a card in your hand")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state and any events not yet reported. Read-only."),
	)
}

func endGameTool() mcp.Tool {
	return mcp.NewTool("end_game",
		mcp.WithDescription("Discard the running match so a new one can be started."),
	)
}

// --- Deck tool handlers ---

// FactionInfo describes a faction for list_factions.
type FactionInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Power         string `json:"power"`
	StartingMoney int    `json:"starting_money"`
	SpecialGoal   string `json:"special_goal,omitempty"`
	HasPrebuilt   bool   `json:"has_prebuilt"`
}

// DeckResponse is a deck with its validation result.
type DeckResponse struct {
	FactionID  string                `json:"faction_id"`
	CardIDs    []string              `json:"card_ids"`
	Validation game.ValidationResult `json:"validation"`
	Code       string                `json:"code,omitempty"`
}

func handleListFactions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	cat := catalog
	mu.Unlock()

	out := []FactionInfo{}
	for _, f := range cat.Factions() {
		out = append(out, FactionInfo{
			ID:            f.ID,
			Name:          f.Name,
			Power:         f.Power,
			StartingMoney: f.StartingMoney(),
			SpecialGoal:   f.SpecialGoal,
			HasPrebuilt:   len(game.PrebuiltDeck(f.ID)) > 0,
		})
	}
	return mcp.NewToolResultText(respondJSON(out)), nil
}

func handleSearchCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	cat := catalog
	mu.Unlock()

	opt := game.FilterOptions{
		Query:     request.GetString("query", ""),
		Alignment: request.GetString("alignment", ""),
	}
	switch strings.ToLower(request.GetString("kind", "")) {
	case "":
	case "group", "group-like":
		opt.Kind = game.KindGroupLike
	case "event", "event-like", "plot":
		opt.Kind = game.KindEventLike
	default:
		return mcp.NewToolResultError("kind must be 'group', 'event' or empty"), nil
	}
	return mcp.NewToolResultText(respondJSON(inwonet.CardViews(game.FilterCards(cat.Pool(), opt)))), nil
}

func handleValidateDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	cat, st := catalog, store
	mu.Unlock()

	factionID := request.GetString("faction_id", "")
	ids := splitIDs(request.GetString("card_ids", ""))
	if len(ids) == 0 {
		if st == nil {
			return mcp.NewToolResultError("No deck store configured; pass card_ids."), nil
		}
		saved, ok, err := st.LoadDeck(ctx)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load deck: %v", err), nil
		}
		if !ok {
			return mcp.NewToolResultError("No deck saved; pass card_ids."), nil
		}
		factionID, ids = saved.FactionID, game.CardIDs(game.ResolveSavedDeck(cat, saved))
	}

	var faction *game.FactionCard
	if factionID != "" {
		f, ok := cat.Faction(factionID)
		if !ok {
			return mcp.NewToolResultErrorf("Unknown faction %q.", factionID), nil
		}
		faction = f
	}
	cards, err := cat.ResolveStrict(ids)
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(game.ValidateDeck(faction, cards))), nil
}

func handleSaveDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	cat, st := catalog, store
	mu.Unlock()

	if st == nil {
		return mcp.NewToolResultError("No deck store configured."), nil
	}
	factionID := request.GetString("faction_id", "")
	f, ok := cat.Faction(factionID)
	if !ok {
		return mcp.NewToolResultErrorf("Unknown faction %q.", factionID), nil
	}
	raw := request.GetString("card_ids", "")
	ids := splitIDs(raw)
	if strings.EqualFold(strings.TrimSpace(raw), "prebuilt") {
		ids = game.PrebuiltDeck(factionID)
		if ids == nil {
			return mcp.NewToolResultErrorf("No prebuilt deck for %q.", factionID), nil
		}
	}
	if _, err := cat.ResolveStrict(ids); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if err := st.SaveDeck(ctx, factionID, ids); err != nil {
		return mcp.NewToolResultErrorf("Failed to save deck: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(deckResponse(cat, f, factionID, ids))), nil
}

func handleLoadDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	cat, st := catalog, store
	mu.Unlock()

	if st == nil {
		return mcp.NewToolResultError("No deck store configured."), nil
	}
	saved, ok, err := st.LoadDeck(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck: %v", err), nil
	}
	if !ok {
		return mcp.NewToolResultError("No deck saved."), nil
	}
	f, _ := cat.Faction(saved.FactionID)
	ids := game.CardIDs(game.ResolveSavedDeck(cat, saved))
	return mcp.NewToolResultText(respondJSON(deckResponse(cat, f, saved.FactionID, ids))), nil
}

func deckResponse(cat *game.Catalog, f *game.FactionCard, factionID string, ids []string) DeckResponse {
	if ids == nil {
		ids = []string{}
	}
	return DeckResponse{
		FactionID:  factionID,
		CardIDs:    ids,
		Validation: game.ValidateDeck(f, cat.Resolve(ids)),
		Code:       game.EncodeDeckCode(factionID, ids),
	}
}

// splitIDs splits on whitespace and commas.
func splitIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// --- Game tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Use end_game first."), nil
	}

	cfg := game.MatchConfig{Catalog: catalog, Seed: seed}
	if store != nil {
		saved, ok, err := store.LoadDeck(ctx)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load deck: %v", err), nil
		}
		if ok {
			cfg.Saved = &saved
		}
	}

	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	return respond(sess, inwonet.ClientMessage{Type: inwonet.MsgState})
}

func handleNextPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(inwonet.ClientMessage{Type: inwonet.MsgNextPhase})
}

func handleBuyCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(inwonet.ClientMessage{Type: inwonet.MsgBuy})
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID := strings.TrimSpace(request.GetString("card_id", ""))
	if cardID == "" {
		return mcp.NewToolResultError("card_id is required."), nil
	}
	return withSession(inwonet.ClientMessage{Type: inwonet.MsgPlay, CardID: cardID})
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return withSession(inwonet.ClientMessage{Type: inwonet.MsgState})
}

func handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running."), nil
	}
	gs := activeSession.session.State()
	activeSession = nil
	return mcp.NewToolResultText(fmt.Sprintf("Game ended on turn %d (%s).", gs.Turn, gs.Phase)), nil
}

func withSession(msg inwonet.ClientMessage) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return respond(activeSession, msg)
}

// respond runs msg against sess. Rule failures (not enough money, card not in
// hand) are ordinary results with ok=false, not tool errors.
func respond(sess *GameSession, msg inwonet.ClientMessage) (*mcp.CallToolResult, error) {
	resp, err := sess.handle(msg)
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
