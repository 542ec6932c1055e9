package net

// Message types for the JSON line protocol between a match session and a
// terminal or browser client.

// Client message types.
const (
	MsgState     = "state"
	MsgNextPhase = "next_phase"
	MsgBuy       = "buy"
	MsgPlay      = "play"
	MsgQuit      = "quit"
)

// Server message types.
const (
	MsgResult = "result"
	MsgError  = "error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "result": whether the requested action went through, plus the
	// soft-failure tag when it did not.
	OK      bool   `json:"ok"`
	Outcome string `json:"outcome,omitempty"`
	Message string `json:"message,omitempty"`

	State  *StateView  `json:"state,omitempty"`
	Events []EventView `json:"events,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Side    string `json:"side"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
	Warning bool   `json:"warning,omitempty"`
}

// CardView describes one card.
type CardView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Kind        string   `json:"kind"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Description string   `json:"description,omitempty"`
	Unique      bool     `json:"isUnique,omitempty"`
	Power       any      `json:"power,omitempty"` // "A/B" for factions, int for groups
	Resistance  int      `json:"resistance,omitempty"`
	Income      int      `json:"income,omitempty"`
	Alignments  []string `json:"alignments,omitempty"`
	SpecialGoal string   `json:"specialGoal,omitempty"`
	Abilities   []string `json:"abilities,omitempty"`
}

// StateView is the match from the player's perspective.
type StateView struct {
	You          PlayerView `json:"you"`
	Opponent     PlayerView `json:"opponent"`
	Turn         int        `json:"turn"`
	Phase        string     `json:"phase"`
	DeckCount    int        `json:"deck_count"`
	DiscardCount int        `json:"discard_count"`
	Log          []string   `json:"log"`
	Winner       string     `json:"winner,omitempty"`
}

// PlayerView shows one side of the table.
type PlayerView struct {
	Faction   CardView   `json:"faction"`
	Money     int        `json:"money"`
	HandCount int        `json:"hand_count"`
	Hand      []CardView `json:"hand,omitempty"` // only for "you"
	Field     []CardView `json:"field"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "play"
	CardID string `json:"card_id,omitempty"`
}
