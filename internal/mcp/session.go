package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/inwo/internal/game"
	inwonet "github.com/peterkuimelis/inwo/internal/net"
)

// ToolResponse is the JSON envelope returned by the game tools.
type ToolResponse struct {
	SessionID string              `json:"session_id,omitempty"`
	OK        bool                `json:"ok"`
	Outcome   string              `json:"outcome,omitempty"`
	Message   string              `json:"message,omitempty"`
	Events    []inwonet.EventView `json:"events"`
	State     *inwonet.StateView  `json:"state,omitempty"`
}

// GameSession holds the single match an MCP client is playing.
type GameSession struct {
	ID      string
	session *inwonet.Session
}

// NewGameSession starts a match from cfg.
func NewGameSession(cfg game.MatchConfig) (*GameSession, error) {
	id := uuid.NewString()
	sess, err := inwonet.NewSession(id, cfg)
	if err != nil {
		return nil, err
	}
	return &GameSession{ID: id, session: sess}, nil
}

// handle applies a client message and converts the reply.
func (g *GameSession) handle(msg inwonet.ClientMessage) (*ToolResponse, error) {
	reply := g.session.Handle(msg)
	if reply.Type == inwonet.MsgError {
		return nil, fmt.Errorf("%s", reply.Message)
	}
	resp := &ToolResponse{
		SessionID: g.ID,
		OK:        reply.OK,
		Outcome:   reply.Outcome,
		Message:   reply.Message,
		Events:    reply.Events,
		State:     reply.State,
	}
	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []inwonet.EventView{}
	}
	return resp, nil
}

// respondJSON marshals a response to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
