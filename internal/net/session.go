package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/peterkuimelis/inwo/internal/game"
	"github.com/peterkuimelis/inwo/internal/log"
)

// Session serialises access to one match and tracks which events a client
// has already seen.
type Session struct {
	ID string

	mu     sync.Mutex
	match  *game.Match
	logger log.EventLogger
	seen   int
}

// NewSession starts a match for a client.
func NewSession(id string, cfg game.MatchConfig) (*Session, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewMemoryLogger()
	}
	m, err := game.NewMatch(cfg)
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	return &Session{ID: id, match: m, logger: cfg.Logger}, nil
}

// State returns the current snapshot.
func (s *Session) State() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.State()
}

// Warnings returns the degraded-setup events logged so far, such as a
// faction fallback or a short opening draw.
func (s *Session) Warnings() []log.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []log.GameEvent
	for _, e := range s.logger.Events() {
		if e.Warning {
			out = append(out, e)
		}
	}
	return out
}

// Handle applies one client message and returns the reply, including every
// event logged since the previous reply.
func (s *Session) Handle(msg ClientMessage) ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := ServerMessage{Type: MsgResult, OK: true}
	switch msg.Type {
	case MsgState, "":
	case MsgNextPhase:
		gs := s.match.NextPhase()
		reply.Message = gs.Log[len(gs.Log)-1]
	case MsgBuy:
		res := s.match.BuyCard()
		reply.OK = res.Success()
		reply.Outcome = res.Outcome.String()
		reply.Message = res.Message
	case MsgPlay:
		res := s.match.PlayCard(msg.CardID)
		reply.OK = res.OK
		if !res.OK {
			reply.Outcome = "not_in_hand"
		}
		reply.Message = res.Message
	default:
		return ServerMessage{Type: MsgError, Message: fmt.Sprintf("unknown message type %q", msg.Type)}
	}

	reply.State = BuildStateView(s.match.State())
	reply.Events = s.drainEvents()
	return reply
}

// drainEvents returns events not yet sent. Must be called with mu held.
func (s *Session) drainEvents() []EventView {
	all := s.logger.Events()
	if s.seen > len(all) {
		s.seen = len(all)
	}
	var out []EventView
	for _, e := range all[s.seen:] {
		out = append(out, EventViewOf(e))
	}
	s.seen = len(all)
	return out
}

// Serve drives a session over a JSON line stream until the client sends
// "quit", closes the stream, or ctx is done. The current state is sent first.
func Serve(ctx context.Context, conn io.ReadWriter, s *Session) error {
	if c, ok := conn.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { c.Close() })
		defer stop()
	}
	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	if err := enc.Encode(s.Handle(ClientMessage{Type: MsgState})); err != nil {
		return fmt.Errorf("send state: %w", err)
	}
	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read message: %w", err)
		}
		if msg.Type == MsgQuit {
			return nil
		}
		if err := enc.Encode(s.Handle(msg)); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
}
