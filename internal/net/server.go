package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/inwo/internal/game"
)

// SessionFactory creates the match for a new client.
type SessionFactory func(id string) (*Session, error)

// NewSessionFactory returns a factory that starts every match from cfg. A
// non-zero seed is offset per session so matches differ.
func NewSessionFactory(cfg game.MatchConfig) SessionFactory {
	n := int64(0)
	return func(id string) (*Session, error) {
		c := cfg
		if c.Seed != 0 {
			c.Seed += n
			n++
		}
		c.Logger = nil
		return NewSession(id, c)
	}
}

// PlayLocal runs the terminal REPL against an in-process session, joined by
// a pipe.
func PlayLocal(ctx context.Context, s *Session, in io.Reader, out io.Writer) error {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- Serve(ctx, serverConn, s)
	}()

	replErr := NewClient(clientConn, in, out).RunREPL(ctx)
	clientConn.Close()
	serveErr := <-errCh
	if replErr != nil {
		return replErr
	}
	return serveErr
}

// Server hosts single-player match sessions for remote terminals. Each
// connection gets its own match; nothing outlives the connection.
type Server struct {
	Addr       string
	NewSession SessionFactory
	Logger     zerolog.Logger
}

// Run listens until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	s.Logger.Info().Str("addr", ln.Addr().String()).Msg("waiting for players")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return ctx.Err()
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handle(ctx, conn)
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	id := uuid.NewString()
	logger := s.Logger.With().Str("session", id).Str("remote", conn.RemoteAddr().String()).Logger()

	sess, err := s.NewSession(id)
	if err != nil {
		logger.Error().Err(err).Msg("start match")
		return
	}
	for _, w := range sess.Warnings() {
		logger.Warn().Str("event", w.Type.String()).Msg(w.Details)
	}
	logger.Info().Msg("match started")
	if err := Serve(ctx, conn, sess); err != nil {
		logger.Warn().Err(err).Msg("session ended")
		return
	}
	gs := sess.State()
	logger.Info().Int("turn", gs.Turn).Str("phase", gs.Phase.String()).Msg("match closed")
}
