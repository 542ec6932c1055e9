package web

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/peterkuimelis/inwo/internal/game"
	inwonet "github.com/peterkuimelis/inwo/internal/net"
)

// handleWebSocket runs one match per socket. The player's saved deck, if any,
// is loaded at connect time; the match is discarded when the socket closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	id := uuid.NewString()
	logger := s.logger.With().Str("session", id).Logger()

	cfg := game.MatchConfig{Catalog: s.catalog, Seed: s.seed}
	if s.store != nil {
		saved, ok, err := s.store.LoadDeck(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("load saved deck")
		} else if ok {
			cfg.Saved = &saved
		}
	}
	sess, err := inwonet.NewSession(id, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("start match")
		wsConn.Close(websocket.StatusInternalError, "could not start match")
		return
	}
	for _, w := range sess.Warnings() {
		logger.Warn().Str("event", w.Type.String()).Msg(w.Details)
	}
	logger.Info().Msg("match started")

	// One JSON message per frame in both directions.
	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	if err := inwonet.Serve(ctx, conn, sess); err != nil {
		logger.Warn().Err(err).Msg("session ended")
		return
	}
	gs := sess.State()
	logger.Info().Int("turn", gs.Turn).Str("phase", gs.Phase.String()).Msg("match closed")
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}
