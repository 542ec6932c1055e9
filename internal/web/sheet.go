package web

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/peterkuimelis/inwo/internal/game"
)

// Deck sheet layout, in pixels.
const (
	sheetColumns = 10
	sheetMargin  = 24
	sheetGap     = 8
	thumbWidth   = 143
	thumbHeight  = 200
	sheetQRSize  = 200

	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

var (
	sheetBackground  = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1f, A: 0xff}
	groupPlaceholder = color.NRGBA{R: 0x2f, G: 0x4f, B: 0x7f, A: 0xff}
	eventPlaceholder = color.NRGBA{R: 0x7f, G: 0x2f, B: 0x3f, A: 0xff}
	otherPlaceholder = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// deckQRPNG returns PNG bytes of a QR code for the given text.
func deckQRPNG(text string, size int) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

func (s *Server) handleDeckQR(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadSaved(w, r)
	if !ok {
		return
	}
	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			writeError(w, http.StatusBadRequest, "bad_size", fmt.Sprintf("size must be %d..%d", minQRSize, maxQRSize))
			return
		}
		size = n
	}
	png, err := deckQRPNG(game.EncodeDeckCode(saved.FactionID, saved.CardIDs), size)
	if err != nil {
		s.logger.Error().Err(err).Msg("deck qr")
		writeError(w, http.StatusInternalServerError, "qr_failed", "")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// handleDeckSheet renders the saved deck as a PNG contact sheet: the share QR
// in the header and one tile per distinct card below it.
func (s *Server) handleDeckSheet(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadSaved(w, r)
	if !ok {
		return
	}
	png, err := deckQRPNG(game.EncodeDeckCode(saved.FactionID, saved.CardIDs), sheetQRSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("deck sheet qr")
		writeError(w, http.StatusInternalServerError, "qr_failed", "")
		return
	}
	qr, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		s.logger.Error().Err(err).Msg("decode qr")
		writeError(w, http.StatusInternalServerError, "qr_failed", "")
		return
	}

	var faction image.Image
	if f, ok := s.catalog.Faction(saved.FactionID); ok {
		faction = s.cardImage(f)
	}
	var tiles []image.Image
	for _, c := range distinctCards(game.ResolveSavedDeck(s.catalog, saved)) {
		tiles = append(tiles, s.cardImage(c))
	}

	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, ComposeDeckSheet(faction, tiles, qr), imaging.PNG); err != nil {
		s.logger.Warn().Err(err).Msg("write deck sheet")
	}
}

// ComposeDeckSheet lays out a deck image: faction art at the top left, the QR
// code at the top right and the card tiles in rows of ten beneath. Nil images
// are skipped.
func ComposeDeckSheet(faction image.Image, cards []image.Image, qr image.Image) image.Image {
	width, height := sheetSize(len(cards))
	canvas := imaging.New(width, height, sheetBackground)

	if faction != nil {
		f := imaging.Fill(faction, thumbWidth, sheetQRSize, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, f, image.Pt(sheetMargin, sheetMargin))
	}
	if qr != nil {
		q := imaging.Resize(qr, sheetQRSize, sheetQRSize, imaging.Lanczos)
		canvas = imaging.Paste(canvas, q, image.Pt(width-sheetMargin-sheetQRSize, sheetMargin))
	}

	top := sheetMargin + sheetQRSize + sheetMargin
	for i, c := range cards {
		if c == nil {
			continue
		}
		x := sheetMargin + (i%sheetColumns)*(thumbWidth+sheetGap)
		y := top + (i/sheetColumns)*(thumbHeight+sheetGap)
		t := imaging.Fill(c, thumbWidth, thumbHeight, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, t, image.Pt(x, y))
	}
	return canvas
}

// sheetSize returns the canvas dimensions for n card tiles.
func sheetSize(n int) (width, height int) {
	width = 2*sheetMargin + sheetColumns*thumbWidth + (sheetColumns-1)*sheetGap
	height = sheetMargin + sheetQRSize + sheetMargin
	if rows := (n + sheetColumns - 1) / sheetColumns; rows > 0 {
		height += rows*(thumbHeight+sheetGap) - sheetGap + sheetMargin
	}
	return width, height
}

// cardImage loads the scan behind a card's image URL from the table-cards
// directory, or a flat placeholder tile coloured by kind.
func (s *Server) cardImage(c game.Card) image.Image {
	url := c.Info().ImageURL
	if s.tableDir != "" && strings.HasPrefix(url, tableCardsRoute) {
		path := filepath.Join(s.tableDir, filepath.Base(strings.TrimPrefix(url, tableCardsRoute)))
		if img, err := imaging.Open(path); err == nil {
			return img
		}
	}
	fill := otherPlaceholder
	switch game.KindOf(c) {
	case game.KindGroupLike:
		fill = groupPlaceholder
	case game.KindEventLike:
		fill = eventPlaceholder
	}
	return imaging.New(thumbWidth, thumbHeight, fill)
}

func distinctCards(cards []game.Card) []game.Card {
	seen := make(map[string]bool, len(cards))
	var out []game.Card
	for _, c := range cards {
		if seen[c.CardID()] {
			continue
		}
		seen[c.CardID()] = true
		out = append(out, c)
	}
	return out
}
