package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Warnings returns the events flagged as degraded conditions.
func (l *MemoryLogger) Warnings() []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Warning {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: a MemoryLogger that also writes a transcript ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// sideName returns the display label for a side.
func sideName(side int) string {
	if side == SideOpponent {
		return "Opponent"
	}
	return "Player"
}

// FormatEvent renders one event as a transcript line:
// turn, phase, side, details, and a [warn] marker for degraded conditions.
func FormatEvent(e GameEvent) string {
	side := ""
	if e.Type != EventGameStart && e.Type != EventFallback {
		side = sideName(e.Side)
	}
	line := fmt.Sprintf("T%-2d %-18s %-8s| %s", e.Turn, e.Phase, side, e.Details)
	if e.Warning {
		line += " [warn]"
	}
	return line
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameStartEvent(playerFaction, opponentFaction string) GameEvent {
	return GameEvent{
		Turn:    1,
		Type:    EventGameStart,
		Details: fmt.Sprintf("Game started: %s vs %s", playerFaction, opponentFaction),
	}
}

func NewFallbackEvent(reason, faction string) GameEvent {
	return GameEvent{
		Type:    EventFallback,
		Card:    faction,
		Details: fmt.Sprintf("No usable saved faction (%s); defaulting to %s with the full card pool", reason, faction),
		Warning: true,
	}
}

func NewShortDrawEvent(side int, kind string, wanted, got int) GameEvent {
	return GameEvent{
		Side:    side,
		Type:    EventShortDraw,
		Details: fmt.Sprintf("Not enough %s cards in the main deck for the %s opening hand (wanted %d, drew %d)", kind, strings.ToLower(sideName(side)), wanted, got),
		Warning: true,
	}
}

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Collect Income",
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d ===", turn),
	}
}

func NewIncomeEvent(turn int, phase string, income, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventIncome,
		Details: fmt.Sprintf("Player collects %d income (money %d)", income, total),
	}
}

func NewDrawEvent(turn int, phase string, side int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    side,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", sideName(side), cardName),
	}
}

func NewBuyEvent(turn int, phase string, cardName string, cost, money int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventBuy,
		Card:    cardName,
		Details: fmt.Sprintf("Player buys %s for %d (money %d)", cardName, cost, money),
	}
}

func NewBuyFailedEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventBuyFailed,
		Details: fmt.Sprintf("Player cannot buy: %s", reason),
	}
}

func NewPlayEvent(turn int, phase string, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPlay,
		Card:    cardName,
		Details: fmt.Sprintf("Player plays %s to the field", cardName),
	}
}

func NewPlayFailedEvent(turn int, phase string, cardID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPlayFailed,
		Card:    cardID,
		Details: fmt.Sprintf("Player cannot play %q: not in hand", cardID),
	}
}

func NewOpponentTurnEvent(turn int, phase string, drew bool, gained, money int) GameEvent {
	details := fmt.Sprintf("Opponent gains %d (money %d)", gained, money)
	if drew {
		details = fmt.Sprintf("Opponent draws a card and gains %d (money %d)", gained, money)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Side:    SideOpponent,
		Type:    EventOpponentTurn,
		Details: details,
	}
}
