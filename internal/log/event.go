package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventGameStart EventType = iota
	EventFallback
	EventShortDraw
	EventPhaseChange
	EventIncome
	EventDraw
	EventBuy
	EventBuyFailed
	EventPlay
	EventPlayFailed
	EventOpponentTurn
	EventNewTurn
)

func (e EventType) String() string {
	switch e {
	case EventGameStart:
		return "GameStart"
	case EventFallback:
		return "Fallback"
	case EventShortDraw:
		return "ShortDraw"
	case EventPhaseChange:
		return "PhaseChange"
	case EventIncome:
		return "Income"
	case EventDraw:
		return "Draw"
	case EventBuy:
		return "Buy"
	case EventBuyFailed:
		return "BuyFailed"
	case EventPlay:
		return "Play"
	case EventPlayFailed:
		return "PlayFailed"
	case EventOpponentTurn:
		return "OpponentTurn"
	case EventNewTurn:
		return "NewTurn"
	default:
		return "Unknown"
	}
}

// Side identifies which seat an event belongs to.
const (
	SidePlayer   = 0
	SideOpponent = 1
)

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Main Actions")
	Side    int       // acting side (SidePlayer or SideOpponent)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
	Warning bool      // degraded but non-fatal condition
}
