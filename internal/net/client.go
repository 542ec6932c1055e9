package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// Client renders a match and reads commands in a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   *bufio.Reader
	out  io.Writer
}

// NewClient creates a REPL client over conn, reading commands from in and
// writing to out.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect dials a session server and runs the REPL.
func Connect(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()
	return NewClient(conn, in, out).RunREPL(ctx)
}

const helpText = `Commands:
  n, next         advance to the next phase
  b, buy          buy the top card of the main deck (Main Actions only)
  p, play <N|id>  play hand card N (1-based) or by id
  s, state        show the table
  h, help         show this help
  q, quit         leave the match`

// RunREPL reads server messages and handles commands interactively until the
// user quits or input ends.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	var last ServerMessage
	if err := dec.Decode(&last); err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	c.render(last)
	fmt.Fprintln(c.out, helpText)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			_ = enc.Encode(ClientMessage{Type: MsgQuit})
			return nil
		}
		msg, ok := c.parseCommand(strings.TrimSpace(line), last.State)
		if !ok {
			continue
		}
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("send %s: %w", msg.Type, err)
		}
		if msg.Type == MsgQuit {
			return nil
		}
		if err := dec.Decode(&last); err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		c.render(last)
	}
}

// parseCommand turns one input line into a client message. It prints help or
// an error and returns false when nothing should be sent.
func (c *Client) parseCommand(line string, sv *StateView) (ClientMessage, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ClientMessage{}, false
	}
	switch strings.ToLower(fields[0]) {
	case "n", "next":
		return ClientMessage{Type: MsgNextPhase}, true
	case "b", "buy":
		return ClientMessage{Type: MsgBuy}, true
	case "s", "state":
		return ClientMessage{Type: MsgState}, true
	case "q", "quit", "exit":
		return ClientMessage{Type: MsgQuit}, true
	case "p", "play":
		if len(fields) < 2 {
			fmt.Fprintln(c.out, "Usage: play <N|id>")
			return ClientMessage{}, false
		}
		id := fields[1]
		if n, err := strconv.Atoi(id); err == nil {
			if sv == nil || n < 1 || n > len(sv.You.Hand) {
				fmt.Fprintf(c.out, "Enter a hand position between 1 and %d\n", handSize(sv))
				return ClientMessage{}, false
			}
			id = sv.You.Hand[n-1].ID
		}
		return ClientMessage{Type: MsgPlay, CardID: id}, true
	case "h", "help", "?":
		fmt.Fprintln(c.out, helpText)
	default:
		fmt.Fprintf(c.out, "Unknown command %q (h for help)\n", fields[0])
	}
	return ClientMessage{}, false
}

func handSize(sv *StateView) int {
	if sv == nil {
		return 0
	}
	return len(sv.You.Hand)
}

func (c *Client) render(msg ServerMessage) {
	for _, ev := range msg.Events {
		c.renderEvent(ev)
	}
	switch {
	case msg.Type == MsgError:
		fmt.Fprintf(c.out, "error: %s\n", msg.Message)
		return
	case !msg.OK:
		fmt.Fprintf(c.out, "! %s\n", msg.Message)
	case msg.Message != "":
		fmt.Fprintln(c.out, msg.Message)
	}
	c.renderState(msg.State)
}

func (c *Client) renderEvent(ev EventView) {
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 18 {
		phase += " "
	}
	line := fmt.Sprintf("T%-2d %s| %s", ev.Turn, phase, ev.Details)
	if ev.Warning {
		line += " [warn]"
	}
	fmt.Fprintln(c.out, line)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out
	opp, you := sv.Opponent, sv.You

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(w, "║  OPPONENT %s  Money: %d  Hand: %d\n", opp.Faction.Name, opp.Money, opp.HandCount)
	fmt.Fprintf(w, "║  Field: %s\n", formatField(opp.Field))
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(w, "║  Field: %s\n", formatField(you.Field))
	fmt.Fprintf(w, "║  YOU %s  Money: %d  Hand: %d\n", you.Faction.Name, you.Money, you.HandCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(w, "Turn %d | %s | Deck: %d\n", sv.Turn, sv.Phase, sv.DeckCount)

	if len(you.Hand) > 0 {
		fmt.Fprintln(w, "\nHand:")
		for i, cv := range you.Hand {
			fmt.Fprintf(w, "  %d) %s\n", i+1, formatCard(cv))
		}
	}
}

func formatField(cards []CardView) string {
	if len(cards) == 0 {
		return "[ ]"
	}
	parts := make([]string, 0, len(cards))
	for _, cv := range cards {
		parts = append(parts, "["+cv.Name+"]")
	}
	return strings.Join(parts, " ")
}

func formatCard(cv CardView) string {
	if cv.Kind == "Group-like" {
		return fmt.Sprintf("%s (%s, P%v R%d I%d)", cv.Name, cv.Type, cv.Power, cv.Resistance, cv.Income)
	}
	return fmt.Sprintf("%s (%s)", cv.Name, cv.Type)
}
