package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewGameStartEvent("Bavarian Illuminati", "Servants of Cthulhu"))
	l.Log(NewFallbackEvent("no saved deck", "Bavarian Illuminati"))
	l.Log(NewPhaseChangeEvent(1, "Main Actions"))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("events = %d", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d seq = %d", i, e.Seq)
		}
	}
	if n := len(l.EventsOfType(EventPhaseChange)); n != 1 {
		t.Errorf("phase changes = %d", n)
	}
	if w := l.Warnings(); len(w) != 1 || w[0].Type != EventFallback {
		t.Errorf("warnings = %+v", w)
	}
	if l.LastEvent().Type != EventPhaseChange {
		t.Errorf("last = %s", l.LastEvent().Type)
	}
	if (&MemoryLogger{}).LastEvent().Type != EventGameStart {
		t.Error("empty logger should return the zero event")
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewShortDrawEvent(SideOpponent, "any", 8, 3))
	l.Log(NewDrawEvent(2, "End Turn", SideOpponent, "Shadow Asset 9"))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", out)
	}
	if !strings.HasSuffix(lines[0], "[warn]") || !strings.Contains(lines[0], "opponent opening hand (wanted 8, drew 3)") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "T2  End Turn") || !strings.Contains(lines[1], "| Opponent draws Shadow Asset 9") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[1], "Opponent| ") {
		t.Errorf("line 1 should name the acting side: %q", lines[1])
	}
	start := FormatEvent(NewGameStartEvent("UFOs", "Servants of Cthulhu"))
	if strings.Contains(start, "Player|") || !strings.HasPrefix(start, "T1 ") {
		t.Errorf("game start line = %q", start)
	}
	if len(l.Events()) != 2 {
		t.Errorf("text logger should also keep events")
	}
}

func TestOpponentTurnDetails(t *testing.T) {
	e := NewOpponentTurnEvent(3, "End Turn", true, 2, 13)
	if e.Side != SideOpponent || e.Details != "Opponent draws a card and gains 2 (money 13)" {
		t.Errorf("drew: %+v", e)
	}
	e = NewOpponentTurnEvent(3, "End Turn", false, 2, 13)
	if e.Details != "Opponent gains 2 (money 13)" {
		t.Errorf("no draw: %+v", e)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventBuyFailed.String() != "BuyFailed" || EventType(99).String() != "Unknown" {
		t.Error("unexpected EventType names")
	}
}
