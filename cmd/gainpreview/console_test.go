package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/simplegain/pkg/framework/host"
	"github.com/justyntemme/simplegain/pkg/plugin"
)

func newTestConsole(t *testing.T) (*console, *host.Recorder) {
	t.Helper()
	rec := &host.Recorder{}
	p, err := plugin.New(rec)
	if err != nil {
		t.Fatal(err)
	}
	return newConsole(p, "localhost:0", make(chan host.Event), nil), rec
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConsoleAutomation(t *testing.T) {
	c, rec := newTestConsole(t)

	c.Update(key("up"))
	if g := c.plugin.Parameter(plugin.ParamGain); g != 1.05 {
		t.Errorf("gain after up = %v, want 1.05", g)
	}
	c.Update(key("0"))
	c.Update(key("down"))
	if g := c.plugin.Parameter(plugin.ParamGain); g != 0 {
		t.Errorf("gain should stay clamped at 0, got %v", g)
	}
	if len(rec.Events()) != 0 {
		t.Error("host automation must not be reported back to the host")
	}
	if !strings.Contains(c.View(), "host automation -> 0.000") {
		t.Errorf("view should list the automation:\n%s", c.View())
	}
}

func TestConsoleMetersTone(t *testing.T) {
	c, _ := newTestConsole(t)

	c.Update(key("1"))
	c.Update(tickMsg{})
	if peak := c.meter.Peak(0); peak < 0.45 || peak > 0.51 {
		t.Errorf("unity peak = %v, want about %v", peak, toneLevel)
	}

	c.Update(key("r"))
	c.plugin.SetParameter(plugin.ParamGain, 4)
	c.Update(tickMsg{})
	if c.meter.Clipped(0) == 0 {
		t.Error("4x gain on a 0.5 tone should clip")
	}
	if !strings.Contains(c.View(), "CLIP") {
		t.Error("view should flag clipping")
	}
}

func TestConsoleListsHostEvents(t *testing.T) {
	c, _ := newTestConsole(t)

	c.Update(hostEventMsg(host.Event{Kind: host.EventAutomate, Index: 0, Value: 0.25}))
	c.Update(hostEventMsg(host.Event{Kind: host.EventEndEdit, Index: 0}))
	c.Update(reloadMsg(123))

	view := c.View()
	for _, want := range []string{"ui automate(0) = 0.250", "ui end-edit(0)", "bundle reloaded (123 bytes)", "bundle reloads: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestConsoleHistoryIsBounded(t *testing.T) {
	c, _ := newTestConsole(t)
	for i := 0; i < historySize*3; i++ {
		c.Update(hostEventMsg(host.Event{Kind: host.EventBeginEdit}))
	}
	if len(c.history) != historySize {
		t.Errorf("history has %d lines, want %d", len(c.history), historySize)
	}
}

func TestConsoleQuit(t *testing.T) {
	c, _ := newTestConsole(t)
	_, cmd := c.Update(key("q"))
	if cmd == nil || !c.quitting {
		t.Fatal("q should quit")
	}
	if c.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "Error"} {
		if _, err := parseLevel(s); err != nil {
			t.Errorf("parseLevel(%q): %v", s, err)
		}
	}
	if _, err := parseLevel("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
