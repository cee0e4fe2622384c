package main

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carbocation/mirreport/config"
	"github.com/carbocation/mirreport/engine"
	"github.com/carbocation/mirreport/reportdata"
)

const fixture = "../../reportdata/testdata/mirtrace-results.json"

func testViewer(t *testing.T) (*model, chan tea.Msg) {
	t.Helper()

	report, err := reportdata.Load(context.Background(), fixture)
	if err != nil {
		t.Fatal(err)
	}

	msgs := make(chan tea.Msg, 16)
	send := func(msg tea.Msg) {
		select {
		case msgs <- msg:
		default:
		}
	}

	m, _, err := newViewer(report, config.Default(), send)
	if err != nil {
		t.Fatal(err)
	}
	return m, msgs
}

func TestMonitorTickRelayouts(t *testing.T) {
	m, msgs := testViewer(t)
	if w := m.e.Layout().SampleColumnWidth; w != 35 {
		t.Fatalf("initial column width %d, expected 35", w)
	}

	// 19 columns are 152 report pixels: (152-110)/2 = 21 per sample.
	m.host.cols = 19

	mon := m.e.Monitor(5 * time.Millisecond)
	mon.Start()
	defer mon.Stop()

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor posted no tick")
	}
	mon.Stop()

	ev, ok := msg.(engine.Event)
	if !ok || ev.Kind != engine.KindTick {
		t.Fatalf("expected a tick event, got %#v", msg)
	}

	m.Update(msg)
	if w := m.e.Layout().SampleColumnWidth; w != 21 {
		t.Errorf("column width %d after the tick, expected 21", w)
	}
}

func TestWindowSizeRelayouts(t *testing.T) {
	m, _ := testViewer(t)

	m.Update(tea.WindowSizeMsg{Width: 19, Height: 40})
	if w := m.e.Layout().SampleColumnWidth; w != 21 {
		t.Errorf("column width %d, expected 21", w)
	}
	if m.winHeight != 40 {
		t.Errorf("window height %d", m.winHeight)
	}
}

func TestSelectKeys(t *testing.T) {
	m, _ := testViewer(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.e.Selection().Selected; sel[0] || !sel[1] {
		t.Fatalf("selection %v", sel)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.e.Selection().Active() {
		t.Errorf("x did not clear the selection")
	}
}

func TestShortName(t *testing.T) {
	cases := []struct{ in, out string }{
		{"plasma_1", "plasma_1"},
		{"plasma_sample_1", "plasma_sam"},
		{"ÅÅÅÅÅÅÅÅÅÅÅÅ", "ÅÅÅÅÅÅÅÅÅÅ"},
	}
	for _, c := range cases {
		got := shortName(c.in)
		if got != c.out {
			t.Errorf("shortName(%q) = %q, expected %q", c.in, got, c.out)
		}
		if !utf8.ValidString(got) {
			t.Errorf("shortName(%q) is not valid UTF-8", c.in)
		}
	}
}
