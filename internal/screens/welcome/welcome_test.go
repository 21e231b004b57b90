package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rahulj/mockmate/internal/router"
	"github.com/rahulj/mockmate/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "next" }
func (s *stubScreen) Title() string                           { return "Next" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	var s screen.Screen = w
	for i := 0; i < n; i++ {
		s, _ = s.Update(tickMsg(time.Now()))
	}
}

func TestBannerAppearsOverTime(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "press any key") {
		t.Error("hint should not be visible at start")
	}

	sendTicks(w, 12)
	view := w.View(100, 30)
	if !strings.Contains(view, "press any key") {
		t.Error("hint should be visible after the animation")
	}
	if !strings.Contains(view, "Practice interviews") {
		t.Error("tagline should be visible after the animation")
	}
}

func TestKeypressSkipsSplash(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger the transition")
	}
	msg := cmd()
	replaceMsg, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replaceMsg.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory calls = %d, want 1", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory calls = %d, want 1", *callCount)
	}
}

func TestElapsedCapped(t *testing.T) {
	w, _ := newTestWelcome()
	sendTicks(w, 50)
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want capped at %v", w.elapsed, totalDur)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("Title = %q, want empty", w.Title())
	}
}
