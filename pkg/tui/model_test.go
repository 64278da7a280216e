package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/store"
)

func newSeededModel(t *testing.T) (Model, *app.Service) {
	t.Helper()
	ctx := context.Background()
	svc, err := app.New(ctx, store.New(store.NewMemoryKV()))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	at := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	if _, err := svc.CreateSimpleEntries(ctx, []string{"toast", "jam"}, entry.CategoryEat, at); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateSimpleEntries(ctx, []string{"coffee"}, entry.CategoryDrink, at.Add(time.Hour)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateSymptom(ctx, "headache", 7, at.Add(2*time.Hour), "dull"); err != nil {
		t.Fatalf("create: %v", err)
	}

	m := New(ctx, svc)
	return feed(t, m, m.Init()), svc
}

// feed runs a load command and hands its message back to the model.
func feed(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	switch msg := cmd().(type) {
	case entriesLoadedMsg:
		next, _ := m.Update(msg)
		return next.(Model)
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if loaded, ok := c().(entriesLoadedMsg); ok {
				next, _ := m.Update(loaded)
				return next.(Model)
			}
		}
	}
	t.Fatalf("expected entriesLoadedMsg")
	return m
}

func press(m Model, key tea.KeyPressMsg) Model {
	next, _ := m.Update(key)
	return next.(Model)
}

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(r), Code: r}
}

func TestInitialLoadNewestFirst(t *testing.T) {
	m, _ := newSeededModel(t)

	items := m.list.Items()
	if len(items) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(items))
	}
	if got := items[0].(entryItem).e.Label; got != "headache" {
		t.Fatalf("expected newest entry first, got %q", got)
	}
	if !strings.Contains(m.list.Title, "(4)") {
		t.Fatalf("expected count in title, got %q", m.list.Title)
	}
}

func TestTabCyclesCategoryFilter(t *testing.T) {
	m, _ := newSeededModel(t)

	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.category() != entry.CategoryEat {
		t.Fatalf("expected eat filter, got %q", m.category())
	}
	m = feed(t, m, m.load())
	if n := len(m.list.Items()); n != 2 {
		t.Fatalf("expected 2 eat entries, got %d", n)
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if m.category() != "" {
		t.Fatalf("expected all categories after shift+tab, got %q", m.category())
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if m.category() != entry.CategorySymptom {
		t.Fatalf("expected wrap around to symptom, got %q", m.category())
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, svc := newSeededModel(t)

	m = press(m, runeKey('d'))
	if m.mode != modeConfirmDelete || m.pendingDelete == nil {
		t.Fatalf("expected confirm mode")
	}
	if v := m.View(); !strings.Contains(v, "headache") || !strings.Contains(v, "y/n") {
		t.Fatalf("expected confirmation prompt in view")
	}

	m = press(m, runeKey('n'))
	if m.mode != modeNormal || len(svc.Entries()) != 4 {
		t.Fatalf("expected cancel to keep the entry")
	}

	m = press(m, runeKey('d'))
	next, cmd := m.Update(runeKey('y'))
	m = feed(t, next.(Model), cmd)
	if len(svc.Entries()) != 3 {
		t.Fatalf("expected entry deleted, have %d", len(svc.Entries()))
	}
	if len(m.list.Items()) != 3 {
		t.Fatalf("expected list refreshed, have %d", len(m.list.Items()))
	}
}

func TestSearchFiltersList(t *testing.T) {
	m, _ := newSeededModel(t)

	m = press(m, runeKey('/'))
	if m.mode != modeSearch {
		t.Fatalf("expected search mode")
	}
	m.input.SetValue("jam")
	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = feed(t, next.(Model), cmd)

	if m.search != "jam" || len(m.list.Items()) != 1 {
		t.Fatalf("expected one match for jam, got %d", len(m.list.Items()))
	}

	next, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = feed(t, next.(Model), cmd)
	if m.search != "" || len(m.list.Items()) != 4 {
		t.Fatalf("expected esc to clear the search")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newSeededModel(t)
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
