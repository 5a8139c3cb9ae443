package kanban

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kban/internal/kanban/board"
	"kban/internal/kanban/models"
	"kban/internal/kanban/transfer"
	"kban/internal/settings"
	"kban/internal/storage"
	"kban/internal/tui/messages"
)

func newTestModel(t *testing.T) (BoardModel, *board.Board, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	b, err := board.New(store)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	m := NewBoardModel(b, store, "")
	m.SetSize(160, 40)
	return m, b, store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m BoardModel, keys ...string) BoardModel {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func titles(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func TestNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "j", "j", "l")
	if m.selectedCol != 1 || m.selectedCard != 0 {
		t.Fatalf("expected column 1 card 0, got %d/%d", m.selectedCol, m.selectedCard)
	}

	// cursor position is remembered per column
	m = press(m, "h")
	if m.selectedCard != 2 {
		t.Errorf("expected restored cursor 2, got %d", m.selectedCard)
	}

	m = press(m, "h", "k", "k", "k")
	if m.selectedCol != 0 || m.selectedCard != 0 {
		t.Errorf("cursor left the board: %d/%d", m.selectedCol, m.selectedCard)
	}
}

func TestDragCardToOtherColumn(t *testing.T) {
	m, b, _ := newTestModel(t)
	moved := b.Columns()[0].Cards[0]

	m = press(m, "m")
	if m.mode != boardModeDrag || m.focus.id != moved.ID {
		t.Fatalf("expected drag of %s, mode=%d focus=%q", moved.ID, m.mode, m.focus.id)
	}

	m = press(m, "l", "enter")
	if m.mode != boardModeNormal {
		t.Fatalf("expected normal mode after drop, got %d", m.mode)
	}
	if m.focus.id != "" {
		t.Errorf("expected focus released, got %q", m.focus.id)
	}

	cols := b.Columns()
	if len(cols[0].Cards) != 2 {
		t.Errorf("expected 2 cards left in first column, got %d", len(cols[0].Cards))
	}
	// cards dropped on another column enter at the top
	got := cols[1].Cards[0]
	if got.ID != moved.ID {
		t.Fatalf("expected moved card at the top of column 2, got %v", titles(cols[1].Cards))
	}
	if last, _ := got.LastEntry(); last.ColumnID != cols[1].ID {
		t.Errorf("expected history entry for %s, got %s", cols[1].ID, last.ColumnID)
	}
	if m.selectedCol != 1 || m.selectedCard != 0 {
		t.Errorf("expected cursor to follow the card, got %d/%d", m.selectedCol, m.selectedCard)
	}
}

func TestDragCardOntoCard(t *testing.T) {
	m, b, _ := newTestModel(t)
	before := titles(b.Columns()[0].Cards)

	// move the first card below the third
	m = press(m, "m", "j", "j", "enter")

	after := titles(b.Columns()[0].Cards)
	want := []string{before[1], before[2], before[0]}
	for i := range want {
		if after[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, after)
		}
	}
	if m.selectedCard != 2 {
		t.Errorf("expected cursor on the moved card, got %d", m.selectedCard)
	}
	if m.message != "Moved" {
		t.Errorf("expected move message, got %q", m.message)
	}
}

func TestDragCardOntoItself(t *testing.T) {
	m, b, _ := newTestModel(t)
	before := titles(b.Columns()[0].Cards)

	m = press(m, "m", "enter")

	if m.mode != boardModeNormal {
		t.Fatalf("expected normal mode after drop, got %d", m.mode)
	}
	after := titles(b.Columns()[0].Cards)
	if strings.Join(after, "|") != strings.Join(before, "|") {
		t.Errorf("expected unchanged column %v, got %v", before, after)
	}
	if m.message != "" {
		t.Errorf("expected no status message, got %q", m.message)
	}
}

func TestDragCancel(t *testing.T) {
	m, b, _ := newTestModel(t)
	state := b.State()

	m = press(m, "m", "l", "l", "esc")

	if m.mode != boardModeNormal {
		t.Errorf("expected normal mode, got %d", m.mode)
	}
	if m.focus.id != "" {
		t.Errorf("expected focus released, got %q", m.focus.id)
	}
	if b.State() != state {
		t.Error("cancelled drag changed the board")
	}
	if b.CanUndo() {
		t.Error("cancelled drag recorded history")
	}
}

func TestDragColumn(t *testing.T) {
	m, b, _ := newTestModel(t)
	first := b.Columns()[0].ID

	m = press(m, "M", "l", "l", "enter")

	cols := b.Columns()
	if cols[2].ID != first {
		t.Fatalf("expected first column to move last, got %s", cols[2].Title)
	}
	if m.selectedCol != 2 {
		t.Errorf("expected cursor on moved column, got %d", m.selectedCol)
	}
}

func TestUndoRedo(t *testing.T) {
	m, b, _ := newTestModel(t)
	original := b.State()

	m = press(m, "m", "l", "enter")
	moved := b.State()
	if moved == original {
		t.Fatal("expected the drop to change the board")
	}

	m = press(m, "u")
	if b.State() != original {
		t.Error("undo did not restore the previous board")
	}

	m = press(m, "ctrl+r")
	if b.State() != moved {
		t.Error("redo did not restore the moved board")
	}
	if m.message != "Redone" {
		t.Errorf("unexpected message %q", m.message)
	}
}

func TestAddAndRenameCard(t *testing.T) {
	m, b, _ := newTestModel(t)

	m = press(m, "a")
	if m.mode != boardModePrompt {
		t.Fatalf("expected prompt mode, got %d", m.mode)
	}
	m = press(m, "Write tests", "enter")

	cards := b.Columns()[0].Cards
	if got := cards[0].Title; got != "Write tests" {
		t.Fatalf("expected new card at the top, got %q", got)
	}
	if m.selectedCard != 0 {
		t.Errorf("expected cursor on the new card, got %d", m.selectedCard)
	}

	m = press(m, "r", " again", "enter")
	cards = b.Columns()[0].Cards
	if got := cards[0].Title; got != "Write tests again" {
		t.Errorf("expected renamed card, got %q", got)
	}
}

func TestPromptCancel(t *testing.T) {
	m, b, _ := newTestModel(t)
	state := b.State()

	m = press(m, "A", "Backlog", "esc")

	if m.mode != boardModeNormal {
		t.Errorf("expected normal mode, got %d", m.mode)
	}
	if b.State() != state {
		t.Error("cancelled prompt changed the board")
	}
}

func TestAddColumnSelectsIt(t *testing.T) {
	m, b, _ := newTestModel(t)

	m = press(m, "A", "Backlog", "enter")

	cols := b.Columns()
	if len(cols) != 4 || cols[3].Title != "Backlog" {
		t.Fatalf("expected Backlog appended, got %d columns", len(cols))
	}
	if m.selectedCol != 3 {
		t.Errorf("expected cursor on new column, got %d", m.selectedCol)
	}
}

func TestDeleteCardConfirm(t *testing.T) {
	m, b, _ := newTestModel(t)

	m = press(m, "d", "n")
	if len(b.Columns()[0].Cards) != 3 {
		t.Fatal("declined delete removed the card")
	}

	m = press(m, "d", "y")
	if len(b.Columns()[0].Cards) != 2 {
		t.Errorf("expected card removed, got %d cards", len(b.Columns()[0].Cards))
	}
	if m.mode != boardModeNormal {
		t.Errorf("expected normal mode, got %d", m.mode)
	}
}

func TestDeleteColumnWarning(t *testing.T) {
	m, b, _ := newTestModel(t)

	m = press(m, "D")
	if m.mode != boardModeConfirmDeleteColumn {
		t.Fatalf("expected confirmation, got mode %d", m.mode)
	}
	m = press(m, "y")
	if len(b.Columns()) != 2 {
		t.Errorf("expected 2 columns, got %d", len(b.Columns()))
	}
}

func TestDeleteColumnWithoutWarning(t *testing.T) {
	m, b, store := newTestModel(t)

	s := settings.Load(store)
	s.DeleteColumnWarning = false
	if err := settings.Save(store, s); err != nil {
		t.Fatal(err)
	}
	m, _ = m.Update(messages.SettingsChangedMsg{})

	m = press(m, "l", "D")
	if m.mode != boardModeNormal {
		t.Errorf("expected no confirmation, got mode %d", m.mode)
	}
	cols := b.Columns()
	if len(cols) != 2 || cols[1].Title != "Done" {
		t.Errorf("expected In Progress removed, got %d columns", len(cols))
	}
	if m.selectedCol != 1 {
		t.Errorf("expected cursor to stay in range, got %d", m.selectedCol)
	}
}

func TestSortColumn(t *testing.T) {
	m, b, _ := newTestModel(t)

	press(m, "S")

	got := titles(b.Columns()[0].Cards)
	want := []string{"Drag a card to another column", "Press / to search cards", "Press s to see board stats"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSearch(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "/", "u")
	if m.searchActive {
		t.Error("single character query should not filter")
	}

	m = press(m, "ndo", "enter")
	if !m.searchActive {
		t.Fatal("expected search to be active")
	}
	if n := len(m.getVisibleCards(0)); n != 0 {
		t.Errorf("expected no matches in To Do, got %d", n)
	}
	if got := titles(m.getVisibleCards(1)); len(got) != 1 || got[0] != "Undo with u, redo with ctrl+r" {
		t.Errorf("unexpected matches %v", got)
	}

	// moving is disabled while filtered
	m = press(m, "l", "m")
	if m.mode != boardModeNormal {
		t.Errorf("expected drag to be refused, got mode %d", m.mode)
	}

	m = press(m, "esc")
	if m.searchActive || len(m.getVisibleCards(0)) != 3 {
		t.Error("esc did not clear the search")
	}
}

func TestThemeAndDensityPersist(t *testing.T) {
	m, _, store := newTestModel(t)

	m = press(m, "T", "z")

	s := settings.Load(store)
	if s.Theme != "ocean" {
		t.Errorf("expected ocean theme, got %q", s.Theme)
	}
	if s.CardDensity != settings.DensityLarge {
		t.Errorf("expected large density, got %q", s.CardDensity)
	}
	if m.st.density != settings.DensityLarge {
		t.Errorf("styles not rebuilt for density, got %q", m.st.density)
	}
}

func TestColumnResizing(t *testing.T) {
	m, _, store := newTestModel(t)

	m = press(m, ">")
	if m.colWidth != defaultColumnWidth {
		t.Errorf("resizing should be off by default, width %d", m.colWidth)
	}

	s := settings.Load(store)
	s.ColumnResizingEnabled = true
	if err := settings.Save(store, s); err != nil {
		t.Fatal(err)
	}
	m, _ = m.Update(messages.SettingsChangedMsg{})

	m = press(m, ">", ">")
	if m.colWidth != defaultColumnWidth+2*columnWidthStep {
		t.Errorf("expected wider columns, got %d", m.colWidth)
	}
	for i := 0; i < 20; i++ {
		m = press(m, "<")
	}
	if m.colWidth != minColumnWidth {
		t.Errorf("expected width clamped to %d, got %d", minColumnWidth, m.colWidth)
	}
}

func TestImportPacing(t *testing.T) {
	m, b, store := newTestModel(t)

	m, cmd := m.startImport()
	if cmd == nil || m.pacer.Phase() != transfer.PhaseImporting {
		t.Fatalf("expected import to start, phase %s", m.pacer.Phase())
	}
	if _, again := m.startImport(); again != nil {
		t.Error("second import started while the first was running")
	}

	cols := []models.Column{models.NewColumn("c1", "Imported", 1)}
	s := settings.Defaults()
	s.Theme = "forest"
	data, err := transfer.Export(cols, s, time.Unix(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	p, err := transfer.Import(data, 2)
	if err != nil {
		t.Fatal(err)
	}

	m, cmd = m.Update(messages.ImportResultMsg{Payload: p})
	if cmd == nil {
		t.Error("expected a reset tick")
	}
	if m.pacer.Phase() != transfer.PhaseDone {
		t.Errorf("expected done, got %s", m.pacer.Phase())
	}
	if got := b.Columns(); len(got) != 1 || got[0].Title != "Imported" {
		t.Errorf("board not replaced: %v", got)
	}
	if settings.Load(store).Theme != "forest" {
		t.Error("settings not imported")
	}
	m, _ = m.Update(messages.SettingsChangedMsg{})
	if m.settings.Theme != "forest" {
		t.Errorf("view kept theme %q", m.settings.Theme)
	}

	m, _ = m.Update(messages.ImportResetMsg{})
	if m.pacer.Phase() != transfer.PhaseIdle {
		t.Errorf("expected idle, got %s", m.pacer.Phase())
	}
}

func TestImportFailure(t *testing.T) {
	m, b, _ := newTestModel(t)
	state := b.State()

	m, _ = m.startImport()
	m, _ = m.Update(messages.ImportResultMsg{Err: errors.New("boom")})

	if m.pacer.Phase() != transfer.PhaseFailed {
		t.Errorf("expected failed, got %s", m.pacer.Phase())
	}
	if b.State() != state {
		t.Error("failed import changed the board")
	}
	if !strings.Contains(m.View(), "Import failed: boom") {
		t.Error("failure not shown")
	}
}

func TestViewRendersColumns(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()
	for _, want := range []string{"To Do", "In Progress", "Done", "Open kban"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(m, "s")
	if !strings.Contains(m.View(), "Board statistics") {
		t.Error("stats overlay not shown")
	}
	m = press(m, "x")
	if m.mode != boardModeNormal {
		t.Error("any key should close the stats overlay")
	}
}

func TestEmptyBoardView(t *testing.T) {
	store := storage.NewMemory()
	if err := store.Set(settings.KeyBoard, `{"columns":[]}`); err != nil {
		t.Fatal(err)
	}
	b, err := board.New(store)
	if err != nil {
		t.Fatal(err)
	}
	m := NewBoardModel(b, store, "")
	m.SetSize(100, 30)

	m = press(m, "j", "l", "m", "a", "D")
	if m.mode != boardModeNormal {
		t.Errorf("keys on an empty board changed mode to %d", m.mode)
	}
	if !strings.Contains(m.View(), "No columns yet") {
		t.Error("empty board hint missing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a longer title", 8, "a lon..."},
		{"héllo wörld", 7, "héll..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
