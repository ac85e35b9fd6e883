package workspace

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sift-db/sift/internal/db"
)

type fakeSession struct {
	outcome *db.Outcome
	err     error
	lastSQL string
}

func (f *fakeSession) Execute(_ context.Context, sql string) (*db.Outcome, error) {
	f.lastSQL = sql
	return f.outcome, f.err
}

func (f *fakeSession) Tables(context.Context) ([]db.TableMeta, error) { return nil, nil }
func (f *fakeSession) Target() string                                 { return "testdb" }
func (f *fakeSession) Close()                                         {}

func newTestModel(fake *fakeSession) Model {
	m := New(fake, db.NewStatsRecorder(), nil, time.Second, 100)
	m.SetSize(80, 40)
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func selectOutcome(rows int) *db.Outcome {
	out := &db.Outcome{
		Kind:    db.QuerySelect,
		Headers: []string{"id", "name"},
		Elapsed: 5 * time.Millisecond,
	}
	for i := 0; i < rows; i++ {
		out.Rows = append(out.Rows, []string{fmt.Sprintf("%d", i+1), "row"})
	}
	return out
}

func TestExecuteAppliesResults(t *testing.T) {
	fake := &fakeSession{}
	m := newTestModel(fake)
	m.SetQuery("SELECT * FROM users")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF5})
	if !m.Executing() {
		t.Fatal("expected query to be in flight after F5")
	}
	if cmd == nil {
		t.Fatal("expected execution command")
	}

	m, _ = m.Update(QueryCompletedMsg{Seq: 1, SQL: "SELECT * FROM users", Outcome: selectOutcome(3)})
	if m.Executing() {
		t.Error("expected execution to be finished")
	}
	if m.grid.RowCount() != 3 {
		t.Errorf("grid has %d rows, want 3", m.grid.RowCount())
	}
	if m.pane != PaneResults {
		t.Error("expected focus to move to the results pane")
	}
	if m.toast == "" {
		t.Error("expected a completion toast")
	}
	if s, ok := m.stats.Last(); !ok || s.Rows != 3 {
		t.Errorf("stats not recorded: %+v", s)
	}
}

func TestStaleCompletionDiscarded(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.SetQuery("SELECT 1")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})

	// A completion from a superseded execution must be ignored.
	m, _ = m.Update(QueryCompletedMsg{Seq: 0, Outcome: selectOutcome(9)})
	if !m.Executing() {
		t.Error("stale completion should not finish the current execution")
	}
	if m.grid.RowCount() != 0 {
		t.Error("stale completion should not populate the grid")
	}
}

func TestExecuteWhileRunning(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.SetQuery("SELECT 1")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})

	if m.seq != 1 {
		t.Errorf("second F5 started a new execution, seq = %d", m.seq)
	}
	if m.toast != "a query is already running" {
		t.Errorf("toast = %q", m.toast)
	}
}

func TestEmptyQueryNotExecuted(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})
	if m.Executing() {
		t.Error("empty buffer should not execute")
	}
	if m.toast != "nothing to execute" {
		t.Errorf("toast = %q", m.toast)
	}
}

func TestQueryErrorShown(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.SetQuery("DELETE FROM users")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})

	m, _ = m.Update(QueryCompletedMsg{Seq: 1, Err: fmt.Errorf("relation does not exist")})
	if m.Executing() {
		t.Error("error completion should finish the execution")
	}
	if m.errText != "relation does not exist" {
		t.Errorf("errText = %q", m.errText)
	}
	if _, ok := m.stats.Last(); ok {
		t.Error("failed queries should not be recorded")
	}
}

func TestAffectedOutcomeClearsGrid(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.SetQuery("SELECT 1")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m, _ = m.Update(QueryCompletedMsg{Seq: 1, Outcome: selectOutcome(2)})

	m.SetQuery("UPDATE users SET name = 'x'")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m, _ = m.Update(QueryCompletedMsg{Seq: 2, Outcome: &db.Outcome{
		Kind: db.QueryUpdate, Affected: 7, Elapsed: time.Millisecond,
	}})

	if m.grid.RowCount() != 0 {
		t.Error("non-SELECT outcome should clear the grid")
	}
	if m.toast != "UPDATE: 7 rows affected in 1ms" {
		t.Errorf("toast = %q", m.toast)
	}
}

func TestSwitchPane(t *testing.T) {
	m := newTestModel(&fakeSession{})
	if m.pane != PaneEditor {
		t.Fatal("editor pane should start focused")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.pane != PaneResults {
		t.Error("tab should switch to the results pane")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.pane != PaneEditor {
		t.Error("tab should switch back to the editor pane")
	}
}

func TestTabInsertsInInsertMode(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m, _ = m.Update(runeKey('i'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if m.pane != PaneEditor {
		t.Error("tab must not switch panes while inserting")
	}
	if m.editor.Text() != "\t" {
		t.Errorf("editor text = %q, want a tab", m.editor.Text())
	}
}

func TestJumpPrompt(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.SetQuery("SELECT 1")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m, _ = m.Update(QueryCompletedMsg{Seq: 1, Outcome: selectOutcome(250)})

	m, _ = m.Update(runeKey(':'))
	if !m.jumpActive {
		t.Fatal("colon should open the jump prompt")
	}
	if !m.InTextEntry() {
		t.Error("jump prompt should capture text entry")
	}

	for _, r := range "1q50" { // non-digits are ignored
		m, _ = m.Update(runeKey(r))
	}
	if m.jumpInput != "150" {
		t.Errorf("jumpInput = %q, want 150", m.jumpInput)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.jumpInput != "15" {
		t.Errorf("jumpInput after backspace = %q, want 15", m.jumpInput)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.jumpActive {
		t.Error("enter should close the prompt")
	}
	// Display row 15 is absolute index 14 on page 0.
	if m.grid.SelectedRow() != 14 {
		t.Errorf("selected row = %d, want 14", m.grid.SelectedRow())
	}
}

func TestJumpPromptEscape(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.SetQuery("SELECT 1")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m, _ = m.Update(QueryCompletedMsg{Seq: 1, Outcome: selectOutcome(50)})

	m, _ = m.Update(runeKey(':'))
	m, _ = m.Update(runeKey('4'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.jumpActive {
		t.Error("esc should abort the prompt")
	}
	if m.grid.SelectedRow() != 0 {
		t.Error("aborted prompt should not move the selection")
	}
}

func TestResultsNavigationKeys(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m.SetQuery("SELECT 1")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m, _ = m.Update(QueryCompletedMsg{Seq: 1, Outcome: selectOutcome(250)})

	m, _ = m.Update(runeKey('j'))
	if m.grid.SelectedRow() != 1 {
		t.Errorf("j: selected row = %d, want 1", m.grid.SelectedRow())
	}
	m, _ = m.Update(runeKey(']'))
	if m.grid.Page() != 1 {
		t.Errorf("]: page = %d, want 1", m.grid.Page())
	}
	m, _ = m.Update(runeKey('['))
	if m.grid.Page() != 0 {
		t.Errorf("[: page = %d, want 0", m.grid.Page())
	}
	m, _ = m.Update(runeKey('l'))
	if m.grid.SelectedCol() != 1 {
		t.Errorf("l: selected col = %d, want 1", m.grid.SelectedCol())
	}
}

func TestToastExpiry(t *testing.T) {
	m := newTestModel(&fakeSession{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyF5}) // empty buffer toast
	if m.toast == "" {
		t.Fatal("expected a toast")
	}
	id := m.toastID

	// An expiry for an older toast must not clear a newer one.
	m, _ = m.Update(toastExpiredMsg{id: id - 1})
	if m.toast == "" {
		t.Error("stale expiry cleared the toast")
	}
	m, _ = m.Update(toastExpiredMsg{id: id})
	if m.toast != "" {
		t.Error("toast should clear on expiry")
	}
}

func TestViewRendersWithoutResults(t *testing.T) {
	m := newTestModel(&fakeSession{})
	if m.View() == "" {
		t.Error("view should render before any query runs")
	}
}
