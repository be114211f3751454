package tui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/manifest-fetcher/internal/audio"
	"github.com/handiism/manifest-fetcher/internal/config"
	"github.com/handiism/manifest-fetcher/internal/download"
	"github.com/handiism/manifest-fetcher/internal/model"
)

type silentEngine struct{}

func (silentEngine) Open(io.Reader) (audio.Stream, error) {
	return nil, errors.New("no audio in tests")
}

func newTestModel(t *testing.T, manifest string) Model {
	t.Helper()
	settings := config.DefaultSettings()
	settings.ManifestPath = manifest
	return NewModel(settings, audio.NewPlayer(silentEngine{}))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModel_PrefillsManifestPath(t *testing.T) {
	m := newTestModel(t, "some/list.txt")

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.textInput.Value() != "some/list.txt" {
		t.Errorf("input = %q, want some/list.txt", m.textInput.Value())
	}
	if !m.playAudio {
		t.Error("playAudio should follow settings")
	}
}

func TestModel_Toggles(t *testing.T) {
	m := newTestModel(t, "list.txt")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	if m.playAudio {
		t.Error("ctrl+t should disable audio playback")
	}
	if !m.playlist {
		t.Error("ctrl+l should enable the playlist")
	}
	if !m.verbose {
		t.Error("ctrl+o should enable verbose output")
	}
	if m.textInput.Value() != "list.txt" {
		t.Errorf("toggles changed the input: %q", m.textInput.Value())
	}
}

func TestModel_TypingLetters(t *testing.T) {
	m := newTestModel(t, "")

	for _, r := range "pav" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if m.textInput.Value() != "pav" {
		t.Errorf("input = %q, want pav", m.textInput.Value())
	}
}

func TestModel_EnterStartsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	content := "http://fixture.test/readme.txt ./out/\nhttp://fixture.test/notes.txt ./out/\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, path)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != StateRunning {
		t.Fatalf("state = %v, want StateRunning", m.state)
	}
	if cmd == nil {
		t.Fatal("expected commands to start the run")
	}
	if m.orch == nil || m.events == nil {
		t.Fatal("orchestrator not prepared")
	}
	if m.totalLines != 2 {
		t.Errorf("totalLines = %d, want 2", m.totalLines)
	}
	if !strings.Contains(m.View(), m.orch.RunID()) {
		t.Error("running view should show the run ID")
	}
}

func TestModel_EnterIgnoresBlankPath(t *testing.T) {
	m := newTestModel(t, "   ")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
}

func TestModel_RunDone(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		cancel    bool
		wantState State
		wantErr   error
	}{
		{"success", nil, false, StateComplete, nil},
		{"failure", model.ErrTransfer, false, StateError, model.ErrTransfer},
		{"cancelled", nil, true, StateError, ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, "list.txt")
			m.state = StateRunning
			if tt.cancel {
				m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			}

			m, _ = update(t, m, RunDoneMsg{Stats: download.Stats{LinesRead: 3, Downloaded: 2}, Err: tt.err})

			if m.state != tt.wantState {
				t.Errorf("state = %v, want %v", m.state, tt.wantState)
			}
			if !errors.Is(m.err, tt.wantErr) {
				t.Errorf("err = %v, want %v", m.err, tt.wantErr)
			}
			if !errors.Is(m.RunErr(), tt.wantErr) {
				t.Errorf("RunErr() = %v, want %v", m.RunErr(), tt.wantErr)
			}
			if m.stats.Downloaded != 2 {
				t.Errorf("stats not kept: %+v", m.stats)
			}
		})
	}
}

func TestModel_ProgressFiltersVerbose(t *testing.T) {
	m := newTestModel(t, "list.txt")
	m.state = StateRunning

	m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "hidden", Level: download.LevelVerbose}})
	m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "shown", Level: download.LevelInfo, Line: 4}})

	if len(m.logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(m.logs))
	}
	if !strings.Contains(m.renderLogs(), "4  shown") {
		t.Errorf("renderLogs() = %q", m.renderLogs())
	}
}

func TestModel_LogsAreCapped(t *testing.T) {
	m := newTestModel(t, "list.txt")
	m.state = StateRunning

	for i := 0; i < maxLogs+5; i++ {
		m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "x", Level: download.LevelInfo}})
	}

	if len(m.logs) != maxLogs {
		t.Errorf("logs = %d, want %d", len(m.logs), maxLogs)
	}
}

func TestModel_ResetAfterRun(t *testing.T) {
	m := newTestModel(t, "list.txt")
	m.state = StateComplete
	m.logs = []LogEntry{{Message: "old"}}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if len(m.logs) != 0 {
		t.Errorf("logs not cleared: %v", m.logs)
	}
	if m.ctx.Err() != nil {
		t.Error("reset should create a fresh context")
	}
}

func TestModel_Percent(t *testing.T) {
	m := newTestModel(t, "list.txt")
	if got := m.percent(); got != 0 {
		t.Errorf("percent() without total = %v, want 0", got)
	}

	m.totalLines = 4
	m.stats.LinesRead = 1
	if got := m.percent(); got != 0.25 {
		t.Errorf("percent() = %v, want 0.25", got)
	}

	m.stats.LinesRead = 9
	if got := m.percent(); got != 1 {
		t.Errorf("percent() = %v, want capped at 1", got)
	}
}

func TestModel_RunErrSurvivesReset(t *testing.T) {
	m := newTestModel(t, "list.txt")
	m.state = StateRunning

	m, _ = update(t, m, RunDoneMsg{Err: model.ErrMalformedEntry})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if m.state != StateInput {
		t.Fatalf("state = %v, want StateInput", m.state)
	}
	if m.err != nil {
		t.Errorf("screen error not cleared: %v", m.err)
	}
	if !errors.Is(m.RunErr(), model.ErrMalformedEntry) {
		t.Errorf("RunErr() = %v, want ErrMalformedEntry", m.RunErr())
	}
}

func TestModel_CtrlCDuringRun(t *testing.T) {
	m := newTestModel(t, "list.txt")
	m.state = StateRunning

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if !errors.Is(m.RunErr(), ErrCancelled) {
		t.Errorf("RunErr() = %v, want ErrCancelled", m.RunErr())
	}
	if m.ctx.Err() == nil {
		t.Error("run context should be cancelled")
	}
}

func TestModel_QuitWithoutRun(t *testing.T) {
	m := newTestModel(t, "list.txt")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if m.RunErr() != nil {
		t.Errorf("RunErr() = %v, want nil", m.RunErr())
	}
}

func TestModel_QuitKeyTypesInInput(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.textInput.Value() != "q" {
		t.Errorf("input = %q, want q", m.textInput.Value())
	}
}
