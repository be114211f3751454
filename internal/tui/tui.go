// Package tui provides a Bubble Tea terminal user interface for manifest runs.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/manifest-fetcher/internal/audio"
	"github.com/handiism/manifest-fetcher/internal/config"
	"github.com/handiism/manifest-fetcher/internal/download"
	"github.com/handiism/manifest-fetcher/internal/manifest"
)

// ErrCancelled is the outcome of a run stopped from the keyboard.
var ErrCancelled = errors.New("run cancelled")

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// Palette
var (
	accent = lipgloss.Color("#7AA2F7")
	muted  = lipgloss.Color("#565F89")
	good   = lipgloss.Color("#9ECE6A")
	bad    = lipgloss.Color("#F7768E")
	warn   = lipgloss.Color("#E0AF68")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	labelStyle  = lipgloss.NewStyle().Foreground(muted)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	runIDStyle  = lipgloss.NewStyle().Foreground(warn)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent).
			PaddingLeft(1)
)

// levelStyles and levelMarks decorate log lines by event level.
var (
	levelStyles = map[download.ProgressLevel]lipgloss.Style{
		download.LevelInfo:    lipgloss.NewStyle(),
		download.LevelVerbose: mutedStyle,
		download.LevelWarning: lipgloss.NewStyle().Foreground(warn),
		download.LevelError:   lipgloss.NewStyle().Foreground(bad),
		download.LevelSuccess: lipgloss.NewStyle().Foreground(good),
	}
	levelMarks = map[download.ProgressLevel]string{
		download.LevelInfo:    " ",
		download.LevelVerbose: "·",
		download.LevelWarning: "!",
		download.LevelError:   "x",
		download.LevelSuccess: "+",
	}
)

type keyMap struct {
	Start          key.Binding
	ToggleAudio    key.Binding
	TogglePlaylist key.Binding
	ToggleVerbose  key.Binding
	Stop           key.Binding
	Again          key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding
}

var keys = keyMap{
	Start:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run manifest")),
	ToggleAudio:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "playback")),
	TogglePlaylist: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "playlist")),
	ToggleVerbose:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "details")),
	Stop:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop run")),
	Again:          key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "another manifest")),
	Quit:           key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	ForceQuit:      key.NewBinding(key.WithKeys("ctrl+c")),
}

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
	Line    int
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	help      help.Model
	settings  *config.Settings
	player    *audio.Player
	logs      []LogEntry

	// err is shown on screen; runErr is the outcome of the latest run and
	// survives a reset.
	err    error
	runErr error

	ctx    context.Context
	cancel context.CancelFunc

	orch   *download.Orchestrator
	events chan download.ProgressEvent

	totalLines int
	stats      download.Stats
	runState   download.State

	playAudio bool
	playlist  bool
	verbose   bool
}

// NewModel creates a new TUI model. settings provide the defaults for every
// run; player is shared by all runs started from this model.
func NewModel(settings *config.Settings, player *audio.Player) Model {
	ti := textinput.New()
	ti.Prompt = "manifest › "
	ti.Placeholder = config.DefaultManifestPath
	ti.SetValue(settings.ManifestPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	prog := progress.New(progress.WithSolidFill(string(accent)), progress.WithoutPercentage())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		help:      help.New(),
		settings:  settings,
		player:    player,
		ctx:       ctx,
		cancel:    cancel,
		playAudio: settings.PlayAudio,
		playlist:  settings.CreatePlaylist,
	}
}

// RunErr returns the outcome of the latest run: nil when it succeeded or
// none was started, ErrCancelled when it was stopped, otherwise the
// orchestrator's error.
func (m Model) RunErr() error {
	return m.runErr
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one orchestrator event.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// RunDoneMsg is sent when the orchestrator returns.
	RunDoneMsg struct {
		Stats download.Stats
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			if m.state == StateRunning {
				m.runErr = ErrCancelled
			}
			m.cancel()
			return m, tea.Quit
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.appendLog(msg.Event)
		return m, waitForEvent(m.events)

	case RunDoneMsg:
		return m.finishRun(msg)

	case TickMsg:
		if m.orch == nil || m.state != StateRunning {
			return m, nil
		}
		m.stats = m.orch.Progress()
		m.runState = m.orch.State()
		return m, tea.Batch(m.progress.SetPercent(m.percent()), m.tickProgress())

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	if m.state != StateInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleKey applies the bindings active in the current state. Keys it does
// not handle fall through to the text input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch m.state {
	case StateInput:
		switch {
		case key.Matches(msg, keys.Start):
			if strings.TrimSpace(m.textInput.Value()) == "" {
				return m, nil, true
			}
			next, cmd := m.startRun()
			return next, cmd, true
		case key.Matches(msg, keys.ToggleAudio):
			m.playAudio = !m.playAudio
			return m, nil, true
		case key.Matches(msg, keys.TogglePlaylist):
			m.playlist = !m.playlist
			return m, nil, true
		case key.Matches(msg, keys.ToggleVerbose):
			m.verbose = !m.verbose
			return m, nil, true
		case msg.Type == tea.KeyEsc:
			return m, tea.Quit, true
		}

	case StateRunning:
		if key.Matches(msg, keys.Stop) {
			// The run stops playback and reports back via RunDoneMsg.
			m.cancel()
			return m, nil, true
		}

	case StateComplete, StateError:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit, true
		case key.Matches(msg, keys.Again):
			return m.reset(), nil, true
		}
	}
	return m, nil, m.state != StateInput
}

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.orch = nil
	m.events = nil
	m.totalLines = 0
	m.stats = download.Stats{}
	m.runState = download.StateIdle
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.Focus()
	return m
}

func (m *Model) appendLog(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level, Line: event.Line})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m Model) finishRun(msg RunDoneMsg) (tea.Model, tea.Cmd) {
	m.stats = msg.Stats
	if m.orch != nil {
		m.runState = m.orch.State()
	}

	switch {
	case m.ctx.Err() != nil:
		m.err = ErrCancelled
	case msg.Err != nil:
		m.err = msg.Err
	default:
		m.err = nil
	}
	m.runErr = m.err

	if m.err != nil {
		m.state = StateError
		return m, nil
	}
	m.state = StateComplete
	return m, m.progress.SetPercent(1)
}

// startRun builds an orchestrator for the entered manifest and launches it.
func (m Model) startRun() (Model, tea.Cmd) {
	settings := *m.settings
	settings.ManifestPath = strings.TrimSpace(m.textInput.Value())
	settings.PlayAudio = m.playAudio
	settings.CreatePlaylist = m.playlist

	// A missing manifest is reported by the run itself.
	m.totalLines, _ = manifest.CountLines(settings.ManifestPath)

	ctx := m.ctx
	events := make(chan download.ProgressEvent, 16)
	m.events = events
	m.orch = download.NewOrchestrator(&settings, m.player, func(event download.ProgressEvent) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	})
	m.state = StateRunning
	m.textInput.Blur()

	return m, tea.Batch(
		runOrchestrator(ctx, m.orch, events),
		waitForEvent(events),
		m.tickProgress(),
		m.spinner.Tick,
	)
}

// runOrchestrator runs orch in the background and closes events once it
// returns.
func runOrchestrator(ctx context.Context, orch *download.Orchestrator, events chan download.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		err := orch.Run(ctx)
		close(events)
		return RunDoneMsg{Stats: orch.Progress(), Err: err}
	}
}

// waitForEvent delivers the next orchestrator event, or nothing once the
// channel is closed.
func waitForEvent(events <-chan download.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) percent() float64 {
	if m.totalLines <= 0 {
		return 0
	}
	return min(float64(m.stats.LinesRead)/float64(m.totalLines), 1)
}

// View renders the UI.
func (m Model) View() string {
	var body string
	switch m.state {
	case StateInput:
		body = m.viewInput()
	case StateRunning:
		body = m.viewRunning()
	case StateComplete:
		body = m.viewSummary(lipgloss.NewStyle().Foreground(good).Render("manifest finished"))
	case StateError:
		body = m.viewSummary(lipgloss.NewStyle().Foreground(bad).Render(m.failureTitle()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("manifest-fetcher"),
		"",
		body,
		"",
		m.help.ShortHelpView(m.bindings()),
	)
}

func (m Model) viewInput() string {
	options := []string{
		option(m.playAudio, "play audio entries after download"),
		option(m.playlist, "write a playlist of played tracks"),
		option(m.verbose, "show per-entry details"),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.textInput.View(),
		"",
		panelStyle.Render(strings.Join(options, "\n")),
		"",
		mutedStyle.Render("entries classified by "+manifest.ParseClassifyMode(m.settings.ClassifyBy).String()),
	)
}

func (m Model) viewRunning() string {
	status := m.spinner.View() + " " + m.runState.String()
	if m.orch != nil {
		status += "  " + runIDStyle.Render(m.orch.RunID())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		status,
		"",
		m.progress.ViewAs(m.percent()),
		m.statsLine(),
		"",
		m.renderLogs(),
	)
}

func (m Model) viewSummary(title string) string {
	lines := []string{title}
	if m.orch != nil {
		lines = append(lines, runIDStyle.Render(m.orch.RunID()))
	}
	lines = append(lines, "", panelStyle.Render(m.statsLine()), "", m.renderLogs())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) failureTitle() string {
	if errors.Is(m.err, ErrCancelled) {
		return "manifest stopped"
	}
	return "manifest failed: " + m.err.Error()
}

// statsLine renders the run counters as label/value pairs.
func (m Model) statsLine() string {
	lines := fmt.Sprintf("%d", m.stats.LinesRead)
	if m.totalLines > 0 {
		lines = fmt.Sprintf("%d/%d", m.stats.LinesRead, m.totalLines)
	}

	pairs := []struct{ label, value string }{
		{"lines", lines},
		{"fetched", fmt.Sprintf("%d", m.stats.Downloaded)},
		{"played", fmt.Sprintf("%d", m.stats.Played)},
		{"skipped", fmt.Sprintf("%d", m.stats.Skipped)},
		{"size", fmt.Sprintf("%.2f MB", float64(m.stats.Bytes)/1024/1024)},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, labelStyle.Render(p.label)+" "+valueStyle.Render(p.value))
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderLogs() string {
	rendered := make([]string, 0, len(m.logs))
	for _, entry := range m.logs {
		text := entry.Message
		if entry.Line > 0 {
			text = fmt.Sprintf("%4d  %s", entry.Line, text)
		} else {
			text = "      " + text
		}
		rendered = append(rendered, levelStyles[entry.Level].Render(levelMarks[entry.Level]+" "+text))
	}
	return strings.Join(rendered, "\n")
}

func (m Model) bindings() []key.Binding {
	switch m.state {
	case StateInput:
		return []key.Binding{keys.Start, keys.ToggleAudio, keys.TogglePlaylist, keys.ToggleVerbose}
	case StateRunning:
		return []key.Binding{keys.Stop}
	default:
		return []key.Binding{keys.Again, keys.Quit}
	}
}

func option(on bool, label string) string {
	if on {
		return lipgloss.NewStyle().Foreground(good).Render("on ") + " " + label
	}
	return mutedStyle.Render("off") + " " + label
}

// Run starts the TUI application and returns the outcome of the last run
// started from it, or the program's own error.
func Run(settings *config.Settings, player *audio.Player) error {
	p := tea.NewProgram(NewModel(settings, player), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.RunErr()
	}
	return nil
}
