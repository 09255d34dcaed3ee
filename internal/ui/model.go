package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/ucpcal/ucpcal/internal/calendar"
	"github.com/ucpcal/ucpcal/internal/codec"
	"github.com/ucpcal/ucpcal/internal/config"
	"github.com/ucpcal/ucpcal/internal/parser"
)

type ViewMode int

const (
	ViewEvents ViewMode = iota
	ViewForm
	ViewConfirm
	ViewHelp
)

// messageTimeout is how long a status message stays visible.
const messageTimeout = 4 * time.Second

// Watcher is the part of watch.FileWatcher the model needs to follow the
// open file.
type Watcher interface {
	AddFile(path string) error
	RemoveFile(path string) error
}

type Model struct {
	// Core components
	config  *config.Config
	list    *calendar.List
	parser  *parser.TimeParser
	watcher Watcher
	log     zerolog.Logger
	now     func() time.Time

	// File state
	path    string
	savedAt time.Time // mod time of the file as last written by us

	// View state
	mode   ViewMode
	offset int // first visible summary line

	// Dialog state
	form    *form
	confirm *confirmation

	// UI state
	width      int
	height     int
	message    string
	messageErr bool
	messageSeq int

	styles Styles
}

type Styles struct {
	Header  lipgloss.Style
	Text    lipgloss.Style
	Help    lipgloss.Style
	Message lipgloss.Style
	Input   lipgloss.Style
	Error   lipgloss.Style
}

// NewModel returns a model that displays and edits list. The model does not
// load anything; callers use Load for the startup file.
func NewModel(cfg *config.Config, list *calendar.List, log zerolog.Logger) *Model {
	return &Model{
		config: cfg,
		list:   list,
		parser: parser.NewTimeParser(),
		log:    log,
		now:    time.Now,
		mode:   ViewEvents,
		styles: NewStyles(cfg.Colors),
	}
}

func NewStyles(colors map[string]string) Styles {
	color := func(name, fallback string) lipgloss.Color {
		if c, ok := colors[name]; ok && c != "" {
			return lipgloss.Color(c)
		}
		return lipgloss.Color(fallback)
	}

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(color("header", "220")).
			Bold(true).
			Underline(true),
		Text: lipgloss.NewStyle().
			Foreground(color("text", "252")),
		Help: lipgloss.NewStyle().
			Foreground(color("help", "241")),
		Message: lipgloss.NewStyle().
			Foreground(color("message", "220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Input: lipgloss.NewStyle().
			Foreground(color("input", "39")),
		Error: lipgloss.NewStyle().
			Foreground(color("error", "196")).
			Bold(true),
	}
}

// SetWatcher makes the model keep w pointed at the open file.
func (m *Model) SetWatcher(w Watcher) {
	m.watcher = w
	if m.path != "" {
		m.follow("", m.path)
	}
}

// Path returns the file the list was last loaded from or saved to.
func (m *Model) Path() string {
	return m.path
}

func (m *Model) Init() tea.Cmd {
	return m.messageCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form.setWidth(msg.Width)
		}
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case FileChangedMsg:
		return m, m.handleFileChanged(msg)

	case messageTimeoutMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
			m.messageErr = false
		}
		return m, nil
	}

	if m.mode == ViewForm && m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.mode {
	case ViewHelp:
		return m.viewHelp()
	case ViewForm:
		return m.viewForm()
	case ViewConfirm:
		return m.viewConfirm()
	default:
		return m.viewEvents()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ViewForm:
		return m, m.handleFormKeys(msg)
	case ViewConfirm:
		return m, m.handleConfirmKeys(msg)
	case ViewHelp:
		// any key returns
		m.mode = ViewEvents
		return m, nil
	}

	switch m.config.ActionFor(msg.String()) {
	case config.ActionQuit:
		return m, tea.Quit
	case config.ActionHelp:
		m.mode = ViewHelp
	case config.ActionScrollUp:
		m.offset--
		m.clampOffset()
	case config.ActionScrollDown:
		m.offset++
		m.clampOffset()
	case config.ActionLoad:
		m.openLoadForm()
	case config.ActionSave:
		m.openSaveForm()
	case config.ActionAdd:
		m.openAddForm()
	case config.ActionEdit:
		m.openEditPrompt()
	case config.ActionDelete:
		m.openDeletePrompt()
	default:
		return m, nil
	}

	if m.form != nil {
		return m, m.form.focusCmd()
	}
	return m, m.messageCmd()
}

// Load replaces the list with the contents of path and makes path the open
// file. A missing file leaves an empty list, so a new calendar can be started
// by naming it.
func (m *Model) Load(path string) {
	read, err := codec.Load(path, m.list)
	n := m.list.Len()
	if dropped := read - n; dropped > 0 {
		m.log.Debug().Str("file", path).Int("dropped", dropped).Msg("duplicate event names dropped")
	}
	m.offset = 0
	m.follow(m.path, path)
	m.path = path
	m.savedAt = time.Time{}

	switch {
	case err == nil:
		m.log.Info().Str("file", path).Int("events", n).Msg("calendar loaded")
		m.showMessage(fmt.Sprintf("Loaded %d %s from %s", n, events(n), path))
	case errors.Is(err, codec.ErrTruncated):
		m.log.Warn().Err(err).Str("file", path).Int("events", n).Msg("calendar ends mid-record")
		m.showError(fmt.Sprintf("Loaded %d %s; the last record in %s is incomplete", n, events(n), path))
	case errors.Is(err, os.ErrNotExist):
		m.log.Info().Str("file", path).Msg("calendar file does not exist")
		m.showMessage(fmt.Sprintf("New calendar %s", path))
	default:
		m.log.Error().Err(err).Str("file", path).Msg("failed to load calendar")
		m.showError(err.Error())
	}
}

// Save writes the list to path and makes path the open file.
func (m *Model) Save(path string) {
	if err := codec.Save(path, m.list); err != nil {
		m.log.Error().Err(err).Str("file", path).Msg("failed to save calendar")
		m.showError(err.Error())
		return
	}

	m.follow(m.path, path)
	m.path = path
	if info, err := os.Stat(path); err == nil {
		m.savedAt = info.ModTime()
	}
	m.log.Info().Str("file", path).Int("events", m.list.Len()).Msg("calendar saved")
	m.showMessage(fmt.Sprintf("Saved %d %s to %s", m.list.Len(), events(m.list.Len()), path))
}

// follow moves the watcher from the old file to the new one.
func (m *Model) follow(oldPath, newPath string) {
	if m.watcher == nil || !m.config.AutoReload || oldPath == newPath {
		return
	}
	if oldPath != "" {
		if err := m.watcher.RemoveFile(oldPath); err != nil {
			m.log.Warn().Err(err).Str("file", oldPath).Msg("failed to stop watching")
		}
	}
	if err := m.watcher.AddFile(newPath); err != nil {
		m.log.Warn().Err(err).Str("file", newPath).Msg("failed to watch")
	}
}

func (m *Model) handleFileChanged(msg FileChangedMsg) tea.Cmd {
	if !m.config.AutoReload || m.path == "" || !samePath(msg.Path, m.path) {
		return nil
	}

	// our own save
	if info, err := os.Stat(m.path); err == nil && !m.savedAt.IsZero() && info.ModTime().Equal(m.savedAt) {
		return nil
	}

	m.log.Debug().Str("file", m.path).Msg("reloading changed calendar")
	m.Load(m.path)
	return m.messageCmd()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

func (m *Model) showMessage(msg string) {
	m.message = msg
	m.messageErr = false
	m.messageSeq++
}

func (m *Model) showError(msg string) {
	m.message = msg
	m.messageErr = true
	m.messageSeq++
}

// messageCmd clears the current message after a while unless it has been
// replaced in the meantime.
func (m *Model) messageCmd() tea.Cmd {
	if m.message == "" {
		return nil
	}
	seq := m.messageSeq
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return messageTimeoutMsg{seq: seq}
	})
}

func events(n int) string {
	if n == 1 {
		return "event"
	}
	return "events"
}

// FileChangedMsg reports that a watched file was modified on disk.
type FileChangedMsg struct {
	Path string
}

type messageTimeoutMsg struct {
	seq int
}
