package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/vcode/core"
	"github.com/jask/vcode/internal/config"
	"github.com/jask/vcode/internal/journal"
	"github.com/jask/vcode/screens"
	"github.com/jask/vcode/widgets"
)

// Recorder is the journal surface the app writes to.
type Recorder interface {
	Record(ctx context.Context, kind journal.Kind, value string, masked bool) (journal.Entry, error)
}

// App hosts the code screen with a status bar and key help footer.
type App struct {
	ctx       context.Context
	cfg       config.Config
	log       *zap.Logger
	journal   Recorder
	keys      *core.KeyRegistry
	screen    *screens.CodeScreen
	width     int
	height    int
	status    string
	statusErr bool
	submitted string
	done      bool
	quitting  bool
}

type recordedMsg struct {
	entry journal.Entry
}

type errMsg struct{ error }

// New builds the app. journal may be nil to disable recording; log may be nil.
func New(ctx context.Context, cfg config.Config, opts core.Options, rec Recorder, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	keys := core.NewKeyRegistry(core.ApplyActionKeybindings(core.DefaultKeyBindings(), cfg.Keys))
	title := strings.TrimSpace(cfg.UI.Title)
	if title == "" {
		title = "Verification code"
	}
	return &App{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		journal: rec,
		keys:    keys,
		screen:  screens.NewCodeScreen(title, opts, keys),
	}
}

// Submitted returns the code the user confirmed, if any.
func (a *App) Submitted() (string, bool) {
	return a.submitted, a.done
}

func (a *App) Screen() *screens.CodeScreen { return a.screen }

func (a *App) Init() tea.Cmd {
	return a.screen.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		if a.keys.IsAction(m, core.ActionQuit, a.screen.Scope()) {
			a.quitting = true
			return a, tea.Quit
		}
	case core.ChangedMsg:
		a.log.Debug("code changed", zap.Int("length", len([]rune(m.Value))))
		a.status = fmt.Sprintf("%d of %d", len([]rune(m.Value)), a.screen.Controller().Length())
		a.statusErr = false
		return a, nil
	case core.RejectedMsg:
		a.log.Debug("intent rejected", zap.Stringer("intent", m.Intent), zap.Int("cell", m.Index))
		return a, nil
	case core.FocusMovedMsg:
		return a, nil
	case core.CompletedMsg:
		a.log.Info("code complete", zap.Int("length", len([]rune(m.Value))))
		a.status = "Complete"
		a.statusErr = false
		cmd := a.recordCmd(journal.KindComplete, m.Value)
		if a.cfg.UI.ExitOnComplete {
			a.submitted, a.done = m.Value, true
			return a, tea.Sequence(cmd, tea.Quit)
		}
		return a, cmd
	case core.SubmittedMsg:
		a.log.Info("code submitted", zap.Int("length", len([]rune(m.Value))))
		a.submitted, a.done = m.Value, true
		return a, tea.Sequence(a.recordCmd(journal.KindSubmit, m.Value), tea.Quit)
	case core.OptionsMsg:
		a.log.Info("options updated", zap.Int("length", m.Options.Length))
		return a, tea.Batch(a.screen.SetOptions(m.Options), core.StatusCmd("Options reloaded"))
	case core.StatusMsg:
		a.status, a.statusErr = m.Text, m.IsErr
		return a, nil
	case recordedMsg:
		a.log.Debug("journal entry written", zap.String("id", m.entry.ID), zap.String("kind", string(m.entry.Kind)))
		return a, nil
	case errMsg:
		a.log.Warn("journal write failed", zap.Error(m.error))
		a.status, a.statusErr = "journal: "+m.Error(), true
		return a, nil
	}
	_, cmd, done := a.screen.Update(msg)
	if done {
		a.log.Debug("screen finished", zap.String("scope", a.screen.Scope()))
	}
	return a, cmd
}

func (a *App) recordCmd(kind journal.Kind, value string) tea.Cmd {
	if a.journal == nil {
		return nil
	}
	masked := a.screen.Controller().Options().Password
	return func() tea.Msg {
		e, err := a.journal.Record(a.ctx, kind, value, masked)
		if err != nil {
			return errMsg{err}
		}
		return recordedMsg{entry: e}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	width, height := max(1, a.width), max(1, a.height)
	status := widgets.RenderStatusBar(a.status, a.statusErr, width)
	footer := widgets.RenderFooter(a.helpBindings(), width)
	bodyHeight := max(0, height-lipgloss.Height(status)-lipgloss.Height(footer))
	body := a.screen.View(width, bodyHeight)
	body = fitHeight(body, bodyHeight)
	return strings.Join([]string{body, status, footer}, "\n")
}

func (a *App) helpBindings() []key.Binding {
	bindings := a.keys.BindingsForScope(a.screen.Scope())
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.Binding())
	}
	return out
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
