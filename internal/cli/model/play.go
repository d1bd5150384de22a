// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/dockyard/internal/app/dock"
	"github.com/bnema/dockyard/internal/cli/render"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
	"github.com/bnema/dockyard/internal/ui/interaction"
)

const (
	footerLines      = 2
	doubleClickDelay = 400 * time.Millisecond
)

// PlayModel drives a layout engine from terminal mouse and key input.
type PlayModel struct {
	help   help.Model
	keys   playKeyMap
	rename textinput.Model

	width  int
	height int
	effect interaction.Effect
	status string
	opened int

	lastPress    time.Time
	lastPressPos image.Point
	now          func() time.Time

	ctx          context.Context
	engine       *dock.Engine
	contentTypes []string
	theme        *styles.Theme
	panes        *render.Styles
}

type playKeyMap struct {
	Open     key.Binding
	Close    key.Binding
	Maximize key.Binding
	Float    key.Binding
	Split    key.Binding
	Rename   key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k playKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Close, k.Split, k.Maximize, k.Rename, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k playKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Close, k.Rename},
		{k.Split, k.Float, k.Maximize},
		{k.Cancel, k.Help, k.Quit},
	}
}

func defaultPlayKeyMap() playKeyMap {
	return playKeyMap{
		Open:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new tab")),
		Close:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close tab")),
		Maximize: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maximize")),
		Float:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "float")),
		Split:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split right")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// PlayModelConfig holds the dependencies of the play model.
type PlayModelConfig struct {
	Engine *dock.Engine
	// ContentTypes are cycled through when opening tabs.
	ContentTypes []string
}

// NewPlayModel creates a play model. The engine must measure in cells.
func NewPlayModel(ctx context.Context, theme *styles.Theme, cfg PlayModelConfig) PlayModel {
	types := cfg.ContentTypes
	if len(types) == 0 {
		types = []string{"text"}
	}
	ti := textinput.New()
	ti.Prompt = "rename: "
	ti.CharLimit = 64

	m := PlayModel{
		help:         help.New(),
		keys:         defaultPlayKeyMap(),
		rename:       ti,
		width:        80,
		height:       24,
		now:          time.Now,
		ctx:          ctx,
		engine:       cfg.Engine,
		contentTypes: types,
		theme:        theme,
		panes:        theme.Panes(),
	}
	m.resize(m.width, m.height)
	return m
}

// Init implements tea.Model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.renaming() {
			return m.handleRenameKey(msg)
		}
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		if m.renaming() {
			return m, nil
		}
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *PlayModel) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.engine.SetBounds(image.Rect(0, 0, w, max(h-footerLines, 1)))
}

func (m PlayModel) renaming() bool {
	return m.engine.State().Mode == interaction.ModeRenamingTab
}

func (m PlayModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := image.Pt(msg.X, msg.Y)
	var ev interaction.Event
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		now := m.now()
		double := now.Sub(m.lastPress) < doubleClickDelay && p == m.lastPressPos
		m.lastPress, m.lastPressPos = now, p
		if double {
			m.lastPress = time.Time{}
		}
		ev = interaction.PointerDown(p, double)
		ev.Shift = msg.Shift
	case tea.MouseActionMotion:
		if m.engine.State().Idle() {
			return m, nil
		}
		ev = interaction.PointerMove(p)
	case tea.MouseActionRelease:
		ev = interaction.PointerUp(p)
	default:
		return m, nil
	}
	m.handle(ev)
	return m, nil
}

// handle feeds ev to the engine and reports the outcome in the status line.
func (m *PlayModel) handle(ev interaction.Event) {
	eff, err := m.engine.HandleEvent(m.ctx, ev)
	m.effect = eff
	switch {
	case err != nil:
		m.status = err.Error()
	case eff.Command == nil:
	case eff.Command.Kind == interaction.CommandShowOverflow:
		m.status = "hidden: " + m.overflowNames(eff.Command.TabsetID)
	default:
		m.status = eff.Command.Kind.String()
	}
}

func (m PlayModel) overflowNames(containerID entity.NodeID) string {
	bar := m.engine.Frame().TabBars[containerID]
	if bar == nil {
		return ""
	}
	names := make([]string, 0, len(bar.Overflow))
	for _, id := range bar.Overflow {
		if tab, ok := m.engine.Layout().Node(id); ok {
			names = append(names, render.TabLabel(tab))
		}
	}
	return strings.Join(names, ", ")
}

func (m PlayModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.handle(interaction.Cancel())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Open):
		m.openTab()
	case key.Matches(msg, m.keys.Close):
		if tab, ok := m.selectedTab(); ok {
			m.report("closed", m.engine.CloseTab(m.ctx, tab))
		}
	case key.Matches(msg, m.keys.Maximize):
		if ts, ok := m.engine.Layout().Node(m.engine.ActiveTabset()); ok {
			m.report("maximize toggled", m.engine.SetMaximized(m.ctx, ts.ID, !ts.Maximized))
		}
	case key.Matches(msg, m.keys.Float):
		m.floatActive()
	case key.Matches(msg, m.keys.Split):
		if tab, ok := m.selectedTab(); ok {
			m.report("split", m.engine.MoveTab(m.ctx, tab, m.engine.ActiveTabset(), entity.EdgeRight, 0))
		}
	case key.Matches(msg, m.keys.Rename):
		return m.startRename()
	}
	return m, nil
}

func (m *PlayModel) report(done string, err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = done
}

func (m PlayModel) selectedTab() (entity.NodeID, bool) {
	ts, ok := m.engine.Layout().Node(m.engine.ActiveTabset())
	if !ok {
		return "", false
	}
	return ts.SelectedChild()
}

func (m *PlayModel) openTab() {
	contentType := m.contentTypes[m.opened%len(m.contentTypes)]
	m.opened++
	_, err := m.engine.OpenTab(m.ctx, "", entity.TabSpec{
		Name:       fmt.Sprintf("%s %d", contentType, m.opened),
		Content:    entity.ContentRef{Type: contentType},
		Closable:   true,
		Renamable:  true,
		EnableDrag: true,
	}, -1)
	m.report("opened "+contentType, err)
}

func (m *PlayModel) floatActive() {
	id := m.engine.ActiveTabset()
	frame := m.engine.Frame()
	b := frame.Bounds
	w, h := max(b.Dx()/2, 10), max(b.Dy()/2, 4)
	x, y := b.Min.X+(b.Dx()-w)/2, b.Min.Y+(b.Dy()-h)/2
	m.report("floated", m.engine.FloatTabset(m.ctx, id, image.Rect(x, y, x+w, y+h)))
}

func (m PlayModel) startRename() (tea.Model, tea.Cmd) {
	tabID, ok := m.selectedTab()
	if !ok {
		return m, nil
	}
	m.handle(interaction.RenameStart(tabID))
	if !m.renaming() {
		return m, nil
	}
	tab, _ := m.engine.Layout().Node(tabID)
	m.rename.SetValue(tab.Name)
	m.rename.CursorEnd()
	return m, m.rename.Focus()
}

func (m PlayModel) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.rename.Blur()
		m.handle(interaction.RenameConfirm(m.rename.Value()))
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.rename.Blur()
		m.handle(interaction.RenameCancel())
		m.status = "rename canceled"
		return m, nil
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	m.handle(interaction.RenameEdit(m.rename.Value()))
	return m, cmd
}

// View implements tea.Model.
func (m PlayModel) View() string {
	log := logging.FromContext(m.ctx)
	frame := m.engine.Frame()
	canvas := render.Frame(frame, m.engine.Layout(), render.Options{
		Styles:  m.panes,
		Active:  m.engine.ActiveTabset(),
		Outline: m.effect.Outline,
		Preview: m.effect.Preview,
	})
	log.Trace().Uint64("version", m.engine.Version()).Msg("frame drawn")

	var b strings.Builder
	b.WriteString(canvas.String(m.panes))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m PlayModel) statusLine() string {
	if m.renaming() {
		return m.rename.View()
	}
	line := fmt.Sprintf(" %s v%d  %s", styles.IconLayout, m.engine.Version(), m.engine.State().Mode)
	if m.status != "" {
		line += "  " + m.status
	}
	return m.theme.StatusBar.Width(m.width).Render(line)
}
