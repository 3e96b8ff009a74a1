package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/motorlane/kiosk/chat"
	"github.com/motorlane/kiosk/history"
	"github.com/motorlane/kiosk/idle"
	"github.com/motorlane/kiosk/inventory"
	"github.com/motorlane/kiosk/logging"
	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
	"github.com/motorlane/kiosk/traffic"
	"github.com/motorlane/kiosk/tui/theme"
)

// ScreenContext carries the collaborators every screen model may draw on.
// Screens receive navigation and customer-data access through the store;
// everything else is read-only.
type ScreenContext struct {
	Store     *session.Store
	Catalog   *inventory.Catalog
	Assistant chat.Assistant
	Traffic   *traffic.SQLiteStore // nil when local analytics storage is off
	Keys      KeyMap
	Theme     *theme.Theme
}

// Builder constructs the screen model for one screen identifier.
type Builder func(ctx *ScreenContext) tea.Model

// sessionEventMsg wraps a store event for the bubbletea loop.
type sessionEventMsg struct{ ev session.Event }

// Shell is the root bubbletea model: it hosts the screen registry, renders
// the active screen, forwards activity to the idle monitor, and drives the
// in-memory native history from the back/forward keys.
type Shell struct {
	ctx      *ScreenContext
	registry *screen.Registry[Builder]
	idle     *idle.Monitor
	hist     *history.Memory

	events chan session.Event

	current screen.ID
	active  tea.Model
	width   int
	height  int

	logger *logrus.Entry
}

// NewShell wires a shell around an already-connected store. The caller is
// responsible for having attached the history synchronizer and traffic
// logger in that order before the first navigation.
func NewShell(ctx *ScreenContext, registry *screen.Registry[Builder], monitor *idle.Monitor, hist *history.Memory) *Shell {
	s := &Shell{
		ctx:      ctx,
		registry: registry,
		idle:     monitor,
		hist:     hist,
		events:   make(chan session.Event, 32),
		current:  ctx.Store.CurrentScreen(),
		logger:   logging.NewLogger("shell"),
	}
	s.active = s.build(s.current)

	// Every store mutation is activity and a potential screen change. The
	// channel send never blocks the mutating turn; the shell re-reads the
	// store on receipt, so a dropped event under burst is harmless.
	ctx.Store.Observe(func(ev session.Event) {
		monitor.Touch()
		select {
		case s.events <- ev:
		default:
		}
	})

	return s
}

// DefaultRegistry returns the full journey registry.
func DefaultRegistry() *screen.Registry[Builder] {
	r := screen.NewRegistry[Builder]()
	r.Register(screen.Welcome, newWelcome)
	r.Register(screen.Inventory, newInventory)
	r.Register(screen.VehicleDetail, newVehicleDetail)
	r.Register(screen.TradeIn, newTradeIn)
	r.Register(screen.Payment, newPayment)
	r.Register(screen.Handoff, newHandoff)
	r.Register(screen.AIChat, newAIChat)
	r.Register(screen.StockLookup, newStockLookup)
	r.Register(screen.ModelBudget, newModelBudget)
	r.Register(screen.GuidedQuiz, newGuidedQuiz)
	r.Register(screen.VehicleComparison, newComparison)
	r.Register(screen.TrafficLog, newTrafficLog)
	r.Register(screen.SalesDashboard, newSalesDashboard)
	return r
}

func (s *Shell) build(id screen.ID) tea.Model {
	builder, ok := s.registry.Lookup(id)
	if !ok {
		s.logger.WithField("screen", id).Warn("no renderable unit registered")
		return newPlaceholder(s.ctx, id)
	}
	return builder(s.ctx)
}

func (s *Shell) waitForEvent() tea.Msg {
	return sessionEventMsg{ev: <-s.events}
}

// Init implements tea.Model.
func (s *Shell) Init() tea.Cmd {
	return tea.Batch(s.waitForEvent, s.active.Init())
}

// Update implements tea.Model.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEventMsg:
		cmds := []tea.Cmd{s.waitForEvent}
		// Re-read the store rather than trusting the event: a burst may
		// have dropped intermediate events, and only the latest screen
		// matters.
		st := s.ctx.Store.State()
		if st.Current != s.current {
			s.current = st.Current
			s.active = s.build(st.Current)
			if s.width > 0 {
				s.active, _ = s.active.Update(tea.WindowSizeMsg{Width: s.width, Height: s.height})
			}
			cmds = append(cmds, s.active.Init())
		}
		return s, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		var cmd tea.Cmd
		s.active, cmd = s.active.Update(msg)
		return s, cmd

	case tea.MouseMsg:
		s.idle.Touch()
		var cmd tea.Cmd
		s.active, cmd = s.active.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		s.idle.Touch()
		keys := s.ctx.Keys
		switch {
		case key.Matches(msg, keys.Quit):
			return s, tea.Quit

		case key.Matches(msg, keys.Home):
			s.ctx.Store.ResetJourney()
			return s, nil

		case key.Matches(msg, keys.Back):
			if captured, cmd := s.delegateBack(msg); captured {
				return s, cmd
			}
			s.hist.Back()
			return s, nil

		case key.Matches(msg, keys.Forward):
			s.hist.Forward()
			return s, nil

		case key.Matches(msg, keys.TrafficLog):
			s.ctx.Store.NavigateTo(screen.TrafficLog, "", nil)
			return s, nil

		case key.Matches(msg, keys.Dashboard):
			s.ctx.Store.NavigateTo(screen.SalesDashboard, "", nil)
			return s, nil
		}

		var cmd tea.Cmd
		s.active, cmd = s.active.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.active, cmd = s.active.Update(msg)
	return s, cmd
}

// delegateBack lets a screen with its own editing state (an open text
// input) consume the back key before it becomes a history navigation.
func (s *Shell) delegateBack(msg tea.KeyMsg) (bool, tea.Cmd) {
	if capturer, ok := s.active.(backCapturer); ok && capturer.capturesBack() {
		var cmd tea.Cmd
		s.active, cmd = s.active.Update(msg)
		return true, cmd
	}
	return false, nil
}

// backCapturer is implemented by screen models that sometimes need the
// back key for themselves.
type backCapturer interface {
	capturesBack() bool
}

// View implements tea.Model.
func (s *Shell) View() string {
	t := s.ctx.Theme

	location := s.current.Fragment()
	if _, frag, ok := s.hist.Current(); ok {
		location = frag
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		t.Title.Render(" Motorlane Showroom "),
		t.Muted.Render(" "+location),
	)

	footer := t.Help.Render(" esc back · ctrl+l start over")
	if s.ctx.Store.State().Transitioning {
		footer = t.Muted.Render(" …")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		s.active.View(),
		"",
		footer,
	)
}
