package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

// welcomeModel is the attract screen: shortcut tiles into the journey. The
// body-style tiles navigate with a filter-only extra so the inventory screen
// opens pre-filtered.
type welcomeModel struct {
	ctx  *ScreenContext
	menu menu
}

type welcomeTile struct {
	item     menuItem
	target   screen.ID
	subRoute string
	extra    *session.Update
}

func welcomeTiles() []welcomeTile {
	return []welcomeTile{
		{item: menuItem{label: "Browse all inventory"}, target: screen.Inventory},
		{item: menuItem{label: "Shop SUVs", hint: "pre-filtered"}, target: screen.Inventory,
			extra: &session.Update{BodyStyle: "SUV"}},
		{item: menuItem{label: "Shop Trucks", hint: "pre-filtered"}, target: screen.Inventory,
			extra: &session.Update{BodyStyle: "Truck"}},
		{item: menuItem{label: "Find by model and budget"}, target: screen.ModelBudget, subRoute: "model"},
		{item: menuItem{label: "Look up a stock number"}, target: screen.StockLookup},
		{item: menuItem{label: "Help me choose", hint: "short quiz"}, target: screen.GuidedQuiz},
		{item: menuItem{label: "Value my trade-in"}, target: screen.TradeIn},
		{item: menuItem{label: "Estimate a payment"}, target: screen.Payment},
		{item: menuItem{label: "Ask the assistant"}, target: screen.AIChat},
		{item: menuItem{label: "Talk to a specialist"}, target: screen.Handoff},
	}
}

func newWelcome(ctx *ScreenContext) tea.Model {
	tiles := welcomeTiles()
	items := make([]menuItem, len(tiles))
	for i, t := range tiles {
		items[i] = t.item
	}
	return &welcomeModel{ctx: ctx, menu: newMenu(ctx, items)}
}

func (m *welcomeModel) Init() tea.Cmd { return nil }

func (m *welcomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.menu.handle(keyMsg) {
		return m, nil
	}
	if key.Matches(keyMsg, m.ctx.Keys.Select) {
		tile := welcomeTiles()[m.menu.selected()]
		m.ctx.Store.NavigateTo(tile.target, tile.subRoute, tile.extra)
	}
	return m, nil
}

func (m *welcomeModel) View() string {
	t := m.ctx.Theme
	greeting := t.Accent.Render(" Welcome! What brings you in today?")
	if name := m.ctx.Store.Data().CustomerName; name != "" {
		greeting = t.Accent.Render(" Welcome back, " + name + "!")
	}
	return lipgloss.JoinVertical(lipgloss.Left, greeting, "", m.menu.view())
}
