package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motorlane/kiosk/inventory"
	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

// activeFilter builds the catalog filter from the customer record.
func activeFilter(d session.CustomerData) inventory.Filter {
	return inventory.Filter{
		BodyStyle: d.BodyStyle,
		MaxPrice:  budgetMax(d.BudgetRange),
		Query:     d.SelectedModel,
	}
}

func vehicleChoice(v inventory.Vehicle) *session.VehicleChoice {
	return &session.VehicleChoice{
		Stock:     v.Stock,
		Make:      v.Make,
		Model:     v.Model,
		Year:      v.Year,
		BodyStyle: v.BodyStyle,
		Price:     v.Price,
	}
}

func vehicleLine(v inventory.Vehicle) string {
	name := fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
	if v.Trim != "" {
		name += " " + v.Trim
	}
	return fmt.Sprintf("%-34s %9s", name, dollars(v.Price))
}

// inventoryModel lists vehicles matching the session's active filters.
type inventoryModel struct {
	ctx     *ScreenContext
	results []inventory.Vehicle
	menu    menu
}

func newInventory(ctx *ScreenContext) tea.Model {
	results := ctx.Catalog.Search(activeFilter(ctx.Store.Data()))
	items := make([]menuItem, len(results))
	for i, v := range results {
		items[i] = menuItem{label: vehicleLine(v), hint: v.Stock}
	}
	return &inventoryModel{ctx: ctx, results: results, menu: newMenu(ctx, items)}
}

func (m *inventoryModel) Init() tea.Cmd { return nil }

func (m *inventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.menu.handle(keyMsg) {
		return m, nil
	}
	if key.Matches(keyMsg, m.ctx.Keys.Select) && len(m.results) > 0 {
		v := m.results[m.menu.selected()]
		m.ctx.Store.NavigateTo(screen.VehicleDetail, v.Stock,
			&session.Update{Vehicle: vehicleChoice(v)})
	}
	return m, nil
}

func (m *inventoryModel) View() string {
	t := m.ctx.Theme
	d := m.ctx.Store.Data()

	var filters []string
	if d.BodyStyle != "" {
		filters = append(filters, d.BodyStyle)
	}
	if d.BudgetRange != "" {
		filters = append(filters, budgetLabel(d.BudgetRange))
	}
	if d.SelectedModel != "" {
		filters = append(filters, d.SelectedModel)
	}

	header := t.Accent.Render(fmt.Sprintf(" %d vehicles on the lot", len(m.results)))
	if len(filters) > 0 {
		header += t.Muted.Render("  filtered: " + strings.Join(filters, ", "))
	}
	if len(m.results) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Muted.Render("  Nothing matches. Press esc to go back."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.menu.view())
}

// detailModel shows one vehicle, resolved from the navigation sub-route.
type detailModel struct {
	ctx     *ScreenContext
	vehicle inventory.Vehicle
	found   bool
	menu    menu
}

func newVehicleDetail(ctx *ScreenContext) tea.Model {
	stock := ctx.Store.State().SubRoute
	if stock == "" {
		if choice := ctx.Store.Data().Vehicle; choice != nil {
			stock = choice.Stock
		}
	}
	v, found := ctx.Catalog.ByStock(stock)
	items := []menuItem{
		{label: "Value a trade toward this vehicle"},
		{label: "Estimate a monthly payment"},
		{label: "Compare with another vehicle"},
		{label: "Talk to a specialist"},
	}
	return &detailModel{ctx: ctx, vehicle: v, found: found, menu: newMenu(ctx, items)}
}

func (m *detailModel) Init() tea.Cmd { return nil }

func (m *detailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.menu.handle(keyMsg) {
		return m, nil
	}
	if !key.Matches(keyMsg, m.ctx.Keys.Select) || !m.found {
		return m, nil
	}
	switch m.menu.selected() {
	case 0:
		m.ctx.Store.NavigateTo(screen.TradeIn, "", nil)
	case 1:
		m.ctx.Store.NavigateTo(screen.Payment, "",
			&session.Update{Payment: &session.PaymentEstimate{VehiclePrice: m.vehicle.Price}})
	case 2:
		m.ctx.Store.NavigateTo(screen.VehicleComparison, m.vehicle.Stock, nil)
	case 3:
		m.ctx.Store.NavigateTo(screen.Handoff, "", nil)
	}
	return m, nil
}

func (m *detailModel) View() string {
	t := m.ctx.Theme
	if !m.found {
		return t.Warning.Render(" That vehicle is no longer on the lot.")
	}
	v := m.vehicle
	title := t.Title.Render(fmt.Sprintf(" %d %s %s %s", v.Year, v.Make, v.Model, v.Trim))
	facts := t.Muted.Render(fmt.Sprintf(" %s · stock %s · %s miles",
		v.BodyStyle, v.Stock, dollars(v.Mileage)[1:]))
	price := t.Success.Render(" " + dollars(v.Price))
	return lipgloss.JoinVertical(lipgloss.Left, title, facts, price, "", m.menu.view())
}

// comparisonModel puts the vehicle from the sub-route next to a second one
// picked from the rest of the catalog.
type comparisonModel struct {
	ctx    *ScreenContext
	base   inventory.Vehicle
	found  bool
	others []inventory.Vehicle
	menu   menu
}

func newComparison(ctx *ScreenContext) tea.Model {
	stock := ctx.Store.State().SubRoute
	if stock == "" {
		if choice := ctx.Store.Data().Vehicle; choice != nil {
			stock = choice.Stock
		}
	}
	base, found := ctx.Catalog.ByStock(stock)
	var others []inventory.Vehicle
	for _, v := range ctx.Catalog.All() {
		if !strings.EqualFold(v.Stock, base.Stock) {
			others = append(others, v)
		}
	}
	items := make([]menuItem, len(others))
	for i, v := range others {
		items[i] = menuItem{label: vehicleLine(v)}
	}
	return &comparisonModel{ctx: ctx, base: base, found: found, others: others, menu: newMenu(ctx, items)}
}

func (m *comparisonModel) Init() tea.Cmd { return nil }

func (m *comparisonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.menu.handle(keyMsg) {
		return m, nil
	}
	if key.Matches(keyMsg, m.ctx.Keys.Select) && len(m.others) > 0 {
		v := m.others[m.menu.selected()]
		m.ctx.Store.NavigateTo(screen.VehicleDetail, v.Stock,
			&session.Update{Vehicle: vehicleChoice(v)})
	}
	return m, nil
}

func comparisonCard(v inventory.Vehicle) string {
	return fmt.Sprintf("%d %s %s\n%s\n%s · %s mi",
		v.Year, v.Make, v.Model, dollars(v.Price), v.BodyStyle, dollars(v.Mileage)[1:])
}

func (m *comparisonModel) View() string {
	t := m.ctx.Theme
	if !m.found {
		return t.Warning.Render(" Pick a vehicle to compare from its detail page.")
	}
	other := inventory.Vehicle{}
	if len(m.others) > 0 {
		other = m.others[m.menu.selected()]
	}
	left := comparisonCard(m.base)
	right := comparisonCard(other)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(34).Render(left),
		lipgloss.NewStyle().Width(34).Render(right),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Accent.Render(" Side by side"),
		"",
		cards,
		"",
		t.Muted.Render(" choose the second vehicle:"),
		m.menu.view(),
	)
}
