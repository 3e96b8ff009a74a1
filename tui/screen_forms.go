package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 28
	ti.Focus()
	return ti
}

// tradeInModel walks the visitor through describing their current vehicle,
// then stores a rough estimate on the customer record.
type tradeInModel struct {
	ctx   *ScreenContext
	stage int // 0 make, 1 model, 2 year, 3 mileage, 4 condition, 5 done
	input textinput.Model
	menu  menu

	details session.TradeInDetails
	errMsg  string
}

var tradeInPrompts = []struct {
	prompt      string
	placeholder string
}{
	{"What make is your current vehicle?", "e.g. Jeep"},
	{"And the model?", "e.g. Wrangler"},
	{"Model year?", "e.g. 2019"},
	{"Roughly how many miles on it?", "e.g. 48000"},
}

var tradeInConditions = []string{"Excellent", "Good", "Fair", "Rough"}

func newTradeIn(ctx *ScreenContext) tea.Model {
	items := make([]menuItem, len(tradeInConditions))
	for i, c := range tradeInConditions {
		items[i] = menuItem{label: c}
	}
	return &tradeInModel{
		ctx:   ctx,
		input: newInput(tradeInPrompts[0].placeholder, 40),
		menu:  newMenu(ctx, items),
	}
}

func (m *tradeInModel) Init() tea.Cmd { return textinput.Blink }

// capturesBack keeps esc from leaving the screen while a field holds text.
func (m *tradeInModel) capturesBack() bool {
	return m.stage < 4 && m.input.Value() != ""
}

func (m *tradeInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch m.stage {
	case 0, 1, 2, 3:
		if key.Matches(keyMsg, m.ctx.Keys.Back) {
			m.input.SetValue("")
			return m, nil
		}
		if key.Matches(keyMsg, m.ctx.Keys.Select) {
			return m, m.submitField()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case 4:
		if m.menu.handle(keyMsg) {
			return m, nil
		}
		if key.Matches(keyMsg, m.ctx.Keys.Select) {
			m.details.Condition = tradeInConditions[m.menu.selected()]
			m.details.Estimate = tradeInEstimate(m.details)
			m.stage = 5
			m.ctx.Store.UpdateCustomerData(&session.Update{TradeIn: &m.details})
		}
		return m, nil

	default:
		if key.Matches(keyMsg, m.ctx.Keys.Select) {
			m.ctx.Store.NavigateTo(screen.Payment, "", nil)
		}
		return m, nil
	}
}

func (m *tradeInModel) submitField() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return nil
	}
	m.errMsg = ""
	switch m.stage {
	case 0:
		m.details.Make = value
	case 1:
		m.details.Model = value
	case 2:
		year, err := strconv.Atoi(value)
		if err != nil || year < 1980 || year > time.Now().Year()+1 {
			m.errMsg = "That doesn't look like a model year."
			return nil
		}
		m.details.Year = year
	case 3:
		miles, err := strconv.Atoi(value)
		if err != nil || miles < 0 {
			m.errMsg = "Please enter mileage as a number."
			return nil
		}
		m.details.Mileage = miles
	}
	m.stage++
	if m.stage < 4 {
		m.input = newInput(tradeInPrompts[m.stage].placeholder, 40)
		return textinput.Blink
	}
	return nil
}

// tradeInEstimate is a deliberately rough placeholder figure. The handoff
// screen tells the visitor an appraiser confirms the real number.
func tradeInEstimate(d session.TradeInDetails) int {
	base := 22_000
	age := time.Now().Year() - d.Year
	if age < 0 {
		age = 0
	}
	value := base - age*1_500 - d.Mileage/20
	switch d.Condition {
	case "Excellent":
		value += 1_500
	case "Fair":
		value -= 1_500
	case "Rough":
		value -= 4_000
	}
	if value < 500 {
		value = 500
	}
	return value
}

func (m *tradeInModel) View() string {
	t := m.ctx.Theme
	switch {
	case m.stage < 4:
		lines := []string{
			t.Accent.Render(" " + tradeInPrompts[m.stage].prompt),
			"",
			" " + m.input.View(),
		}
		if m.errMsg != "" {
			lines = append(lines, "", t.Warning.Render(" "+m.errMsg))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	case m.stage == 4:
		return lipgloss.JoinVertical(lipgloss.Left,
			t.Accent.Render(" How would you rate its condition?"), "", m.menu.view())
	default:
		d := m.details
		return lipgloss.JoinVertical(lipgloss.Left,
			t.Accent.Render(" Your trade-in"),
			fmt.Sprintf("  %d %s %s · %s miles · %s",
				d.Year, d.Make, d.Model, dollars(d.Mileage)[1:], d.Condition),
			"",
			t.Success.Render("  Estimated value: "+dollars(d.Estimate)),
			t.Muted.Render("  An appraiser confirms the final number."),
			"",
			t.Help.Render("  enter: estimate a payment with this trade"),
		)
	}
}

// Fixed APR used for kiosk estimates, in basis points.
const estimateAPRBasis = 699

var paymentTerms = []int{36, 48, 60, 72}

// paymentModel estimates a monthly payment from the selected vehicle, the
// trade-in estimate, and a down payment the visitor types in.
type paymentModel struct {
	ctx      *ScreenContext
	input    textinput.Model
	stage    int // 0 down payment, 1 term, 2 result
	estimate session.PaymentEstimate
	menu     menu
	errMsg   string
}

func newPayment(ctx *ScreenContext) tea.Model {
	d := ctx.Store.Data()
	est := session.PaymentEstimate{}
	if d.Payment != nil {
		est = *d.Payment
	}
	if est.VehiclePrice == 0 && d.Vehicle != nil {
		est.VehiclePrice = d.Vehicle.Price
	}
	items := make([]menuItem, len(paymentTerms))
	for i, term := range paymentTerms {
		items[i] = menuItem{label: fmt.Sprintf("%d months", term)}
	}
	return &paymentModel{
		ctx:      ctx,
		input:    newInput("e.g. 3000", 9),
		estimate: est,
		menu:     newMenu(ctx, items),
	}
}

func (m *paymentModel) Init() tea.Cmd { return textinput.Blink }

func (m *paymentModel) capturesBack() bool {
	return m.stage == 0 && m.input.Value() != ""
}

func (m *paymentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch m.stage {
	case 0:
		if key.Matches(keyMsg, m.ctx.Keys.Back) {
			m.input.SetValue("")
			return m, nil
		}
		if key.Matches(keyMsg, m.ctx.Keys.Select) {
			value := strings.TrimSpace(m.input.Value())
			down := 0
			if value != "" {
				var err error
				down, err = strconv.Atoi(value)
				if err != nil || down < 0 {
					m.errMsg = "Please enter the down payment as a number."
					return m, nil
				}
			}
			m.estimate.DownPayment = down
			m.errMsg = ""
			m.stage = 1
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case 1:
		if m.menu.handle(keyMsg) {
			return m, nil
		}
		if key.Matches(keyMsg, m.ctx.Keys.Select) {
			m.estimate.TermMonths = paymentTerms[m.menu.selected()]
			m.estimate.APRBasis = estimateAPRBasis
			m.estimate.Monthly = monthlyPayment(m.estimate, m.tradeCredit())
			m.stage = 2
			m.ctx.Store.UpdateCustomerData(&session.Update{Payment: &m.estimate})
		}
		return m, nil

	default:
		if key.Matches(keyMsg, m.ctx.Keys.Select) {
			m.ctx.Store.NavigateTo(screen.Handoff, "", nil)
		}
		return m, nil
	}
}

func (m *paymentModel) tradeCredit() int {
	if ti := m.ctx.Store.Data().TradeIn; ti != nil {
		return ti.Estimate
	}
	return 0
}

// monthlyPayment computes a standard amortized payment in whole dollars.
func monthlyPayment(e session.PaymentEstimate, tradeCredit int) int {
	principal := e.VehiclePrice - e.DownPayment - tradeCredit
	if principal <= 0 || e.TermMonths <= 0 {
		return 0
	}
	monthlyRate := float64(e.APRBasis) / 10_000 / 12
	if monthlyRate == 0 {
		return principal / e.TermMonths
	}
	factor := 1.0
	for i := 0; i < e.TermMonths; i++ {
		factor *= 1 + monthlyRate
	}
	payment := float64(principal) * monthlyRate * factor / (factor - 1)
	return int(payment + 0.5)
}

func (m *paymentModel) View() string {
	t := m.ctx.Theme
	price := "no vehicle selected yet"
	if m.estimate.VehiclePrice > 0 {
		price = dollars(m.estimate.VehiclePrice)
	}
	header := t.Accent.Render(" Payment estimate") + t.Muted.Render("  vehicle: "+price)

	switch m.stage {
	case 0:
		lines := []string{header, "",
			" How much would you like to put down?", "",
			" " + m.input.View()}
		if m.errMsg != "" {
			lines = append(lines, "", t.Warning.Render(" "+m.errMsg))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	case 1:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			" Over how many months?", "", m.menu.view())
	default:
		e := m.estimate
		lines := []string{
			header, "",
			fmt.Sprintf("  Down payment   %s", dollars(e.DownPayment)),
		}
		if credit := m.tradeCredit(); credit > 0 {
			lines = append(lines, fmt.Sprintf("  Trade credit   %s", dollars(credit)))
		}
		lines = append(lines,
			fmt.Sprintf("  Term           %d months", e.TermMonths),
			fmt.Sprintf("  Rate           %.2f%% APR", float64(e.APRBasis)/100),
			"",
			t.Success.Render(fmt.Sprintf("  Estimated payment: %s/mo", dollars(e.Monthly))),
			t.Muted.Render("  Subject to credit approval."),
			"",
			t.Help.Render("  enter: talk to a specialist"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
}

// handoffModel collects the visitor's name and signals the sales floor.
type handoffModel struct {
	ctx   *ScreenContext
	input textinput.Model
	done  bool
}

func newHandoff(ctx *ScreenContext) tea.Model {
	m := &handoffModel{ctx: ctx, input: newInput("your first name", 40)}
	if name := ctx.Store.Data().CustomerName; name != "" {
		m.input.SetValue(name)
	}
	return m
}

func (m *handoffModel) Init() tea.Cmd { return textinput.Blink }

func (m *handoffModel) capturesBack() bool {
	return !m.done && m.input.Value() != ""
}

func (m *handoffModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.done {
		return m, nil
	}
	if key.Matches(keyMsg, m.ctx.Keys.Back) {
		m.input.SetValue("")
		return m, nil
	}
	if key.Matches(keyMsg, m.ctx.Keys.Select) {
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.ctx.Store.UpdateCustomerData(&session.Update{CustomerName: name})
		m.done = true
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *handoffModel) View() string {
	t := m.ctx.Theme
	if m.done {
		name := m.ctx.Store.Data().CustomerName
		return lipgloss.JoinVertical(lipgloss.Left,
			t.Success.Render(" Thanks, "+name+"!"),
			t.Muted.Render(" A specialist is on the way to this kiosk."),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Accent.Render(" Let's get you some help."),
		"",
		" Who should we ask for?",
		"",
		" "+m.input.View(),
	)
}

// stockLookupModel jumps straight to a vehicle by its stock number, the
// path a visitor takes after spotting a windshield tag on the lot.
type stockLookupModel struct {
	ctx    *ScreenContext
	input  textinput.Model
	errMsg string
}

func newStockLookup(ctx *ScreenContext) tea.Model {
	return &stockLookupModel{ctx: ctx, input: newInput("e.g. ML2417", 12)}
}

func (m *stockLookupModel) Init() tea.Cmd { return textinput.Blink }

func (m *stockLookupModel) capturesBack() bool {
	return m.input.Value() != ""
}

func (m *stockLookupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if key.Matches(keyMsg, m.ctx.Keys.Back) {
		m.input.SetValue("")
		m.errMsg = ""
		return m, nil
	}
	if key.Matches(keyMsg, m.ctx.Keys.Select) {
		stock := strings.ToUpper(strings.TrimSpace(m.input.Value()))
		if stock == "" {
			return m, nil
		}
		v, found := m.ctx.Catalog.ByStock(stock)
		if !found {
			m.errMsg = fmt.Sprintf("No vehicle with stock number %s on the lot.", stock)
			return m, nil
		}
		m.ctx.Store.NavigateTo(screen.VehicleDetail, v.Stock,
			&session.Update{Vehicle: vehicleChoice(v)})
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *stockLookupModel) View() string {
	t := m.ctx.Theme
	lines := []string{
		t.Accent.Render(" Enter the stock number from the windshield tag."),
		"",
		" " + m.input.View(),
	}
	if m.errMsg != "" {
		lines = append(lines, "", t.Warning.Render(" "+m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
