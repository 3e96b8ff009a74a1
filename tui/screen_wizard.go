package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
)

var budgetRanges = []string{"under-25k", "25k-35k", "35k-50k", "50k-plus"}

// modelBudgetModel is the two-step finder. The step lives in the navigation
// sub-route ("model" then "budget"), so backing up from the budget step
// lands on the model step, not the welcome screen.
type modelBudgetModel struct {
	ctx    *ScreenContext
	step   string
	models []string
	menu   menu
}

func newModelBudget(ctx *ScreenContext) tea.Model {
	step := ctx.Store.State().SubRoute
	if step != "budget" {
		step = "model"
	}
	m := &modelBudgetModel{ctx: ctx, step: step}
	if step == "model" {
		m.models = ctx.Catalog.Models()
		items := make([]menuItem, len(m.models))
		for i, name := range m.models {
			items[i] = menuItem{label: name}
		}
		m.menu = newMenu(ctx, items)
	} else {
		items := make([]menuItem, len(budgetRanges))
		for i, r := range budgetRanges {
			items[i] = menuItem{label: budgetLabel(r)}
		}
		m.menu = newMenu(ctx, items)
	}
	return m
}

func (m *modelBudgetModel) Init() tea.Cmd { return nil }

func (m *modelBudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.menu.handle(keyMsg) {
		return m, nil
	}
	if !key.Matches(keyMsg, m.ctx.Keys.Select) {
		return m, nil
	}
	if m.step == "model" {
		if len(m.models) == 0 {
			return m, nil
		}
		m.ctx.Store.NavigateTo(screen.ModelBudget, "budget",
			&session.Update{SelectedModel: m.models[m.menu.selected()]})
		return m, nil
	}
	m.ctx.Store.NavigateTo(screen.Inventory, "",
		&session.Update{BudgetRange: budgetRanges[m.menu.selected()]})
	return m, nil
}

func (m *modelBudgetModel) View() string {
	t := m.ctx.Theme
	if m.step == "model" {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.Accent.Render(" Which model are you interested in?"), "", m.menu.view())
	}
	header := t.Accent.Render(" And your budget?")
	if model := m.ctx.Store.Data().SelectedModel; model != "" {
		header += t.Muted.Render("  looking at: " + model)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.menu.view())
}

type quizQuestion struct {
	prompt  string
	options []string
}

var quizQuestions = []quizQuestion{
	{"What matters most to you?", []string{"Fuel economy", "Towing and hauling", "Comfort", "Off-road capability"}},
	{"How many people do you usually carry?", []string{"Just me", "2-4", "5-7", "8 or more"}},
	{"Where do you drive most?", []string{"City", "Highway", "Mixed", "Trails"}},
}

// guidedQuizModel asks three questions and opens the inventory with a
// body-style filter derived from the answers.
type guidedQuizModel struct {
	ctx     *ScreenContext
	step    int
	menu    menu
	answers session.QuizAnswers
}

func newGuidedQuiz(ctx *ScreenContext) tea.Model {
	m := &guidedQuizModel{ctx: ctx}
	m.menu = m.menuFor(0)
	return m
}

func (m *guidedQuizModel) menuFor(step int) menu {
	opts := quizQuestions[step].options
	items := make([]menuItem, len(opts))
	for i, o := range opts {
		items[i] = menuItem{label: o}
	}
	return newMenu(m.ctx, items)
}

func (m *guidedQuizModel) Init() tea.Cmd { return nil }

func (m *guidedQuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.menu.handle(keyMsg) {
		return m, nil
	}
	if !key.Matches(keyMsg, m.ctx.Keys.Select) {
		return m, nil
	}

	choice := quizQuestions[m.step].options[m.menu.selected()]
	switch m.step {
	case 0:
		m.answers.Priority = choice
	case 1:
		m.answers.Passengers = passengerCount(choice)
	case 2:
		m.answers.Terrain = choice
	}

	if m.step < len(quizQuestions)-1 {
		m.step++
		m.menu = m.menuFor(m.step)
		return m, nil
	}

	m.ctx.Store.NavigateTo(screen.Inventory, "", &session.Update{
		Quiz:      &m.answers,
		BodyStyle: quizBodyStyle(m.answers),
	})
	return m, nil
}

func passengerCount(choice string) int {
	switch choice {
	case "Just me":
		return 1
	case "2-4":
		return 4
	case "5-7":
		return 7
	}
	return 8
}

// quizBodyStyle picks the body style the answers point at. Capacity wins
// over priority: a full house needs the seats regardless of preference.
func quizBodyStyle(a session.QuizAnswers) string {
	if a.Passengers >= 8 {
		return "Van"
	}
	if a.Passengers >= 5 {
		return "SUV"
	}
	switch a.Priority {
	case "Towing and hauling":
		return "Truck"
	case "Off-road capability":
		if a.Terrain == "Trails" {
			return "Truck"
		}
		return "SUV"
	case "Fuel economy":
		return "Sedan"
	}
	return "SUV"
}

func (m *guidedQuizModel) View() string {
	t := m.ctx.Theme
	q := quizQuestions[m.step]
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Muted.Render(progressDots(m.step, len(quizQuestions))),
		t.Accent.Render(" "+q.prompt),
		"",
		m.menu.view(),
	)
}

func progressDots(step, total int) string {
	out := " "
	for i := 0; i < total; i++ {
		if i == step {
			out += "● "
		} else {
			out += "○ "
		}
	}
	return out
}
