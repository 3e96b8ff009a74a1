package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/tui/theme"
)

// menuItem is one selectable row.
type menuItem struct {
	label string
	hint  string
}

// menu is a minimal cursor list shared by the journey screens.
type menu struct {
	items  []menuItem
	cursor int
	keys   KeyMap
	theme  *theme.Theme
}

func newMenu(ctx *ScreenContext, items []menuItem) menu {
	return menu{items: items, keys: ctx.Keys, theme: ctx.Theme}
}

// handle moves the cursor; it reports whether the key was consumed.
func (m *menu) handle(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return true
	}
	return false
}

func (m *menu) selected() int {
	return m.cursor
}

func (m *menu) view() string {
	var b strings.Builder
	for i, item := range m.items {
		line := "  " + item.label
		if i == m.cursor {
			line = m.theme.Selected.Render("> " + item.label)
		}
		b.WriteString(line)
		if item.hint != "" {
			b.WriteString("  " + m.theme.Muted.Render(item.hint))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// budgetMax maps a budget-range token to a price ceiling for catalog
// filtering. Unknown tokens match everything.
func budgetMax(budget string) int {
	switch budget {
	case "under-25k":
		return 25_000
	case "25k-35k":
		return 35_000
	case "35k-50k":
		return 50_000
	case "50k-plus":
		return 0
	}
	return 0
}

// budgetLabel renders a budget-range token for display.
func budgetLabel(budget string) string {
	switch budget {
	case "under-25k":
		return "Under $25,000"
	case "25k-35k":
		return "$25,000 – $35,000"
	case "35k-50k":
		return "$35,000 – $50,000"
	case "50k-plus":
		return "$50,000 and up"
	}
	return budget
}

// dollars formats a whole-dollar amount with thousands separators.
func dollars(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + dollars(-n)
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return "$" + strings.Join(parts, ",")
}

// placeholderModel stands in for a screen with no registered builder. It
// should never render in a correctly wired kiosk.
type placeholderModel struct {
	ctx *ScreenContext
	id  screen.ID
}

func newPlaceholder(ctx *ScreenContext, id screen.ID) tea.Model {
	return &placeholderModel{ctx: ctx, id: id}
}

func (p *placeholderModel) Init() tea.Cmd { return nil }

func (p *placeholderModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }

func (p *placeholderModel) View() string {
	return p.ctx.Theme.Warning.Render(fmt.Sprintf(" screen %q is not available", p.id))
}
