package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motorlane/kiosk/traffic"
)

const adminQueryTimeout = 5 * time.Second

type trafficLoadedMsg struct {
	records []traffic.Record
	err     error
}

func loadTraffic(store *traffic.SQLiteStore, limit int) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return trafficLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), adminQueryTimeout)
		defer cancel()
		records, err := store.Recent(ctx, limit)
		return trafficLoadedMsg{records: records, err: err}
	}
}

// trafficLogModel is the staff view of recent kiosk sessions. Reaching it
// suppresses analytics for the active session, so staff browsing never
// shows up in the numbers.
type trafficLogModel struct {
	ctx     *ScreenContext
	records []traffic.Record
	loaded  bool
	err     error
}

func newTrafficLog(ctx *ScreenContext) tea.Model {
	return &trafficLogModel{ctx: ctx}
}

func (m *trafficLogModel) Init() tea.Cmd {
	return loadTraffic(m.ctx.Traffic, 25)
}

func (m *trafficLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if loaded, ok := msg.(trafficLoadedMsg); ok {
		m.loaded = true
		m.records = loaded.records
		m.err = loaded.err
	}
	return m, nil
}

func (m *trafficLogModel) View() string {
	t := m.ctx.Theme
	header := t.Title.Render(" Traffic log") + t.Muted.Render("  staff only")

	switch {
	case m.ctx.Traffic == nil:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Muted.Render("  Local analytics storage is disabled."))
	case m.err != nil:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Error.Render("  "+m.err.Error()))
	case !m.loaded:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Muted.Render("  loading…"))
	case len(m.records) == 0:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Muted.Render("  No sessions recorded yet."))
	}

	lines := []string{header, ""}
	for _, rec := range m.records {
		name := rec.CustomerName
		if name == "" {
			name = "anonymous"
		}
		lines = append(lines, fmt.Sprintf("  %s  %-14s %-12s %2d actions",
			rec.RecordedAt.Local().Format("Jan 02 15:04"),
			rec.Screen, name, len(rec.Actions)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// salesDashboardModel aggregates the traffic log into where journeys end
// and which screens see the most activity.
type salesDashboardModel struct {
	ctx     *ScreenContext
	records []traffic.Record
	loaded  bool
	err     error
}

func newSalesDashboard(ctx *ScreenContext) tea.Model {
	return &salesDashboardModel{ctx: ctx}
}

func (m *salesDashboardModel) Init() tea.Cmd {
	return loadTraffic(m.ctx.Traffic, 200)
}

func (m *salesDashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if loaded, ok := msg.(trafficLoadedMsg); ok {
		m.loaded = true
		m.records = loaded.records
		m.err = loaded.err
	}
	return m, nil
}

func (m *salesDashboardModel) View() string {
	t := m.ctx.Theme
	header := t.Title.Render(" Sales dashboard") + t.Muted.Render("  staff only")

	switch {
	case m.ctx.Traffic == nil:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Muted.Render("  Local analytics storage is disabled."))
	case m.err != nil:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Error.Render("  "+m.err.Error()))
	case !m.loaded:
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			t.Muted.Render("  loading…"))
	}

	named := 0
	endings := make(map[string]int)
	visits := make(map[string]int)
	for _, rec := range m.records {
		if rec.CustomerName != "" {
			named++
		}
		endings[string(rec.Screen)]++
		for _, action := range rec.Actions {
			if _, target, ok := strings.Cut(action, ":"); ok {
				visits[target]++
			}
		}
	}

	lines := []string{
		header,
		"",
		fmt.Sprintf("  Sessions     %d", len(m.records)),
		fmt.Sprintf("  Named leads  %d", named),
		"",
		t.Accent.Render("  Journeys ended on"),
	}
	for _, row := range topCounts(endings, 5) {
		lines = append(lines, fmt.Sprintf("    %-18s %d", row.key, row.n))
	}
	lines = append(lines, "", t.Accent.Render("  Most visited screens"))
	for _, row := range topCounts(visits, 5) {
		lines = append(lines, fmt.Sprintf("    %-18s %d", row.key, row.n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type countRow struct {
	key string
	n   int
}

func topCounts(counts map[string]int, limit int) []countRow {
	rows := make([]countRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, countRow{key: k, n: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].key < rows[j].key
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
