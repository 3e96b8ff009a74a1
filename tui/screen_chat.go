package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/motorlane/kiosk/chat"
	"github.com/motorlane/kiosk/session"
)

const assistantTimeout = 30 * time.Second

type assistantReplyMsg struct {
	reply string
	err   error
}

// chatModel hosts the assistant conversation. The transcript lives on the
// customer record, so it survives navigation away and back; the model only
// holds the input line and the in-flight request state.
type chatModel struct {
	ctx      *ScreenContext
	input    textinput.Model
	spin     spinner.Model
	waiting  bool
	errMsg   string
	renderer *glamour.TermRenderer
}

func newAIChat(ctx *ScreenContext) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ctx.Theme.Accent

	// Markdown rendering is best effort; a nil renderer falls back to
	// plain text.
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(64),
	)

	return &chatModel{
		ctx:      ctx,
		input:    newInput("ask about vehicles, financing, anything", 200),
		spin:     sp,
		renderer: renderer,
	}
}

func (m *chatModel) Init() tea.Cmd { return textinput.Blink }

func (m *chatModel) capturesBack() bool {
	return m.input.Value() != ""
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assistantReplyMsg:
		m.waiting = false
		if msg.err != nil {
			m.errMsg = "The assistant is unavailable right now. A specialist can help instead."
			return m, nil
		}
		m.ctx.Store.UpdateCustomerData(&session.Update{
			Conversation: []session.ChatTurn{{Role: chat.RoleAssistant, Content: msg.reply}},
		})
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.ctx.Keys.Back) {
			m.input.SetValue("")
			return m, nil
		}
		if key.Matches(msg, m.ctx.Keys.Select) && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.errMsg = ""
			m.waiting = true
			m.ctx.Store.UpdateCustomerData(&session.Update{
				Conversation: []session.ChatTurn{{Role: chat.RoleUser, Content: question}},
			})
			return m, tea.Batch(m.spin.Tick, m.askAssistant())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// askAssistant snapshots the conversation now and queries the backend off
// the event loop.
func (m *chatModel) askAssistant() tea.Cmd {
	conversation := toMessages(m.ctx.Store.Data().Conversation)
	assistant := m.ctx.Assistant
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()
		reply, err := assistant.Reply(ctx, conversation)
		return assistantReplyMsg{reply: reply, err: err}
	}
}

func toMessages(turns []session.ChatTurn) []chat.Message {
	out := make([]chat.Message, len(turns))
	for i, t := range turns {
		out[i] = chat.Message{Role: t.Role, Content: t.Content}
	}
	return out
}

func (m *chatModel) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

func (m *chatModel) View() string {
	t := m.ctx.Theme
	turns := m.ctx.Store.Data().Conversation

	var lines []string
	if len(turns) == 0 {
		lines = append(lines, t.Muted.Render(" Ask me anything about the vehicles on the lot."))
	}
	start := 0
	if len(turns) > 8 {
		start = len(turns) - 8
	}
	for _, turn := range turns[start:] {
		if turn.Role == chat.RoleAssistant {
			lines = append(lines, m.renderMarkdown(turn.Content))
		} else {
			lines = append(lines, t.Accent.Render(" You: ")+turn.Content)
		}
	}

	if m.waiting {
		lines = append(lines, "", m.spin.View()+t.Muted.Render("thinking"))
	}
	if m.errMsg != "" {
		lines = append(lines, "", t.Warning.Render(" "+m.errMsg))
	}
	lines = append(lines, "", " "+m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
