package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atlasmove/movechat/internal/auth"
	"github.com/atlasmove/movechat/internal/domain"
	"github.com/atlasmove/movechat/internal/service"
)

const sidebarWidth = 30

// App is the Bubble Tea program driving the conversation core. All core
// state transitions happen inside Update, which is the single owning loop
// the service package expects; thunks run as tea commands and come back as
// the result messages below.
type App struct {
	registry *service.Registry
	identity auth.Identity

	keys   KeyMap
	styles *Styles
	input  textinput.Model

	width  int
	height int
}

type (
	conversationsMsg service.ConversationsResult
	createdMsg       service.CreateResult
	historyMsg       service.HistoryResult
	sentMsg          service.SendResult
)

func New(registry *service.Registry, identity auth.Identity) *App {
	input := textinput.New()
	input.Placeholder = "Ask about moving to a new city..."
	input.Prompt = "> "
	input.Focus()

	return &App{
		registry: registry,
		identity: identity,
		keys:     DefaultKeyMap,
		styles:   DefaultStyles(),
		input:    input,
	}
}

func (a *App) Init() tea.Cmd {
	load := a.registry.LoadConversations()
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return conversationsMsg(load(context.Background())) },
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = a.width - sidebarWidth - 6
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NewChat):
			create := a.registry.CreateConversation()
			return a, func() tea.Msg { return createdMsg(create(context.Background())) }
		case key.Matches(msg, a.keys.PrevConv):
			return a, a.moveSelection(-1)
		case key.Matches(msg, a.keys.NextConv):
			return a, a.moveSelection(1)
		case key.Matches(msg, a.keys.Submit):
			return a, a.submit()
		}

	case conversationsMsg:
		a.registry.ApplyConversations(service.ConversationsResult(msg))
		// Auto-select the most recent conversation on first load.
		if a.registry.Active() == nil && len(a.registry.Conversations()) > 0 {
			return a, a.selectConversation(a.registry.Conversations()[0].ID)
		}
		return a, nil

	case createdMsg:
		sess := a.registry.ApplyCreate(service.CreateResult(msg))
		if sess == nil {
			return a, nil
		}
		return a, a.loadHistory(sess)

	case historyMsg:
		res := service.HistoryResult(msg)
		res.Session.ApplyHistory(res)
		return a, nil

	case sentMsg:
		res := service.SendResult(msg)
		res.Session.ApplySend(res)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) submit() tea.Cmd {
	sess := a.registry.Active()
	if sess == nil {
		return nil
	}
	send := sess.Submit(a.input.Value())
	if send == nil {
		return nil
	}
	a.input.Reset()
	return func() tea.Msg { return sentMsg(send(context.Background())) }
}

func (a *App) selectConversation(id string) tea.Cmd {
	sess := a.registry.Select(id)
	return a.loadHistory(sess)
}

func (a *App) loadHistory(sess *service.Session) tea.Cmd {
	load := sess.LoadHistory()
	return func() tea.Msg { return historyMsg(load(context.Background())) }
}

func (a *App) moveSelection(delta int) tea.Cmd {
	convs := a.registry.Conversations()
	if len(convs) == 0 {
		return nil
	}

	idx := 0
	if active := a.registry.Active(); active != nil {
		for i, c := range convs {
			if c.ID == active.ConversationID() {
				idx = i + delta
				break
			}
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(convs)-1 {
		idx = len(convs) - 1
	}

	if active := a.registry.Active(); active != nil && convs[idx].ID == active.ConversationID() {
		return nil
	}
	return a.selectConversation(convs[idx].ID)
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	paneWidth := a.width - sidebarWidth - 2
	paneHeight := a.height - 3

	sidebar := a.viewSidebar(paneHeight)
	chat := a.viewChat(paneWidth, paneHeight)

	top := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chat)
	inputRow := a.input.View()
	status := a.styles.StatusBar.Render(fmt.Sprintf(
		"%s %s · enter send · ctrl+n new chat · ↑/↓ switch · ctrl+c quit",
		a.identity.FirstName, a.identity.LastName,
	))

	return lipgloss.JoinVertical(lipgloss.Left, top, inputRow, status)
}

func (a *App) viewSidebar(height int) string {
	var b strings.Builder
	b.WriteString(a.styles.SidebarHeader.Render("Moving Assistant"))
	b.WriteString("\n")

	convs := a.registry.Conversations()
	if len(convs) == 0 {
		b.WriteString(a.styles.Muted.Render("No conversations yet"))
	}

	activeID := ""
	if active := a.registry.Active(); active != nil {
		activeID = active.ConversationID()
	}

	for _, c := range convs {
		title := c.Title
		if len(title) > sidebarWidth-4 {
			title = title[:sidebarWidth-4] + "…"
		}
		style := a.styles.ConvItem
		if c.ID == activeID {
			style = a.styles.ConvItemActive
		}
		b.WriteString(style.Render(title))
		b.WriteString("\n")
		b.WriteString(a.styles.ConvDate.Render(c.CreatedAt.Format("Jan 2, 2006")))
		b.WriteString("\n")
	}

	return a.styles.Sidebar.
		Width(sidebarWidth).
		Height(height).
		Render(b.String())
}

func (a *App) viewChat(width, height int) string {
	sess := a.registry.Active()
	if sess == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			a.styles.Muted.Render("Start a new conversation\nPress ctrl+n to begin"))
	}

	var lines []string

	if banner := sess.LastError(); banner != "" {
		lines = append(lines, a.styles.ErrorBanner.Width(width).Render(banner), "")
	}

	switch sess.State() {
	case service.StateLoadingHistory:
		lines = append(lines, a.styles.Muted.Render("Loading conversation..."))
	default:
		if len(sess.Messages()) == 0 {
			lines = append(lines, a.styles.Muted.Render(
				"Start a conversation! Ask me about moving to a new city,\nfinding movers, apartments, and more."))
		}
		for _, m := range sess.Messages() {
			lines = append(lines, a.renderMessage(m, width), "")
		}
		if sess.State() == service.StateSending {
			lines = append(lines, a.styles.Muted.Render("Thinking..."))
		}
	}

	// Keep the tail when the transcript outgrows the pane.
	body := strings.Join(lines, "\n")
	rows := strings.Split(body, "\n")
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(rows, "\n"))
}

func (a *App) renderMessage(m domain.Message, width int) string {
	maxWidth := width * 4 / 5
	if m.Role == domain.RoleUser {
		block := a.styles.UserMessage.MaxWidth(maxWidth).Render(m.Content)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return a.styles.AssistMessage.MaxWidth(maxWidth).Render(m.Content)
}
