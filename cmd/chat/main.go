// Command chat is a terminal chat client for one property listing.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"kitnetia/internal/chatpanel"
	"kitnetia/internal/domain/entity"
)

const toastDuration = 4 * time.Second

type toast struct {
	text  string
	kind  chatpanel.NotificationKind
	until time.Time
}

type model struct {
	propertyID string
	panel      *chatpanel.Panel
	transport  chatpanel.Transport
	toast      *toast

	input   textinput.Model
	view    viewport.Model
	spinner spinner.Model

	width, height int
	ready         bool
}

type openedMsg struct{}

type replyMsg struct {
	reply *chatpanel.Reply
	err   error
}

type toastTickMsg time.Time

func newModel(propertyID string, panel *chatpanel.Panel, transport chatpanel.Transport, t *toast) model {
	ti := textinput.New()
	ti.Placeholder = "Digite sua mensagem..."
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = muted

	return model{
		propertyID: propertyID,
		panel:      panel,
		transport:  transport,
		toast:      t,
		input:      ti,
		spinner:    sp,
	}
}

func (m model) openCmd() tea.Cmd {
	return func() tea.Msg {
		m.panel.Open(context.Background())
		return openedMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.openCmd(), toastTick())
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func (m model) sendCmd(req chatpanel.Request) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.transport.Send(context.Background(), req)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *model) showToast(text string, kind chatpanel.NotificationKind) {
	m.toast.text = text
	m.toast.kind = kind
	m.toast.until = time.Now().Add(toastDuration)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+o":
			if m.panel.IsOpen() {
				m.panel.Close()
				m.input.Blur()
				return m, nil
			}
			m.input.Focus()
			return m, m.openCmd()
		case "enter":
			if !m.panel.IsOpen() {
				return m, nil
			}
			req, err := m.panel.Begin(m.input.Value())
			switch err {
			case nil:
				m.input.SetValue("")
				m.refresh()
				return m, tea.Batch(m.sendCmd(req), m.spinner.Tick)
			case chatpanel.ErrRequestInFlight:
				m.showToast("Aguarde a resposta da assistente.", chatpanel.NotifyInfo)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chatHeight := msg.Height - 6
		if chatHeight < 3 {
			chatHeight = 3
		}
		if !m.ready {
			m.view = viewport.New(msg.Width-2, chatHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width - 2
			m.view.Height = chatHeight
		}
		m.input.Width = msg.Width - 6
		m.refresh()

	case openedMsg:
		m.refresh()

	case replyMsg:
		m.panel.Finish(msg.reply, msg.err)
		m.refresh()

	case toastTickMsg:
		cmds = append(cmds, toastTick())

	case spinner.TickMsg:
		if m.panel.State() == chatpanel.StateAwaitingResponse {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.panel.IsOpen() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

		m.view, cmd = m.view.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refresh re-renders the transcript and keeps the newest turn in view.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.view.SetContent(renderTurns(m.panel.Turns(), m.view.Width-4))
	m.view.GotoBottom()
}

func renderTurns(turns []entity.Turn, width int) string {
	if width < 10 {
		width = 10
	}
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		label := assistantLabel.Render("Assistente")
		if turn.Role == entity.RoleUser {
			label = userLabel.Render("Você")
		}
		b.WriteString(label + "\n")
		b.WriteString(turnText.Width(width).Render(turn.Content) + "\n")
	}
	return b.String()
}

func (m model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	header := titleStyle.Render("KITNET.IA · " + m.propertyID)

	var body string
	if m.panel.IsOpen() {
		body = chatBorder.Render(m.view.View())
	} else {
		body = chatBorder.Width(m.width - 2).Height(m.view.Height).Render(muted.Render("Chat fechado. Pressione ctrl+o para abrir."))
	}

	prompt := m.input.View()
	if m.panel.State() == chatpanel.StateAwaitingResponse {
		prompt = m.spinner.View() + muted.Render(" Assistente está digitando...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, prompt, m.renderStatusBar())
}

func (m model) renderStatusBar() string {
	left := statusBar.Render("enter Enviar  ctrl+o Abrir/Fechar  esc Sair")
	right := ""
	if time.Now().Before(m.toast.until) {
		style := toastInfo
		switch m.toast.kind {
		case chatpanel.NotifySuccess:
			style = toastSuccess
		case chatpanel.NotifyError:
			style = toastError
		}
		right = style.Render(m.toast.text)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	propertyID := flag.String("property", os.Getenv("KITNETIA_PROPERTY_ID"), "property id to chat about")
	apiURL := flag.String("api", getEnv("KITNETIA_API_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("KITNETIA_TOKEN"), "optional bearer token")
	flag.Parse()

	if *propertyID == "" {
		fmt.Fprintln(os.Stderr, "Error: -property or KITNETIA_PROPERTY_ID is required")
		os.Exit(1)
	}

	transport := chatpanel.NewHTTPTransport(*apiURL, *token, 90*time.Second)

	t := &toast{}
	panel := chatpanel.New(*propertyID, transport, chatpanel.Options{
		Notify: func(n chatpanel.Notification) {
			t.text = n.Text
			t.kind = n.Kind
			t.until = time.Now().Add(toastDuration)
		},
	})

	p := tea.NewProgram(newModel(*propertyID, panel, transport, t), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
