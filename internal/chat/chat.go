// internal/chat/chat.go
// Package chat provides the interactive terminal UI for asking questions
// against the indexed earthquake catalog.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danielaScattarella/rag-ai/internal/appconfig"
	"github.com/danielaScattarella/rag-ai/internal/rag"
	"github.com/danielaScattarella/rag-ai/internal/util"
)

// Answerer produces a grounded answer for a user question. It is satisfied
// by rag.AnswerComposer.
type Answerer interface {
	Answer(ctx context.Context, question string) (rag.AnswerResult, error)
}

// entry is a single exchange rendered in the history viewport.
type entry struct {
	role    string
	content string
	sources []string
}

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx              context.Context
	config           *appconfig.Config
	answerer         Answerer
	isLoading        bool
	err              error
	textArea         textarea.Model
	viewport         viewport.Model
	spinner          spinner.Model
	history          []entry
	width, height    int
	requestStartTime time.Time
}

// answerMsg is sent when the composer returns an answer.
type answerMsg struct{ result rag.AnswerResult }

// answerErr is sent when answering a question fails.
type answerErr struct{ error }

// tickMsg drives the elapsed-time display while a request is in flight.
type tickMsg time.Time

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *appconfig.Config, answerer Answerer) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Chiedi qualcosa sul catalogo sismico..."
	ta.Focus()
	ta.Prompt = "Domanda: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(100, 5)

	return &model{
		ctx:      ctx,
		config:   cfg,
		answerer: answerer,
		spinner:  s,
		textArea: ta,
		viewport: vp,
	}
}

// answerCmd creates a Bubble Tea command that asks the composer for a
// grounded answer to the given question.
func answerCmd(ctx context.Context, answerer Answerer, question string) tea.Cmd {
	return func() tea.Msg {
		result, err := answerer.Answer(ctx, question)
		if err != nil {
			return answerErr{error: err}
		}
		return answerMsg{result: result}
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model and returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 3
		footerHeight := 4
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case answerMsg:
		m.history = append(m.history, entry{
			role:    "assistant",
			content: msg.result.Answer,
			sources: sourceIDs(msg.result.SourceDocuments),
		})
		m.isLoading = false
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case answerErr:
		// History survives an upstream failure so the user can retry.
		m.isLoading = false
		m.err = msg.error
		m.textArea.Focus()
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.textArea, cmd = m.textArea.Update(msg)
	cmds = append(cmds, cmd)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && !m.isLoading {
		question := strings.TrimSpace(m.textArea.Value())
		if question != "" {
			m.history = append(m.history, entry{role: "user", content: question})
			m.textArea.Reset()
			m.isLoading = true
			m.err = nil
			m.requestStartTime = time.Now()
			cmds = append(cmds, m.spinner.Tick, answerCmd(m.ctx, m.answerer, question), tickCmd())
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var builder strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)

	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Catalogo:"),
		headerStyle.Render(util.TruncateRunes(m.config.CatalogPath, 40)),
		headerStyle.MarginLeft(1).Render(fmt.Sprintf("Model: %s", m.config.ChatModel)),
		headerStyle.MarginLeft(1).Render(fmt.Sprintf("TopK: %d", m.config.TopK)),
	)
	help := lipgloss.NewStyle().Render(" (esc to quit)")
	builder.WriteString(status + help + "\n\n")

	m.viewport.SetContent(renderHistory(m.history, m.width))
	builder.WriteString(m.viewport.View())

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		builder.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" Sto cercando nel catalogo... %ss", timer))
	} else {
		builder.WriteString("\n" + m.textArea.View())
	}

	return builder.String()
}

// renderHistory renders the conversation transcript for the viewport,
// wrapping each message to the available width.
func renderHistory(history []entry, width int) string {
	userStyle := lipgloss.NewStyle().Bold(true)
	assistantStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	sourceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var builder strings.Builder
	for _, e := range history {
		var role string
		if e.role == "assistant" {
			role = assistantStyle.Render("Assistant: ")
		} else {
			role = userStyle.Render("Tu: ")
		}
		wrapped := lipgloss.NewStyle().Width(width - lipgloss.Width(role) - 2).Render(e.content)
		builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, wrapped) + "\n")
		if len(e.sources) > 0 {
			builder.WriteString(sourceStyle.Render(formatSources(e.sources)) + "\n")
		}
	}
	return builder.String()
}

// formatSources renders the event IDs backing an answer as a single line.
func formatSources(ids []string) string {
	return "  >>> Eventi: " + strings.Join(ids, ", ")
}

// sourceIDs collects the distinct event IDs of the retrieved documents,
// preserving retrieval order.
func sourceIDs(units []rag.TextUnit) []string {
	seen := make(map[string]struct{}, len(units))
	var ids []string
	for _, unit := range units {
		id := unit.Metadata.EventID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Run initializes and runs the interactive chat TUI.
func Run(ctx context.Context, cfg *appconfig.Config, answerer Answerer) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		log.Println("Cancelling all running requests...")
		cancel()
	}()

	if cfg == nil {
		log.Fatalf("Failed to start: configuration is not loaded")
	}

	m := initialModel(ctx, cfg, answerer)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
