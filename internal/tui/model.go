package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfqa/internal/domain"
)

// QAPort is the TUI-facing subset of the QA service.
type QAPort interface {
	Ask(ctx context.Context, question string) (domain.Answer, error)
	Stats() (domain.IndexStats, error)
}

// answerMsg delivers a completed (possibly slow) Ask call to the UI.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// Model is the Bubble Tea model for the question-answering UI.
type Model struct {
	service  QAPort
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	summary      string
	status       string
	answer       domain.Answer
	lastQuestion string
	cursor       int
	ready        bool
	thinking     bool
}

// New creates a new TUI model instance.
func New(service QAPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Ask a question about the document"
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	vp := viewport.New(0, 0)
	status := "Document loaded. Ask away."
	if stats, err := service.Stats(); err == nil {
		status = fmt.Sprintf("Indexed %d chunks, %d terms. Ask away.",
			stats.ChunkCount, stats.VocabularySize)
	}
	return Model{service: service, input: ti, viewport: vp, spin: sp, summary: summary, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + qh + 1 // header, summary, status, query frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case answerMsg:
		m.thinking = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.answer = domain.Answer{}
		} else {
			m.answer = msg.answer
			m.lastQuestion = msg.question
			m.cursor = 0
			src := "extracted"
			if msg.answer.Generated {
				src = "generated"
			}
			m.status = fmt.Sprintf("Answer (%s) for %q", src, msg.question)
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case spinner.TickMsg:
		if m.thinking {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.thinking {
				m.thinking = true
				m.status = "Thinking..."
				return m, tea.Batch(m.spin.Tick, ask(m.service, q))
			}
		case "down":
			if n := len(m.answer.Results); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "up":
			if n := len(m.answer.Results); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs retrieval and answer composition off the UI loop; generation can
// take seconds and must not freeze input handling.
func ask(service QAPort, question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := service.Ask(context.Background(), question)
		return answerMsg{question: question, answer: ans, err: err}
	}
}

// View renders the layout: header, summary, answer/results, query, status.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PDF Q&A")
	summary := summaryStyle.Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	if m.thinking {
		status = m.spin.View() + " " + status
	}
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderContent() string {
	if m.answer.Text == "" {
		return "No answer yet."
	}
	var b strings.Builder
	b.WriteString(answerStyle.Render(m.answer.Text))
	b.WriteString("\n\n")

	if len(m.answer.Results) == 0 {
		return b.String()
	}
	r := m.answer.Results[m.cursor]
	fmt.Fprintf(&b, "Source %d/%d  page %d  similarity %.3f\n\n",
		m.cursor+1, len(m.answer.Results), r.Chunk.PageNumber, r.Similarity)
	b.WriteString(highlightSentences(r.Chunk.Text, r.RelevantSentences))
	return b.String()
}

// highlightSentences renders the chunk text with its key sentences styled.
func highlightSentences(text string, sentences []string) string {
	for _, sent := range sentences {
		text = strings.Replace(text, sent, highlightStyle.Render(sent), 1)
	}
	return text
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	answerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
