package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tliron/commonlog"

	"whilec/internal/compiler"
	"whilec/internal/history"
)

var log = commonlog.GetLogger("whilec.tui")

// Recorder stores compile outcomes. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// Options configures a new editor model
type Options struct {
	Name     string // shown in the title and used as the report name
	Source   string // initial buffer
	TabWidth int
	Recorder Recorder // nil disables history
}

type compileDoneMsg struct {
	report *compiler.Report
	err    error // from the recorder only
}

// Model is the editor: a text area, a compile key and a modal result box
type Model struct {
	width  int
	height int
	ready  bool

	textarea textarea.Model
	name     string
	tabWidth int
	recorder Recorder

	result     *compiler.Report
	showResult bool
	status     string
	compiles   int
}

// NewModel creates a new editor model
func NewModel(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "x := 1; while x { x := !x }"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.SetValue(opts.Source)
	ta.Focus()

	name := opts.Name
	if name == "" {
		name = "untitled.w"
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	return Model{
		textarea: ta,
		name:     name,
		tabWidth: tabWidth,
		recorder: opts.Recorder,
		status:   "F5 compile",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The result box is modal: it swallows keys until dismissed
		if m.showResult {
			switch msg.String() {
			case "esc", "enter", "q":
				m.showResult = false
				m.textarea.Focus()
			}
			return m, nil
		}

		switch msg.String() {
		case "f5", "ctrl+s":
			m.status = "compiling..."
			return m, m.compile()
		case "tab":
			m.textarea.InsertString(strings.Repeat(" ", m.tabWidth))
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.textarea.SetWidth(max(20, msg.Width-4))
		m.textarea.SetHeight(max(3, msg.Height-6))

	case compileDoneMsg:
		m.compiles++
		m.result = msg.report
		m.showResult = true
		m.textarea.Blur()
		m.status = fmt.Sprintf("compile #%d: %s", m.compiles, outcome(msg.report))
		if msg.err != nil {
			m.status += " (history: " + msg.err.Error() + ")"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) compile() tea.Cmd {
	name, source, recorder := m.name, m.textarea.Value(), m.recorder
	return func() tea.Msg {
		report := compiler.Compile(name, source)
		if recorder == nil {
			return compileDoneMsg{report: report}
		}
		_, err := recorder.Record(context.Background(), history.FromReport(report))
		if err != nil {
			log.Warningf("could not record compile of %s: %s", name, err)
		}
		return compileDoneMsg{report: report, err: err}
	}
}

func outcome(r *compiler.Report) string {
	if r.OK() {
		return "ok"
	}
	return string(r.Failure.Stage) + " failed"
}

// Result returns the last compile report, nil before the first compile
func (m Model) Result() *compiler.Report {
	return m.result
}

// Value returns the editor buffer
func (m Model) Value() string {
	return m.textarea.Value()
}

// View renders the UI
func (m Model) View() string {
	if m.showResult && m.result != nil {
		box := m.renderResult()
		if !m.ready {
			return box
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var s strings.Builder
	s.WriteString(TitleStyle.Render("whilec") + " " + HelpStyle.Render(m.name))
	s.WriteString("\n")
	s.WriteString(EditorStyle.Render(m.textarea.View()))
	s.WriteString("\n")
	s.WriteString(StatusBarStyle.Render(m.status))
	s.WriteString(" ")
	s.WriteString(RenderHelp("F5/ctrl+s compile • ctrl+c quit"))
	return s.String()
}

func (m Model) renderResult() string {
	var body strings.Builder
	if m.result.OK() {
		body.WriteString(SuccessTitleStyle.Render("Success"))
		body.WriteString("\n\n")
		body.WriteString(strings.Join(m.result.Summary(), "\n"))
	} else {
		body.WriteString(ErrorTitleStyle.Render("Error"))
		body.WriteString("\n\n")
		body.WriteString("Error: " + m.result.Failure.Message)
	}
	body.WriteString("\n\n")
	body.WriteString(RenderHelp("esc/enter close"))

	style := SuccessBoxStyle
	if !m.result.OK() {
		style = ErrorBoxStyle
	}
	if m.width > 0 {
		style = style.MaxWidth(m.width)
	}
	return style.Render(body.String())
}

// Run starts the editor full screen and returns the final buffer
func Run(opts Options) (string, error) {
	final, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	return final.(Model).Value(), nil
}
