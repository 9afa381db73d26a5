package repl

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emberlang/ember/internal/compiler"
	"github.com/emberlang/ember/internal/vm"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// model is the Bubble Tea model for a terminal REPL session: a
// scrolling transcript of submitted lines plus their VM output, and a
// single textinput.Model for the line currently being edited.
type model struct {
	v        *vm.VM
	comp     *compiler.Compiler
	input    textinput.Model
	history  []string
	colorize bool
	quitting bool

	stdoutBuf *bytes.Buffer
	stderrBuf *bytes.Buffer
}

func newModel(v *vm.VM, colorize bool) *model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.PromptStyle = promptStyle

	m := &model{
		v:         v,
		comp:      compiler.New(),
		input:     ti,
		colorize:  colorize,
		stdoutBuf: &bytes.Buffer{},
		stderrBuf: &bytes.Buffer{},
	}
	v.SetStdout(m.stdoutBuf)
	v.SetStderr(m.stderrBuf)
	return m
}

func (m *model) Init() tea.Cmd { return textinput.Blink }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs exactly one line through the VM — the TUI never batches
// multiple lines into a single Interpret call.
func (m *model) submit() {
	line := m.input.Value()
	m.input.SetValue("")
	if strings.TrimSpace(line) == "" {
		return
	}

	m.stdoutBuf.Reset()
	m.stderrBuf.Reset()
	m.v.Interpret(m.comp, []byte(line))

	m.history = append(m.history, promptStyle.Render("> ")+line)
	if out := m.stdoutBuf.String(); out != "" {
		m.history = append(m.history, outputStyle.Render(strings.TrimRight(out, "\n")))
	}
	if errOut := m.stderrBuf.String(); errOut != "" {
		m.history = append(m.history, errStyle.Render(strings.TrimRight(errOut, "\n")))
	}
}

func (m *model) View() string {
	var b strings.Builder
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	if m.quitting {
		b.WriteByte('\n')
	}
	return b.String()
}

// runTUI starts the Bubble Tea program. It is only reached when stdin
// is a terminal; piped input takes runPlain instead.
func runTUI(v *vm.VM, opts Options) error {
	m := newModel(v, opts.Colorize)
	p := tea.NewProgram(m, tea.WithOutput(opts.Out), tea.WithInput(opts.In))
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}
