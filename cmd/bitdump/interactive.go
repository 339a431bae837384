package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bitcodec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	formatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFormat modelState = iota
	stateShowResult
)

type interactiveModel struct {
	err      error
	filename string
	data     []byte
	filter   textinput.Model
	rows     []bitcodec.FieldMapping
	consumed int64
	selected int
	state    modelState
}

func newInteractiveModel(filename string) *interactiveModel {
	filter := textinput.New()
	filter.Placeholder = "filter formats"
	filter.Focus()
	return &interactiveModel{
		filename: filename,
		filter:   filter,
		state:    stateSelectFormat,
	}
}

type loadedMsg struct {
	err  error
	data []byte
}

type decodedMsg struct {
	err      error
	rows     []bitcodec.FieldMapping
	consumed int64
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *interactiveModel) loadFile() tea.Msg {
	data, err := os.ReadFile(m.filename)
	return loadedMsg{data: data, err: err}
}

func (m *interactiveModel) visibleFormats() []Format {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return formats
	}
	var out []Format
	for _, f := range formats {
		if strings.Contains(strings.ToLower(f.Name), needle) ||
			strings.Contains(strings.ToLower(f.Description), needle) {
			out = append(out, f)
		}
	}
	return out
}

func (m *interactiveModel) decodeSelected() tea.Cmd {
	visible := m.visibleFormats()
	if m.selected >= len(visible) {
		return nil
	}
	format := visible[m.selected]
	data := m.data
	return func() tea.Msg {
		ctx, err := decodeFile(format, data)
		if err != nil {
			return decodedMsg{err: err}
		}
		return decodedMsg{rows: ctx.Mappings(), consumed: ctx.Position()}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.err = msg.err
		m.data = msg.data
		return m, nil

	case decodedMsg:
		m.err = msg.err
		m.rows = msg.rows
		m.consumed = msg.consumed
		m.state = stateShowResult
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "ctrl+k":
			if m.state == stateSelectFormat && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.state == stateSelectFormat && m.selected < len(m.visibleFormats())-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateSelectFormat && m.data != nil {
				return m, m.decodeSelected()
			}
			return m, nil

		case "esc":
			if m.state == stateShowResult {
				m.state = stateSelectFormat
				m.err = nil
			}
			return m, nil
		}

		if m.state == stateSelectFormat {
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			if m.selected >= len(m.visibleFormats()) {
				m.selected = 0
			}
			return m, cmd
		}
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("bitdump " + m.filename))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateSelectFormat:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for i, f := range m.visibleFormats() {
			line := fmt.Sprintf("%-8s %s", f.Name, f.Description)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(formatStyle.Render("  " + line))
			}
			b.WriteByte('\n')
		}
		b.WriteString(helpStyle.Render("\n↑/↓ select · enter decode · q quit"))

	case stateShowResult:
		for _, row := range m.rows {
			b.WriteString(fmt.Sprintf("%-8d %-4d %s %s\n",
				row.Position,
				row.Raw.Len(),
				pathStyle.Render(fmt.Sprintf("%-24s", row.Path.String())),
				valueStyle.Render(fmt.Sprint(row.Converted)),
			))
		}
		b.WriteString(helpStyle.Render(fmt.Sprintf("\n%d bits consumed · esc back · q quit", m.consumed)))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename))
	_, err := p.Run()
	return err
}
