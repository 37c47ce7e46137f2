package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/hostbridge/bridge"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	formatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	argStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxHistory = 8

type interactiveModel struct {
	bridge   *bridge.Bridge
	inputs   []textinput.Model
	history  []entry
	focusIdx int
}

type entry struct {
	err    error
	format string
	args   string
	result string
}

type renderedMsg entry

func newInteractiveModel(b *bridge.Bridge) *interactiveModel {
	format := textinput.New()
	format.Prompt = "format: "
	format.Placeholder = "%s has %d items"
	format.Width = 50
	format.Focus()

	args := textinput.New()
	args.Prompt = "args:   "
	args.Placeholder = "box,3"
	args.Width = 50

	return &interactiveModel{
		bridge: b,
		inputs: []textinput.Model{format, args},
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) render() tea.Msg {
	e := entry{format: m.inputs[0].Value(), args: m.inputs[1].Value()}
	e.result, e.err = renderFormat(m.bridge, e.format, parseArgs(e.args))
	return renderedMsg(e)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			return m, m.inputs[m.focusIdx].Focus()

		case "enter":
			if m.inputs[0].Value() == "" {
				return m, nil
			}
			return m, m.render
		}

	case renderedMsg:
		m.history = append([]entry{entry(msg)}, m.history...)
		if len(m.history) > maxHistory {
			m.history = m.history[:maxHistory]
		}
		return m, nil
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("xjni printf"))
	b.WriteString(" bridge ")
	b.WriteString(bridge.Version())
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, e := range m.history {
		b.WriteString(formatStyle.Render(fmt.Sprintf("%q", e.format)))
		if e.args != "" {
			b.WriteString(" ")
			b.WriteString(argStyle.Render(e.args))
		}
		b.WriteString("\n  ")
		if e.err != nil {
			b.WriteString(errorStyle.Render(e.err.Error()))
		} else {
			b.WriteString(resultStyle.Render(fmt.Sprintf("%q", e.result)))
		}
		b.WriteString("\n")
	}

	stats := m.bridge.Stats()
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("calls %d • raised %d • live %d", stats.Calls, stats.Raised, stats.Live)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch field • enter render • esc quit"))

	return b.String()
}

func runInteractive(b *bridge.Bridge) error {
	p := tea.NewProgram(newInteractiveModel(b), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
