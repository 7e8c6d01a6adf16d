// monitor_tui.go - bubbletea-based interactive debugger TUI, an
// Elm-architecture alternative to the plain-CLI machine monitor.

package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

var (
	tuiPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
	tuiHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	tuiPCStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("220"))
)

// tuiModel is the bubbletea model for the interactive debugger. One
// Debug65C02 per running CPU is supported, but only one (the Lynx's
// single 65C02) is ever registered in this module.
type tuiModel struct {
	console *Console
	cpu     *Debug65C02
	err     error
}

func newTUIModel(console *Console, cpu *Debug65C02) tuiModel {
	return tuiModel{console: console, cpu: cpu}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if m.cpu.Step() == 0 {
				m.err = fmt.Errorf("CPU halted at PC %#04x", m.cpu.GetPC())
			}
		case "c":
			if m.cpu.IsRunning() {
				m.cpu.Freeze()
			} else {
				m.cpu.Resume()
			}
		case "r":
			m.console.Reset()
		}
	}
	return m, nil
}

func (m tuiModel) registerPane() string {
	var b strings.Builder
	for _, r := range m.cpu.GetRegisters() {
		width := r.BitWidth / 4
		fmt.Fprintf(&b, "%-3s %0*X\n", r.Name, width, r.Value)
	}
	return tuiPaneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m tuiModel) disasmPane() string {
	lines := m.cpu.Disassemble(m.cpu.GetPC(), 8)
	var b strings.Builder
	for _, l := range lines {
		row := fmt.Sprintf("%04X  %s", l.Address, l.Mnemonic)
		if l.IsPC {
			row = tuiPCStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return tuiPaneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// devicePane spew-dumps the raw Mikey/Suzy state, the low-level
// counterpart to the formatted register pane above.
func (m tuiModel) devicePane() string {
	dump := spew.Sdump(m.console.Mikey.Timers) + spew.Sdump(m.console.Suzy.Math)
	return tuiPaneStyle.Render(strings.TrimRight(dump, "\n"))
}

func (m tuiModel) View() string {
	header := tuiHeaderStyle.Render("lynxmon")
	status := "halted"
	if m.cpu.IsRunning() {
		status = "running"
	}
	if m.err != nil {
		status = m.err.Error()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.registerPane(), m.disasmPane(), m.devicePane())
	help := tuiHelpStyle.Render(fmt.Sprintf("[%s] s=step  c=run/pause  r=reset  q=quit", status))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

// RunTUI starts the bubbletea debugger loop. Blocks until the user quits.
func RunTUI(console *Console, cpu *Debug65C02) error {
	_, err := tea.NewProgram(newTUIModel(console, cpu)).Run()
	return err
}
