package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bytewire/bytewire/codec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#005F87")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#005F87"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewTab int

const (
	tabHex viewTab = iota
	tabWalk
	tabCount
)

func (t viewTab) String() string {
	switch t {
	case tabHex:
		return "hex"
	case tabWalk:
		return "integers"
	default:
		return "?"
	}
}

type dumpModel struct {
	err      error
	filename string
	framed   bool
	limit    int
	cfg      codec.Config
	rep      *report
	vp       viewport.Model
	goTo     textinput.Model
	tab      viewTab
	jumping  bool
	ready    bool
}

type reportMsg struct {
	err error
	rep *report
}

func newDumpModel(filename string, framed bool, limit int, cfg codec.Config) *dumpModel {
	ti := textinput.New()
	ti.Placeholder = "offset (hex)"
	ti.Prompt = "go to: "
	ti.Width = 20
	return &dumpModel{
		filename: filename,
		framed:   framed,
		limit:    limit,
		cfg:      cfg,
		goTo:     ti,
	}
}

func (m *dumpModel) Init() tea.Cmd {
	return m.load
}

func (m *dumpModel) load() tea.Msg {
	data, err := readInput(m.filename)
	if err != nil {
		return reportMsg{err: err}
	}
	rep, err := buildReport(data, m.framed, m.limit, m.cfg)
	if err != nil {
		return reportMsg{err: err}
	}
	return reportMsg{rep: rep}
}

func (m *dumpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.jumping {
			switch msg.String() {
			case "enter":
				m.jump(m.goTo.Value())
				m.jumping = false
				m.goTo.Blur()
				m.goTo.Reset()
			case "esc":
				m.jumping = false
				m.goTo.Blur()
				m.goTo.Reset()
			default:
				var cmd tea.Cmd
				m.goTo, cmd = m.goTo.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			m.setContent()
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.setContent()
		case "g":
			if m.tab == tabHex {
				m.jumping = true
				m.goTo.Focus()
				return m, textinput.Blink
			}
		}

	case reportMsg:
		m.err = msg.err
		m.rep = msg.rep
		if m.ready {
			m.setContent()
		}

	case tea.WindowSizeMsg:
		headerHeight := 3
		footerHeight := 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.setContent()
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *dumpModel) setContent() {
	if m.rep == nil {
		return
	}
	var lines []string
	switch m.tab {
	case tabHex:
		lines = m.rep.hexLines
	case tabWalk:
		lines = m.rep.walkLines
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.GotoTop()
}

// jump scrolls the hex view so the requested offset's line is at the top.
func (m *dumpModel) jump(s string) {
	off, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "0x"), 16, 32)
	if err != nil {
		return
	}
	m.vp.SetYOffset(int(off) / 16)
}

func (m *dumpModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.ready || m.rep == nil {
		return "Loading stream..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("wiredump"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("  ")
	for t := viewTab(0); t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.tab {
			b.WriteString(activeTabStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n")
	for _, line := range m.rep.summary {
		b.WriteString(offsetStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.vp.View())
	b.WriteString("\n")

	if m.jumping {
		b.WriteString(m.goTo.View())
	} else {
		b.WriteString(helpStyle.Render("tab switch view • ↑/↓ scroll • g go to offset • q quit"))
	}
	return b.String()
}

func runInteractive(filename string, framed bool, limit int, cfg codec.Config) error {
	p := tea.NewProgram(newDumpModel(filename, framed, limit, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
