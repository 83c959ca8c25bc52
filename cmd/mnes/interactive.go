package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrymomot/mnes"
	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/romanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	encodedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD866"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

var menuItems = []string{"Encode a name", "View statistics", "Export history", "Exit"}

// exportTail is how many recent rows the export screen shows.
const exportTail = 3

type modelState int

const (
	stateMenu modelState = iota
	stateName
	stateFormat
	stateOutput
)

type exportedMsg struct {
	path string
	rows [][]string
	err  error
}

type interactiveModel struct {
	enc         *mnes.Encoder
	hist        *history.Log
	historyPath string

	state    modelState
	selected int
	name     textinput.Model
	format   textinput.Model
	output   string
	err      error
}

func newInteractiveModel(enc *mnes.Encoder, hist *history.Log, historyPath string) *interactiveModel {
	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "Myanmar name"
	name.Width = 40

	format := textinput.New()
	format.Prompt = "Format: "
	format.Placeholder = string(romanize.DefaultFormat)
	format.Width = 20

	return &interactiveModel{
		enc:         enc,
		hist:        hist,
		historyPath: historyPath,
		state:       stateMenu,
		name:        name,
		format:      format,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateOutput:
			if msg.String() == "q" {
				return m, tea.Quit
			}
			if msg.String() == "enter" || msg.String() == "esc" {
				m.reset()
			}
			return m, nil
		default:
			return m.updateInput(msg)
		}

	case exportedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.output = renderExport(msg)
		}
		m.state = stateOutput
		return m, nil
	}

	return m, nil
}

func (m *interactiveModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(menuItems)-1 {
			m.selected++
		}
	case "1", "2", "3", "4":
		m.selected = int(key[0] - '1')
		return m.choose()
	case "enter":
		return m.choose()
	}
	return m, nil
}

func (m *interactiveModel) choose() (tea.Model, tea.Cmd) {
	switch m.selected {
	case 0:
		m.state = stateName
		m.name.SetValue("")
		m.format.SetValue("")
		return m, m.name.Focus()
	case 1:
		m.output = formatReport(m.enc.Report(mnes.DefaultTopN))
		m.state = stateOutput
		return m, nil
	case 2:
		return m, m.export
	default:
		return m, tea.Quit
	}
}

func (m *interactiveModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.reset()
		return m, nil
	case "enter":
		if m.state == stateName {
			m.name.Blur()
			m.state = stateFormat
			return m, m.format.Focus()
		}
		m.format.Blur()
		m.encode()
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == stateName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.format, cmd = m.format.Update(msg)
	}
	return m, cmd
}

func (m *interactiveModel) encode() {
	format := strings.ToLower(strings.TrimSpace(m.format.Value()))
	if format == "" {
		format = string(romanize.DefaultFormat)
	}

	res, err := m.enc.Encode(m.name.Value(), format)
	m.err = err
	if err == nil {
		m.output = renderResult(res)
	}
	m.state = stateOutput
}

// export saves the whole session history and returns the last rows for display.
func (m *interactiveModel) export() tea.Msg {
	records := m.hist.All()
	if err := history.SaveFile(m.historyPath, records); err != nil {
		return exportedMsg{err: err}
	}

	tailRows := history.Rows(m.hist.Tail(exportTail))
	rows := make([][]string, 0, len(tailRows))
	for _, r := range tailRows {
		rows = append(rows, r.Strings())
	}
	return exportedMsg{path: m.historyPath, rows: rows}
}

func (m *interactiveModel) reset() {
	m.state = stateMenu
	m.output = ""
	m.err = nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Myanmar Name Encoding System"))
	b.WriteString("\n\n")

	switch m.state {
	case stateMenu:
		for i, item := range menuItems {
			line := fmt.Sprintf("%d. %s", i+1, item)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • 1-4 or enter choose • q quit"))

	case stateName, stateFormat:
		b.WriteString(m.name.View())
		b.WriteString("\n")
		if m.state == stateFormat {
			b.WriteString(m.format.View())
			b.WriteString(" ")
			b.WriteString(helpStyle.Render(joinFormats()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter next • esc back"))

	case stateOutput:
		if m.err != nil {
			b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		} else {
			b.WriteString(m.output)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func renderResult(res mnes.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Original: %s\n", res.Original)
	fmt.Fprintf(&b, "Encoded (%s): %s\n", res.Format, encodedStyle.Render(res.Encoded))
	if len(res.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range res.Warnings {
			b.WriteString(warnStyle.Render("  - "+w) + "\n")
		}
	}
	b.WriteString("\nStatistics:\n")
	fmt.Fprintf(&b, "  Syllables: %d\n", res.SyllableCount)
	fmt.Fprintf(&b, "  Mapped: %d\n", res.MappedCount)
	fmt.Fprintf(&b, "  Compression: %.1f%%", res.CompressionRatio*100)
	return b.String()
}

func renderExport(msg exportedMsg) string {
	if len(msg.rows) == 0 {
		return "History saved to " + msg.path + " (no encodings yet)"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(helpStyle).
		Headers(history.Columns...).
		Rows(msg.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return "History saved to " + msg.path + "\n\nRecent encodings:\n" + t.String()
}

func joinFormats() string {
	formats := romanize.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, "/")
}

func runInteractive(enc *mnes.Encoder, hist *history.Log, historyPath string) error {
	p := tea.NewProgram(newInteractiveModel(enc, hist, historyPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
