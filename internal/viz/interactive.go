package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/soillab/internal/sim"
)

// Entry is a scene offered by the picker.
type Entry struct {
	Name        string
	Description string
	// Load builds the scene and returns it with the id of its tracked plot.
	Load func() (sim.Source, string, error)
}

const (
	stateMenu = iota
	statePreview
)

type backMsg struct{}

func backToMenu() tea.Msg { return backMsg{} }

type model struct {
	state   int
	cursor  int
	entries []Entry
	theme   string
	err     error
	live    Model
}

// NewInteractiveApp returns a picker over entries that opens a preview of
// the chosen scene.
func NewInteractiveApp(entries []Entry, theme string) tea.Model {
	return model{entries: entries, theme: theme}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case backMsg:
		m.state = stateMenu
		m.theme = m.live.theme.Name
		return m, nil
	case tea.KeyMsg:
		if m.state == stateMenu {
			return m.menuKey(msg)
		}
	}
	if m.state == statePreview {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.entries) == 0 {
			return m, nil
		}
		e := m.entries[m.cursor]
		src, plotID, err := e.Load()
		if err != nil {
			m.err = fmt.Errorf("%s: %w", e.Name, err)
			return m, nil
		}
		m.err = nil
		m.live = NewModel(e.Name, src, plotID, m.theme)
		m.live.embedded = true
		m.state = statePreview
		return m, m.live.Init()
	}
	return m, nil
}

func (m model) View() string {
	if m.state == statePreview {
		return m.live.View()
	}
	return m.viewMenu()
}

func (m model) viewMenu() string {
	th := GetTheme(m.theme)
	title := lipgloss.NewStyle().Bold(true).Render(GradientText("SOILLAB", th.Secondary, th.Accent))
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursor := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)
	name := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	desc := lipgloss.NewStyle().Foreground(th.Accent)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))

	var b strings.Builder
	b.WriteString("\n\n    " + title + "\n    " + sub.Render("geotechnical lab test animations") + "\n    " + Separator(25) + "\n\n")
	for i, e := range m.entries {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursor.Render("▸"), name.Render(fmt.Sprintf("%-10s", e.Name)), desc.Render(e.Description)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idle.Render(fmt.Sprintf("  %-10s", e.Name)), idle.Render(e.Description)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter preview  q quit") + "\n")
	return b.String()
}

// RunInteractive starts the scene picker.
func RunInteractive(entries []Entry, theme string) error {
	_, err := tea.NewProgram(NewInteractiveApp(entries, theme), tea.WithAltScreen()).Run()
	return err
}
