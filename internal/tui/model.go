// Package tui implements the interactive contact browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/book"
)

// helpBarHeight is the number of lines reserved for the status line and help bar.
const helpBarHeight = 2

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the Bubble Tea model for browsing an AddressBook.
// The left pane lists contact names; the right pane shows the selected contact.
type Model struct {
	book   *book.AddressBook
	names  []string
	cursor int
	status string
	width  int
	height int
	keys   KeyMap
	help   help.Model
}

// NewModel creates a Model over b with the cursor on the first contact.
func NewModel(b *book.AddressBook) Model {
	return Model{
		book:  b,
		names: b.Names(),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if len(m.names) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.names) - 1
			}
		}

	case key.Matches(msg, m.keys.Down):
		if len(m.names) > 0 {
			m.cursor++
			if m.cursor >= len(m.names) {
				m.cursor = 0
			}
		}

	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelected(), nil
	}

	return m, nil
}

// deleteSelected removes the selected contact from the book and refreshes the list.
func (m Model) deleteSelected() Model {
	name := m.SelectedName()
	if name == "" {
		return m
	}
	msg, err := m.book.Delete(name)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.status = msg
	m.names = m.book.Names()
	if m.cursor >= len(m.names) {
		m.cursor = len(m.names) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// SelectedName returns the contact name at the cursor, or "" if the list is empty.
func (m Model) SelectedName() string {
	if len(m.names) == 0 || m.cursor < 0 || m.cursor >= len(m.names) {
		return ""
	}
	return m.names[m.cursor]
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the two-pane layout with status line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	leftPane := FocusedBorder().
		Width(leftWidth - borderChrome).
		Height(contentHeight).
		Render(m.viewList())
	rightPane := UnfocusedBorder().
		Width(rightWidth - borderChrome).
		Height(contentHeight).
		Render(m.viewDetail())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	return lipgloss.JoinVertical(lipgloss.Left,
		panes,
		mutedText.Render(m.status),
		m.help.View(m.keys),
	)
}

// viewList renders the contact names with the cursor marker.
func (m Model) viewList() string {
	if len(m.names) == 0 {
		return mutedText.Render("No contacts saved")
	}

	var b strings.Builder
	for i, name := range m.names {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == m.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(name)
	}
	return b.String()
}

// viewDetail renders the phones of the selected contact.
func (m Model) viewDetail() string {
	name := m.SelectedName()
	if name == "" {
		return ""
	}
	rec, err := m.book.Find(name)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}

	var b strings.Builder
	b.WriteString(titleText.Render(rec.Name().String()))
	b.WriteString("\n\n")
	phones := rec.Phones()
	if len(phones) == 0 {
		b.WriteString(mutedText.Render("No phones"))
		return b.String()
	}
	for i, p := range phones {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, p)
	}
	return b.String()
}
