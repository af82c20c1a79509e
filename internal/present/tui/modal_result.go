package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// resultModal is a foreground modal showing the full response inside a
// scrollable viewport.
type resultModal struct {
	title   string
	vp      viewport.Model
	width   int
	height  int
	padX    int
	padY    int
	box     lipglossv2.Style
	content string
	markup  bool
}

func newResultModal(title, content string, markup bool, termW, termH int) *resultModal {
	m := &resultModal{title: title, padX: 2, padY: 1, markup: markup}
	m.content = content
	m.resizeForTerm(termW, termH)
	return m
}

func (m *resultModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	// 70% width, or nearly full width if terminal is small (<80 cols)
	w := int(float64(termW) * 0.7)
	if termW < 80 {
		w = termW - 4
	}
	if w < 40 {
		w = max(32, termW-2)
	}
	h := int(float64(termH) * 0.8)
	if termH < 20 {
		h = termH - 2
	}
	if h < 10 {
		h = max(8, termH-1)
	}
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := w - 2 - m.padX*2 // borders + padding
	innerH := h - 2 - m.padY*2 - 2
	if innerW < 10 {
		innerW = 10
	}
	if innerH < 3 {
		innerH = 3
	}
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	m.vp.SetContent(wrapText(m.content, innerW, m.markup))
}

func (m *resultModal) update(msg tea.Msg) (*resultModal, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.resizeForTerm(x.Width, x.Height)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *resultModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.title)
	return m.box.Render(header + "\n\n" + m.vp.View())
}
