package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// LineInput is a single-line prompt for arrival pings, departure
// resonances and short survey answers.
type LineInput struct {
	input textinput.Model
}

func NewLineInput(width int, placeholder string) *LineInput {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetWidth(max(10, width))
	return &LineInput{input: input}
}

func (l *LineInput) Resize(width int) {
	l.input.SetWidth(max(10, width))
}

func (l *LineInput) Focus() {
	l.input.Focus()
}

func (l *LineInput) Blur() {
	l.input.Blur()
}

func (l *LineInput) SetPlaceholder(value string) {
	l.input.Placeholder = value
}

func (l *LineInput) SetValue(value string) {
	l.input.SetValue(value)
}

func (l *LineInput) Value() string {
	return strings.TrimSpace(l.input.Value())
}

func (l *LineInput) Clear() {
	l.input.SetValue("")
}

func (l *LineInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return cmd
}

func (l *LineInput) View() string {
	return l.input.View()
}

// NoteInput is a multi-line area for sonic notes and long-form survey
// answers. Height is clamped between the configured bounds.
type NoteInput struct {
	area      textarea.Model
	minHeight int
	maxHeight int
}

func NewNoteInput(width, minHeight, maxHeight int, placeholder string) *NoteInput {
	if minHeight < 1 {
		minHeight = 1
	}
	if maxHeight < minHeight {
		maxHeight = minHeight
	}
	area := textarea.New()
	area.Placeholder = placeholder
	area.SetWidth(max(10, width))
	area.SetHeight(minHeight)
	return &NoteInput{area: area, minHeight: minHeight, maxHeight: maxHeight}
}

func (n *NoteInput) Resize(width int) {
	n.area.SetWidth(max(10, width))
	n.fitHeight()
}

func (n *NoteInput) Focus() {
	n.area.Focus()
}

func (n *NoteInput) Blur() {
	n.area.Blur()
}

func (n *NoteInput) SetPlaceholder(value string) {
	n.area.Placeholder = value
}

func (n *NoteInput) Value() string {
	return strings.TrimSpace(n.area.Value())
}

func (n *NoteInput) Clear() {
	n.area.SetValue("")
	n.fitHeight()
}

func (n *NoteInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	n.area, cmd = n.area.Update(msg)
	n.fitHeight()
	return cmd
}

func (n *NoteInput) View() string {
	return n.area.View()
}

func (n *NoteInput) fitHeight() {
	lines := n.area.LineCount()
	if lines < n.minHeight {
		lines = n.minHeight
	}
	if lines > n.maxHeight {
		lines = n.maxHeight
	}
	n.area.SetHeight(lines)
}
