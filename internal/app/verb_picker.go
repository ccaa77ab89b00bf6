package app

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"arrive/internal/journey"
)

type verbItem struct {
	name    string
	whisper string
}

func (v verbItem) Title() string {
	return strings.ToUpper(v.name) + " :: " + v.whisper
}

func (v verbItem) Description() string {
	return ""
}

func (v verbItem) FilterValue() string {
	return v.name
}

type verbDelegate struct{}

func (d verbDelegate) Height() int  { return 1 }
func (d verbDelegate) Spacing() int { return 0 }
func (d verbDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d verbDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(verbItem)
	if !ok {
		return
	}
	label := truncateToWidth(entry.Title(), m.Width())
	style := sessionStyle
	if index == m.Index() {
		style = selectedStyle
	}
	io.WriteString(w, style.Render(label))
}

// VerbPicker presents the seven verbrations for the gate-deck choice.
type VerbPicker struct {
	list list.Model
}

func NewVerbPicker(width, height int) *VerbPicker {
	verbs := journey.Verbs()
	items := make([]list.Item, 0, len(verbs))
	for _, verb := range verbs {
		items = append(items, verbItem{name: verb.Name, whisper: verb.Whisper})
	}
	mlist := list.New(items, verbDelegate{}, width, height)
	mlist.SetShowHelp(false)
	mlist.SetFilteringEnabled(false)
	mlist.SetShowPagination(false)
	mlist.SetShowStatusBar(false)
	mlist.SetShowTitle(false)
	return &VerbPicker{list: mlist}
}

func (p *VerbPicker) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

func (p *VerbPicker) Move(delta int) {
	if delta < 0 {
		p.list.CursorUp()
	} else if delta > 0 {
		p.list.CursorDown()
	}
}

func (p *VerbPicker) Selected() string {
	item, ok := p.list.SelectedItem().(verbItem)
	if !ok {
		return ""
	}
	return item.name
}

func (p *VerbPicker) View() string {
	return p.list.View()
}
