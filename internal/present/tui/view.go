package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/eventwizard/internal/wizard"
)

// programView adapts the controller's view port to a running Bubble Tea
// program. Field values are a snapshot taken when the submission starts;
// every update is forwarded as a message so the model stays single-owner.
type programView struct {
	mu     sync.Mutex
	fields map[string]string
	send   func(tea.Msg)
}

func newProgramView(fields []string) *programView {
	v := &programView{fields: make(map[string]string, len(fields)), send: func(tea.Msg) {}}
	for _, f := range fields {
		v.fields[f] = ""
	}
	return v
}

func (v *programView) snapshot(values map[string]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for k, val := range values {
		v.fields[k] = val
	}
}

func (v *programView) Field(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fields[name]
}

func (v *programView) HasField(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.fields[name]
	return ok
}

func (v *programView) SetVisible(r wizard.Region, visible bool) {
	v.send(visibleMsg{region: r, visible: visible})
}

func (v *programView) SetText(r wizard.Region, text string) {
	v.send(contentMsg{region: r, text: text})
}

func (v *programView) SetMarkup(r wizard.Region, markup string) {
	v.send(contentMsg{region: r, text: markup, markup: true})
}

func (v *programView) SetEnabled(c wizard.Control, enabled bool) {
	v.send(enabledMsg{control: c, enabled: enabled})
}
