package tui

import (
	"github.com/mithrel/eventwizard/internal/wizard"
)

// visibleMsg mirrors wizard.View.SetVisible.
type visibleMsg struct {
	region  wizard.Region
	visible bool
}

// contentMsg mirrors SetText and SetMarkup. markup is false for literal text.
type contentMsg struct {
	region wizard.Region
	text   string
	markup bool
}

// enabledMsg mirrors wizard.View.SetEnabled.
type enabledMsg struct {
	control wizard.Control
	enabled bool
}

// submitDoneMsg conveys that a controller run has returned.
type submitDoneMsg struct {
	err error
}
