package wizard

// Region identifies a display area the controller toggles or fills.
type Region string

const (
	RegionResults Region = "results"
	RegionLoading Region = "loading"
	RegionOverlay Region = "overlay"
	RegionOutput  Region = "output"
	RegionError   Region = "error"
)

// Control identifies an interactive control.
type Control string

const ControlSubmit Control = "submit"

// View is the port the controller drives. Implementations map regions and
// fields onto whatever surface they render to.
type View interface {
	// Field returns the current value of a named form field.
	Field(name string) string
	SetVisible(r Region, visible bool)
	// SetText assigns literal text; implementations must not interpret markup.
	SetText(r Region, text string)
	// SetMarkup assigns content already rendered for this view.
	SetMarkup(r Region, markup string)
	SetEnabled(c Control, enabled bool)
}

// FieldChecker is implemented by views that can tell up front which fields
// they serve. New uses it to refuse a view that lacks a required field.
type FieldChecker interface {
	HasField(name string) bool
}

// Values is a map-backed field source, handy for non-interactive views.
type Values map[string]string

func (v Values) Field(name string) string { return v[name] }

func (v Values) HasField(name string) bool {
	_, ok := v[name]
	return ok
}
