package api

import (
	"fmt"
	"strings"
)

// Variant describes one planner endpoint and how its answer is displayed.
type Variant struct {
	Name      string
	Path      string
	ResultKey string
	// Markdown marks the response text as Markdown source rather than plain text.
	Markdown bool
	// Overlay shows a full-screen loading overlay instead of an inline indicator.
	Overlay bool
	// Fields lists the form fields sent to this endpoint, in form order.
	Fields []string
}

var baseFields = []string{
	FieldEventName,
	FieldEventType,
	FieldGuestCount,
	FieldBudget,
	FieldEventDate,
	FieldEventObjective,
}

var (
	VariantThemes = Variant{
		Name:      "themes",
		Path:      "/api/suggest_themes",
		ResultKey: KeyThemeSuggestions,
		Fields:    append(append([]string(nil), baseFields...), FieldThemeIdea),
	}
	VariantCompile = Variant{
		Name:      "compile",
		Path:      "/api/compile_responses",
		ResultKey: KeyCompiledResponse,
		Markdown:  true,
		Overlay:   true,
		Fields:    append([]string(nil), baseFields...),
	}
)

// Variants returns the known variants in display order.
func Variants() []Variant {
	return []Variant{VariantThemes, VariantCompile}
}

// VariantNames returns the names accepted by ParseVariant.
func VariantNames() []string {
	vs := Variants()
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Name)
	}
	return out
}

// ParseVariant resolves a variant by name (case-insensitive).
func ParseVariant(name string) (Variant, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, v := range Variants() {
		if v.Name == n {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown variant %q (want one of %s)", name, strings.Join(VariantNames(), ", "))
}

// Has reports whether the variant sends the named field.
func (v Variant) Has(field string) bool {
	for _, f := range v.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Payload returns the request body for s: exactly the fields this variant
// sends, each one present even when empty.
func (v Variant) Payload(s Submission) map[string]string {
	out := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		out[f], _ = s.Get(f)
	}
	return out
}
