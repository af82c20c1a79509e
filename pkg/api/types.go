package api

import "encoding/json"

// Field names used both as JSON keys and as form field identifiers.
const (
	FieldEventName      = "eventName"
	FieldEventType      = "eventType"
	FieldGuestCount     = "guestCount"
	FieldBudget         = "budget"
	FieldEventDate      = "eventDate"
	FieldEventObjective = "eventObjective"
	FieldThemeIdea      = "themeIdea"
)

// Submission is the flat record sent to the planner endpoint.
// Every value is passed through verbatim; nothing is parsed client-side.
type Submission struct {
	EventName      string `json:"eventName"`
	EventType      string `json:"eventType"`
	GuestCount     string `json:"guestCount"`
	Budget         string `json:"budget"`
	EventDate      string `json:"eventDate"`
	EventObjective string `json:"eventObjective"`
	ThemeIdea      string `json:"themeIdea,omitempty"`
}

// Get returns the value of the named field.
func (s Submission) Get(name string) (string, bool) {
	switch name {
	case FieldEventName:
		return s.EventName, true
	case FieldEventType:
		return s.EventType, true
	case FieldGuestCount:
		return s.GuestCount, true
	case FieldBudget:
		return s.Budget, true
	case FieldEventDate:
		return s.EventDate, true
	case FieldEventObjective:
		return s.EventObjective, true
	case FieldThemeIdea:
		return s.ThemeIdea, true
	default:
		return "", false
	}
}

// Set assigns the named field. Unknown names report false.
func (s *Submission) Set(name, value string) bool {
	switch name {
	case FieldEventName:
		s.EventName = value
	case FieldEventType:
		s.EventType = value
	case FieldGuestCount:
		s.GuestCount = value
	case FieldBudget:
		s.Budget = value
	case FieldEventDate:
		s.EventDate = value
	case FieldEventObjective:
		s.EventObjective = value
	case FieldThemeIdea:
		s.ThemeIdea = value
	default:
		return false
	}
	return true
}

// Result is the decoded response body. Which fields are populated
// depends on the endpoint and on the HTTP status.
type Result struct {
	Message          *string `json:"mensagem,omitempty"`
	ThemeSuggestions *string `json:"sugestoes_temas,omitempty"`
	CompiledResponse *string `json:"compiled_response,omitempty"`
	Error            *string `json:"erro,omitempty"`
}

// UnmarshalJSON decodes leniently: a key whose value is not a JSON string
// counts as absent, and a body that is valid JSON but not an object carries
// no fields. Only malformed JSON is an error.
func (r *Result) UnmarshalJSON(b []byte) error {
	*r = Result{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		if json.Valid(b) {
			return nil
		}
		return err
	}
	r.Message = stringField(fields, "mensagem")
	r.ThemeSuggestions = stringField(fields, KeyThemeSuggestions)
	r.CompiledResponse = stringField(fields, KeyCompiledResponse)
	r.Error = stringField(fields, "erro")
	return nil
}

func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// Text returns the response-text field named by key. An empty string counts
// as absent.
func (r Result) Text(key string) (string, bool) {
	var p *string
	switch key {
	case KeyThemeSuggestions:
		p = r.ThemeSuggestions
	case KeyCompiledResponse:
		p = r.CompiledResponse
	}
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}

// ErrorText returns the server-supplied error message, if any.
func (r Result) ErrorText() (string, bool) {
	if r.Error == nil || *r.Error == "" {
		return "", false
	}
	return *r.Error, true
}

// Response keys for the success text of each endpoint.
const (
	KeyThemeSuggestions = "sugestoes_temas"
	KeyCompiledResponse = "compiled_response"
)
