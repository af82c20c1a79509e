package format

import (
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Submission.EventName}}{{.Submission.EventName}} · {{end}}Event planner</title>
<style>
body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;line-height:1.5}
dl{display:grid;grid-template-columns:max-content 1fr;gap:.25rem 1rem}
dt{font-weight:600}
#errorMessage{color:#b00020;font-weight:600}
#output.plain{white-space:pre-wrap}
</style>
</head>
<body>
<h1>{{if .Submission.EventName}}{{.Submission.EventName}}{{else}}Event planner{{end}}</h1>
<dl id="submission">
{{range .Fields}}<dt>{{.Name}}</dt><dd>{{.Value}}</dd>
{{end}}</dl>
<section id="results">
{{if .Error}}<p id="errorMessage">{{.Error}}</p>
{{else if .Markup}}<div id="output">{{.Markup}}</div>
{{else}}<div id="output" class="plain">{{.Text}}</div>
{{end}}</section>
<footer><small>{{.Variant}} · {{.Endpoint}} · {{.Fingerprint}}</small></footer>
</body>
</html>
`))

type pageField struct {
	Name  string
	Value string
}

type pageData struct {
	Outcome
	Fields  []pageField
	Text    string
	Variant string
	// Markup shadows Outcome.Markup with the trusted HTML to embed.
	Markup template.HTML
}

// WriteHTML writes a standalone page for the outcome. o.Output must already be
// sanitized HTML when o.Markup is set; literal text is escaped.
func WriteHTML(w io.Writer, o Outcome) error {
	d := pageData{Outcome: o, Variant: o.Variant.Name}
	for _, f := range o.Variant.Fields {
		val, _ := o.Submission.Get(f)
		d.Fields = append(d.Fields, pageField{Name: f, Value: val})
	}
	if o.Failed() {
		return pageTmpl.Execute(w, d)
	}
	if o.Markup {
		d.Markup = template.HTML(o.Output)
	} else {
		d.Text = o.Output
	}
	return pageTmpl.Execute(w, d)
}
