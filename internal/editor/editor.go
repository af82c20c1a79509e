package editor

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mithrel/eventwizard/pkg/api"
)

// Labels maps form fields to the "Label: value" prefixes used in the editor
// template. The objective is written as the free-form body instead.
var Labels = map[string]string{
	api.FieldEventName:  "Event name",
	api.FieldEventType:  "Event type",
	api.FieldGuestCount: "Guest count",
	api.FieldBudget:     "Budget",
	api.FieldEventDate:  "Event date",
	api.FieldThemeIdea:  "Theme idea",
}

// ComposeForm creates the text presented to the editor for variant v,
// prefilled from s.
func ComposeForm(v api.Variant, s api.Submission) string {
	var b bytes.Buffer
	b.WriteString("# Event planner submission (" + v.Name + ")\n")
	b.WriteString("# Lines starting with '#' are ignored.\n")
	b.WriteString("# Fill in each field. After '---', describe the main objective of the event.\n")
	for _, f := range v.Fields {
		label, ok := Labels[f]
		if !ok {
			continue
		}
		val, _ := s.Get(f)
		b.WriteString(label + ": " + val + "\n")
	}
	b.WriteString("---\n")
	if s.EventObjective != "" {
		body := s.EventObjective
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		b.WriteString(body)
	}
	return b.String()
}

// ParseForm extracts field values from editor output. Unknown header lines
// are ignored. Values keep their own whitespace: only the single space after
// the colon and the final newline of the body are dropped.
func ParseForm(s string) api.Submission {
	byLabel := make(map[string]string, len(Labels))
	for f, label := range Labels {
		byLabel[strings.ToLower(label)] = f
	}

	var out api.Submission
	inBody := false
	var bodyLines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if inBody {
			bodyLines = append(bodyLines, line)
			continue
		}
		trim := strings.TrimSpace(line)
		if strings.HasPrefix(trim, "#") {
			continue
		}
		if trim == "---" {
			inBody = true
			continue
		}
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if f, known := byLabel[strings.ToLower(strings.TrimSpace(label))]; known {
			out.Set(f, strings.TrimPrefix(value, " "))
		}
	}
	out.EventObjective = strings.TrimSuffix(strings.Join(bodyLines, "\n"), "\n")
	return out
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// PathFor returns a temp file path for a draft identified by id.
func PathFor(id string) (string, error) {
	name := sanitize(id) + ".eventwizard.txt"
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "eventwizard", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "eventwizard", "edit", name), nil
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "draft"
	}
	return b.String()
}

func writeFile0600(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, fs.FileMode(0o600))
}

// OpenAt opens the editor at path with initial content and returns final bytes and whether it changed.
func OpenAt(path string, initial []byte) (final []byte, changed bool, err error) {
	if err := writeFile0600(path, initial); err != nil {
		return nil, false, err
	}
	// Honor VISUAL/EDITOR including flags by running via a shell wrapper.
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	var cmd *exec.Cmd
	if strings.TrimSpace(ed) != "" {
		cmd = exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	} else {
		prog, err := PreferredEditor()
		if err != nil {
			return nil, false, err
		}
		cmd = exec.Command(prog, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}
