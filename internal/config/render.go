package config

import (
	"fmt"
	"sort"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var lines []string
	lines = append(lines, "# eventwizard configuration (TOML)", "")

	top, sections, order := groupOptions(GetConfigOptions())
	for _, o := range top {
		writeOption(&lines, o)
	}
	for _, section := range order {
		lines = append(lines, "["+section+"]")
		for _, o := range sections[section] {
			writeOption(&lines, o)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML merges defaults missing from an existing TOML string and
// comments out keys the schema no longer knows. Missing keys of a section
// that already exists are inserted into that section. It reports whether
// anything changed.
func UpdateTOML(existing string) (string, bool) {
	opts := GetConfigOptions()
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	section := ""
	firstHeader := -1
	sectionEnd := make(map[string]int)
	out := make([]string, 0)
	changed := false

	for _, line := range strings.Split(existing, "\n") {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			out = append(out, line)
			continue
		}
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			if firstHeader < 0 {
				firstHeader = len(out)
			}
			out = append(out, line)
			sectionEnd[section] = len(out)
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			continue
		}
		if section != "" {
			key = section + "." + key
		}
		seen[key] = true
		if !known[key] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema")
			out = append(out, indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
		} else {
			out = append(out, line)
		}
		if section != "" {
			sectionEnd[section] = len(out)
		}
	}

	missing := make([]ConfigOption, 0)
	for _, o := range opts {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	type insertion struct {
		at    int
		lines []string
	}
	var inserts []insertion
	var tail []string

	top, sections, order := groupOptions(missing)
	if len(top) > 0 {
		lines := []string{"# Added by config update"}
		for _, o := range top {
			writeOption(&lines, o)
		}
		if firstHeader < 0 {
			tail = append(tail, lines...)
		} else {
			inserts = append(inserts, insertion{at: firstHeader, lines: lines})
		}
	}
	for _, s := range order {
		lines := make([]string, 0)
		for _, o := range sections[s] {
			writeOption(&lines, o)
		}
		if at, ok := sectionEnd[s]; ok {
			inserts = append(inserts, insertion{at: at, lines: append([]string{"# Added by config update"}, lines...)})
			continue
		}
		tail = append(tail, "", "# Added by config update", "["+s+"]")
		tail = append(tail, lines...)
	}

	// Splice from the back so earlier indices stay valid.
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	for _, ins := range inserts {
		rest := append(ins.lines, out[ins.at:]...)
		out = append(out[:ins.at], rest...)
	}
	out = append(out, tail...)

	return strings.Join(out, "\n"), true
}

// groupOptions splits dotted keys into TOML sections, keeping first-seen order.
func groupOptions(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	top := make([]ConfigOption, 0, len(opts))
	sections := make(map[string][]ConfigOption)
	order := make([]string, 0)
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, seen := sections[section]; !seen {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func writeOption(lines *[]string, o ConfigOption) {
	if o.Comment != "" {
		*lines = append(*lines, "# "+o.Comment)
	}
	*lines = append(*lines, fmt.Sprintf("%s = %s", o.Key, tomlValue(o.Default)), "")
}

func tomlValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
