// Package note reads and writes vault Markdown files, splitting YAML
// frontmatter from the body. Frontmatter is exposed as a flat string map:
// every domain format in the vault is a set of scalar fields, so values are
// stringified on read and each domain parser applies its own typed
// defaulting on top.
package note

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Leochens/LifeOs-sub001/internal/storage"
)

// Note is one vault file: flat frontmatter plus free-form body.
type Note struct {
	Path        string            `json:"path"`
	Filename    string            `json:"filename"`
	Frontmatter map[string]string `json:"frontmatter"`
	Content     string            `json:"content"`
	Modified    time.Time         `json:"modified"`
}

// Read loads and parses the note at path. It fails only when the file
// cannot be read; malformed or absent frontmatter yields an empty map.
func Read(store storage.Provider, path string) (*Note, error) {
	data, err := store.Read(path)
	if err != nil {
		return nil, err
	}
	info, statErr := store.Stat(path)
	var modified time.Time
	if statErr == nil {
		modified = info.Modified
	}
	fm, body := Split(data)
	return &Note{
		Path:        path,
		Filename:    filepath.Base(path),
		Frontmatter: fm,
		Content:     body,
		Modified:    modified,
	}, nil
}

// Split separates the leading --- delimited frontmatter block from the body.
// Unparseable or absent frontmatter yields an empty map and the full input
// as body, never an error.
func Split(data []byte) (map[string]string, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return map[string]string{}, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter — treat everything as body.
		return map[string]string{}, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var raw map[string]any
	if err := yaml.Unmarshal(yamlBlock, &raw); err != nil {
		// Invalid YAML — whole file becomes body.
		return map[string]string{}, string(data)
	}

	fm := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := flatten(v); ok {
			fm[k] = s
		}
	}
	return fm, body
}

// flatten stringifies a decoded YAML value. Sequences of scalars are joined
// with ", " (the comma-separated list convention used by tag fields); nested
// mappings have no flat representation and are dropped.
func flatten(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case time.Time:
		// yaml.v3 resolves bare ISO dates to time.Time; keep the textual form.
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02"), true
		}
		return t.Format(time.RFC3339), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := flatten(item)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}

// Encode renders a note with frontmatter keys emitted in the given order.
// Keys absent from fm are skipped, so callers can pass a full canonical key
// list and only set fields carry through.
func Encode(keys []string, fm map[string]string, body string) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	for _, k := range keys {
		v, ok := fm[k]
		if !ok {
			continue
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(quote(v))
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return []byte(b.String())
}

// quote renders a scalar value so that the emitted block re-parses to the
// same string. Plain values stay bare; everything else is double-quoted.
func quote(v string) string {
	if v == "" {
		return `""`
	}
	if needsQuoting(v) {
		return fmt.Sprintf("%q", v)
	}
	return v
}

func needsQuoting(v string) bool {
	if strings.ContainsAny(v, ":#\"'\n{}[]&*!|>%@`") {
		return true
	}
	if v != strings.TrimSpace(v) {
		return true
	}
	// Values that YAML would resolve to a non-string type keep their
	// textual form either way, so they can stay bare.
	return false
}

// Title returns the frontmatter title if present, otherwise the first H1
// heading of the body, otherwise the empty string.
func Title(fm map[string]string, body string) string {
	if t := strings.TrimSpace(fm["title"]); t != "" {
		return t
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
