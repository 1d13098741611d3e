// Package domain projects raw notes into typed records. Every parser is
// total: a missing, malformed, or wrong-shaped field is replaced by the
// documented default for that field, never reported as an error. This keeps
// hand-edited vault files loadable across schema changes.
package domain

import (
	"strconv"
	"strings"
)

// Record defaults shared across types.
const (
	DefaultStatus   = "active"
	DefaultPriority = "medium"
)

// fieldStr returns fm[key], or def when the key is absent or blank.
func fieldStr(fm map[string]string, key, def string) string {
	v := strings.TrimSpace(fm[key])
	if v == "" {
		return def
	}
	return v
}

// fieldInt parses fm[key] as an integer; any parse failure yields def.
func fieldInt(fm map[string]string, key string, def int) int {
	v := strings.TrimSpace(fm[key])
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// fieldFloat parses fm[key] as a float; any parse failure yields def.
func fieldFloat(fm map[string]string, key string, def float64) float64 {
	v := strings.TrimSpace(fm[key])
	if v == "" {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return n
}

// fieldBool parses fm[key] as a bool; any parse failure yields def.
func fieldBool(fm map[string]string, key string, def bool) bool {
	v := strings.TrimSpace(fm[key])
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// fieldEnum returns fm[key] when it is one of allowed, otherwise def.
func fieldEnum(fm map[string]string, key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(fm[key]))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// fieldTags splits a comma-separated tag field, trimming each element.
// An absent field yields an empty list, not nil and not an error.
func fieldTags(fm map[string]string, key string) []string {
	raw := strings.TrimSpace(fm[key])
	out := []string{}
	if raw == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		t := strings.TrimSpace(part)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
