package platform

import (
	"strings"

	"github.com/marcelsud/alert-relay/fields"
)

/* Tone is the heuristic status classification used to color-code outgoing
 * messages: failed/normal/warning derived from payload fields.
 */
type Tone int

const (
	ToneDefault Tone = iota
	ToneGood
	ToneWarning
	ToneCritical
)

/* ToneOf derives the tone from a FlatMap.
 * QualitativeNewState takes precedence; Status/Severity substring matching
 * is the fallback; otherwise the platform default applies.
 */
func ToneOf(m fields.FlatMap) Tone {
	if value, ok := lookupFold(m, "QualitativeNewState"); ok {
		switch strings.ToLower(value) {
		case "failed", "failure":
			return ToneCritical
		case "normal", "ok":
			return ToneGood
		case "warning", "warn":
			return ToneWarning
		}
	}

	for _, key := range []string{"Status", "Severity"} {
		value, ok := lookupFold(m, key)
		if !ok {
			continue
		}
		lower := strings.ToLower(value)
		switch {
		case containsAny(lower, "error", "failed", "critical"):
			return ToneCritical
		case strings.Contains(lower, "warn"):
			return ToneWarning
		case containsAny(lower, "ok", "success", "resolved", "normal"):
			return ToneGood
		}
	}

	return ToneDefault
}

// lookupFold finds a value whose key's last path segment matches name case-insensitively
func lookupFold(m fields.FlatMap, name string) (string, bool) {
	for _, key := range m.Keys() {
		segment := key
		if idx := strings.LastIndex(key, "."); idx >= 0 {
			segment = key[idx+1:]
		}
		if strings.EqualFold(segment, name) {
			value, _ := m.Get(key)
			return value, true
		}
	}
	return "", false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
