package platform

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/marcelsud/alert-relay/fields"
)

/* Formatter turns a filtered FlatMap into a platform-specific outgoing body.
 * The platform set is closed; each platform is one implementation, so adding
 * a platform is additive rather than another branch in a conditional chain.
 */

// Display limits respecting downstream payload caps
const (
	MaxDisplayFields = 15
	MaxValueLength   = 200
)

// Result is the outgoing body and its content type
type Result struct {
	Body        []byte
	ContentType string
}

// Formatter builds the outgoing body for one platform
type Formatter interface {
	Platform() string
	Format(m fields.FlatMap) (Result, error)
}

// TransformError indicates a formatter could not build a platform body.
// It is recorded as a failed transformation on that attempt only.
type TransformError struct {
	Platform string
	Err      error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("formatting for %s: %v", e.Platform, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// ForPlatform returns the formatter for a platform name.
// Unknown platforms fall back to the generic JSON formatter.
func ForPlatform(name string) Formatter {
	switch strings.ToLower(name) {
	case "slack":
		return &Slack{}
	case "discord":
		return &Discord{}
	case "teams", "msteams":
		return &Teams{}
	default:
		return &Generic{}
	}
}

// displayField is one labeled key/value pair ready for rendering
type displayField struct {
	Label string
	Value string
}

/* Well-known field-name aliases promoted ahead of the generic key dump.
 * Matched case-insensitively against the last path segment of each key.
 */
var promotedAliases = []struct {
	Label   string
	Aliases []string
}{
	{"Device", []string{"devicename", "device", "host", "hostname"}},
	{"Customer", []string{"customer", "customername", "client"}},
	{"Task", []string{"taskid", "task", "jobid", "ticketid"}},
	{"Message", []string{"message", "msg", "messagetext"}},
	{"Status", []string{"status", "laststatus"}},
	{"Severity", []string{"severity", "priority"}},
	{"Time", []string{"datetime", "timestamp", "sendtime"}},
}

/* displayFields orders the output: promoted aliases first, then everything
 * else in extraction order, capped at MaxDisplayFields, values truncated to
 * MaxValueLength with an ellipsis marker. Absent data is simply omitted.
 */
func displayFields(m fields.FlatMap) []displayField {
	used := make(map[string]bool)
	var out []displayField

	for _, promo := range promotedAliases {
		for _, key := range m.Keys() {
			if used[key] || !matchesAlias(key, promo.Aliases) {
				continue
			}
			value, _ := m.Get(key)
			if value == "" {
				continue
			}
			used[key] = true
			out = append(out, displayField{Label: promo.Label, Value: truncate(value)})
			break
		}
	}

	for _, key := range m.Keys() {
		if len(out) >= MaxDisplayFields {
			break
		}
		if used[key] {
			continue
		}
		value, _ := m.Get(key)
		if value == "" {
			continue
		}
		out = append(out, displayField{Label: key, Value: truncate(value)})
	}

	if len(out) > MaxDisplayFields {
		out = out[:MaxDisplayFields]
	}
	return out
}

// matchesAlias compares the last path segment of a key against alias names
func matchesAlias(key string, aliases []string) bool {
	segment := key
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		segment = key[idx+1:]
	}
	segment = strings.ToLower(segment)
	for _, alias := range aliases {
		if segment == alias {
			return true
		}
	}
	return false
}

// truncate caps a value at MaxValueLength runes with an ellipsis marker
func truncate(value string) string {
	if utf8.RuneCountInString(value) <= MaxValueLength {
		return value
	}
	runes := []rune(value)
	return string(runes[:MaxValueLength]) + "…"
}

// title derives a short headline from the promoted fields
func title(fields []displayField) string {
	var device, message string
	for _, f := range fields {
		switch f.Label {
		case "Device":
			device = f.Value
		case "Message":
			message = f.Value
		}
	}
	switch {
	case device != "" && message != "":
		return device + ": " + message
	case device != "":
		return device
	case message != "":
		return message
	default:
		return "Notification"
	}
}
