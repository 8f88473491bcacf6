package platform

import (
	"encoding/json"

	"github.com/marcelsud/alert-relay/fields"
)

/* Generic posts a flat JSON object: the fallback for plain webhook receivers
 * and the default for unknown platform names.
 */
type Generic struct{}

type genericMessage struct {
	Title  string            `json:"title"`
	Tone   string            `json:"tone"`
	Fields map[string]string `json:"fields"`
	Order  []string          `json:"field_order"`
}

func (g *Generic) Platform() string {
	return "generic"
}

func (g *Generic) Format(m fields.FlatMap) (Result, error) {
	display := displayFields(m)

	msg := genericMessage{
		Title:  title(display),
		Tone:   toneName(ToneOf(m)),
		Fields: make(map[string]string, len(display)),
		Order:  make([]string, 0, len(display)),
	}
	for _, f := range display {
		msg.Fields[f.Label] = f.Value
		msg.Order = append(msg.Order, f.Label)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return Result{}, &TransformError{Platform: g.Platform(), Err: err}
	}

	return Result{Body: body, ContentType: "application/json"}, nil
}

func toneName(tone Tone) string {
	switch tone {
	case ToneCritical:
		return "critical"
	case ToneWarning:
		return "warning"
	case ToneGood:
		return "good"
	default:
		return "none"
	}
}
