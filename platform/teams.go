package platform

import (
	"encoding/json"

	"github.com/marcelsud/alert-relay/fields"
)

/* Teams renders the legacy MessageCard format, still the lingua franca of
 * Teams incoming webhook connectors.
 */
type Teams struct{}

type teamsCard struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Summary    string         `json:"summary"`
	Sections   []teamsSection `json:"sections"`
}

type teamsSection struct {
	ActivityTitle string      `json:"activityTitle"`
	Facts         []teamsFact `json:"facts"`
	Markdown      bool        `json:"markdown"`
}

type teamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (t *Teams) Platform() string {
	return "teams"
}

func (t *Teams) Format(m fields.FlatMap) (Result, error) {
	display := displayFields(m)

	section := teamsSection{
		ActivityTitle: title(display),
		Facts:         make([]teamsFact, 0, len(display)),
		Markdown:      false,
	}
	for _, f := range display {
		section.Facts = append(section.Facts, teamsFact{Name: f.Label, Value: f.Value})
	}

	body, err := json.Marshal(teamsCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: teamsColor(ToneOf(m)),
		Summary:    title(display),
		Sections:   []teamsSection{section},
	})
	if err != nil {
		return Result{}, &TransformError{Platform: t.Platform(), Err: err}
	}

	return Result{Body: body, ContentType: "application/json"}, nil
}

func teamsColor(tone Tone) string {
	switch tone {
	case ToneCritical:
		return "D00000"
	case ToneWarning:
		return "FFA500"
	case ToneGood:
		return "2EB886"
	default:
		return "95A5A6"
	}
}
