package platform

import (
	"encoding/json"

	"github.com/marcelsud/alert-relay/fields"
)

/* Slack renders the incoming webhook attachment format.
 * https://api.slack.com/messaging/webhooks
 */
type Slack struct{}

type slackMessage struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color  string       `json:"color,omitempty"`
	Fields []slackField `json:"fields"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func (s *Slack) Platform() string {
	return "slack"
}

func (s *Slack) Format(m fields.FlatMap) (Result, error) {
	display := displayFields(m)

	attachment := slackAttachment{
		Color:  slackColor(ToneOf(m)),
		Fields: make([]slackField, 0, len(display)),
	}
	for _, f := range display {
		attachment.Fields = append(attachment.Fields, slackField{
			Title: f.Label,
			Value: f.Value,
			Short: len(f.Value) <= 40,
		})
	}

	body, err := json.Marshal(slackMessage{
		Text:        title(display),
		Attachments: []slackAttachment{attachment},
	})
	if err != nil {
		return Result{}, &TransformError{Platform: s.Platform(), Err: err}
	}

	return Result{Body: body, ContentType: "application/json"}, nil
}

func slackColor(tone Tone) string {
	switch tone {
	case ToneCritical:
		return "danger"
	case ToneWarning:
		return "warning"
	case ToneGood:
		return "good"
	default:
		return ""
	}
}
