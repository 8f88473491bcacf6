package platform

import (
	"encoding/json"

	"github.com/marcelsud/alert-relay/fields"
)

/* Discord renders the webhook embed format.
 * https://discord.com/developers/docs/resources/webhook
 */
type Discord struct{}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color,omitempty"`
	Fields []discordField `json:"fields"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

func (d *Discord) Platform() string {
	return "discord"
}

func (d *Discord) Format(m fields.FlatMap) (Result, error) {
	display := displayFields(m)

	embed := discordEmbed{
		Title:  title(display),
		Color:  discordColor(ToneOf(m)),
		Fields: make([]discordField, 0, len(display)),
	}
	for _, f := range display {
		embed.Fields = append(embed.Fields, discordField{
			Name:   f.Label,
			Value:  f.Value,
			Inline: len(f.Value) <= 40,
		})
	}

	body, err := json.Marshal(discordMessage{Embeds: []discordEmbed{embed}})
	if err != nil {
		return Result{}, &TransformError{Platform: d.Platform(), Err: err}
	}

	return Result{Body: body, ContentType: "application/json"}, nil
}

// Discord embed colors are decimal RGB
func discordColor(tone Tone) int {
	switch tone {
	case ToneCritical:
		return 0xd00000
	case ToneWarning:
		return 0xffa500
	case ToneGood:
		return 0x2eb886
	default:
		return 0x95a5a6
	}
}
