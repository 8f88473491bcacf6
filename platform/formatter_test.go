package platform_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/marcelsud/alert-relay/fields"
	"github.com/marcelsud/alert-relay/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(pairs ...string) fields.FlatMap {
	m := fields.NewFlatMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func TestForPlatform(t *testing.T) {
	assert.Equal(t, "slack", platform.ForPlatform("Slack").Platform())
	assert.Equal(t, "discord", platform.ForPlatform("discord").Platform())
	assert.Equal(t, "teams", platform.ForPlatform("msteams").Platform())
	assert.Equal(t, "generic", platform.ForPlatform("").Platform())
	assert.Equal(t, "generic", platform.ForPlatform("something-else").Platform())
}

func TestToneOf(t *testing.T) {
	t.Run("qualitative state takes precedence", func(t *testing.T) {
		m := flat("QualitativeNewState", "Failed", "Status", "everything ok")
		assert.Equal(t, platform.ToneCritical, platform.ToneOf(m))
	})

	t.Run("qualitative state is case-insensitive", func(t *testing.T) {
		m := flat("qualitativenewstate", "NORMAL")
		assert.Equal(t, platform.ToneGood, platform.ToneOf(m))
	})

	t.Run("qualitative warning", func(t *testing.T) {
		m := flat("QualitativeNewState", "warning")
		assert.Equal(t, platform.ToneWarning, platform.ToneOf(m))
	})

	t.Run("status substring fallback", func(t *testing.T) {
		assert.Equal(t, platform.ToneCritical, platform.ToneOf(flat("Status", "Connection error")))
		assert.Equal(t, platform.ToneWarning, platform.ToneOf(flat("Status", "Warning (limit)")))
		assert.Equal(t, platform.ToneGood, platform.ToneOf(flat("Status", "Resolved")))
	})

	t.Run("severity fallback", func(t *testing.T) {
		assert.Equal(t, platform.ToneCritical, platform.ToneOf(flat("Severity", "critical")))
	})

	t.Run("nested keys match on last segment", func(t *testing.T) {
		m := flat("sensor.Status", "failed")
		assert.Equal(t, platform.ToneCritical, platform.ToneOf(m))
	})

	t.Run("default when nothing matches", func(t *testing.T) {
		assert.Equal(t, platform.ToneDefault, platform.ToneOf(flat("foo", "bar")))
	})
}

func TestSlackFormat(t *testing.T) {
	m := flat(
		"devicename", "SRV-01",
		"message", "disk full",
		"QualitativeNewState", "failed",
	)

	result, err := platform.ForPlatform("slack").Format(m)

	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)

	var parsed struct {
		Text        string `json:"text"`
		Attachments []struct {
			Color  string `json:"color"`
			Fields []struct {
				Title string `json:"title"`
				Value string `json:"value"`
			} `json:"fields"`
		} `json:"attachments"`
	}
	require.NoError(t, json.Unmarshal(result.Body, &parsed))
	assert.Equal(t, "SRV-01: disk full", parsed.Text)
	require.Len(t, parsed.Attachments, 1)
	assert.Equal(t, "danger", parsed.Attachments[0].Color)
	// Promoted aliases lead the field list
	require.NotEmpty(t, parsed.Attachments[0].Fields)
	assert.Equal(t, "Device", parsed.Attachments[0].Fields[0].Title)
	assert.Equal(t, "SRV-01", parsed.Attachments[0].Fields[0].Value)
}

func TestDiscordFormat(t *testing.T) {
	m := flat("devicename", "SRV-01", "Status", "ok")

	result, err := platform.ForPlatform("discord").Format(m)

	require.NoError(t, err)

	var parsed struct {
		Embeds []struct {
			Title string `json:"title"`
			Color int    `json:"color"`
		} `json:"embeds"`
	}
	require.NoError(t, json.Unmarshal(result.Body, &parsed))
	require.Len(t, parsed.Embeds, 1)
	assert.Equal(t, "SRV-01", parsed.Embeds[0].Title)
	assert.Equal(t, 0x2eb886, parsed.Embeds[0].Color)
}

func TestTeamsFormat(t *testing.T) {
	m := flat("message", "backup completed", "Status", "success")

	result, err := platform.ForPlatform("teams").Format(m)

	require.NoError(t, err)

	var parsed struct {
		Type       string `json:"@type"`
		ThemeColor string `json:"themeColor"`
		Sections   []struct {
			Facts []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"facts"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(result.Body, &parsed))
	assert.Equal(t, "MessageCard", parsed.Type)
	assert.Equal(t, "2EB886", parsed.ThemeColor)
	require.Len(t, parsed.Sections, 1)
	assert.NotEmpty(t, parsed.Sections[0].Facts)
}

func TestGenericFormat(t *testing.T) {
	t.Run("includes all fields with order", func(t *testing.T) {
		m := flat("a", "1", "b", "2")

		result, err := platform.ForPlatform("generic").Format(m)

		require.NoError(t, err)

		var parsed struct {
			Tone   string            `json:"tone"`
			Fields map[string]string `json:"fields"`
			Order  []string          `json:"field_order"`
		}
		require.NoError(t, json.Unmarshal(result.Body, &parsed))
		assert.Equal(t, "none", parsed.Tone)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, parsed.Fields)
		assert.Equal(t, []string{"a", "b"}, parsed.Order)
	})

	t.Run("empty map formats without error", func(t *testing.T) {
		result, err := platform.ForPlatform("generic").Format(fields.NewFlatMap())

		require.NoError(t, err)
		assert.NotEmpty(t, result.Body)
	})
}

func TestDisplayLimits(t *testing.T) {
	t.Run("caps at fifteen fields", func(t *testing.T) {
		m := fields.NewFlatMap()
		for i := 0; i < 25; i++ {
			m.Set(fmt.Sprintf("field%02d", i), "value")
		}

		result, err := platform.ForPlatform("generic").Format(m)
		require.NoError(t, err)

		var parsed struct {
			Order []string `json:"field_order"`
		}
		require.NoError(t, json.Unmarshal(result.Body, &parsed))
		assert.Len(t, parsed.Order, platform.MaxDisplayFields)
	})

	t.Run("truncates long values with ellipsis", func(t *testing.T) {
		m := flat("message", strings.Repeat("x", 500))

		result, err := platform.ForPlatform("generic").Format(m)
		require.NoError(t, err)

		var parsed struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(result.Body, &parsed))
		value := parsed.Fields["Message"]
		assert.True(t, strings.HasSuffix(value, "…"))
		assert.Equal(t, platform.MaxValueLength+1, len([]rune(value)))
	})
}
