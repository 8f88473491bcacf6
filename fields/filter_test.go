package fields_test

import (
	"testing"

	"github.com/marcelsud/alert-relay/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extracted(t *testing.T, raw string) fields.FlatMap {
	t.Helper()
	m, err := fields.Extract([]byte(raw))
	require.NoError(t, err)
	return m
}

func TestFilter(t *testing.T) {
	sample := `<notification><devicename>SRV-01</devicename><severity>high</severity><message>disk full</message></notification>`

	t.Run("empty config is the identity", func(t *testing.T) {
		m := extracted(t, sample)

		out := fields.Filter(m, fields.FilterConfig{})

		assert.Equal(t, m.Keys(), out.Keys())
		for _, key := range m.Keys() {
			want, _ := m.Get(key)
			got, _ := out.Get(key)
			assert.Equal(t, want, got)
		}
	})

	t.Run("include list restricts output", func(t *testing.T) {
		m := extracted(t, sample)
		config := fields.FilterConfig{IncludedFields: []string{"devicename"}}

		out := fields.Filter(m, config)

		assert.Equal(t, []string{"devicename"}, out.Keys())
		v, _ := out.Get("devicename")
		assert.Equal(t, "SRV-01", v)
		_, ok := out.Get("severity")
		assert.False(t, ok)
	})

	t.Run("exclusion dominates inclusion", func(t *testing.T) {
		m := extracted(t, sample)
		config := fields.FilterConfig{
			IncludedFields: []string{"devicename", "severity"},
			ExcludedFields: []string{"severity"},
		}

		out := fields.Filter(m, config)

		assert.Equal(t, []string{"devicename"}, out.Keys())
	})

	t.Run("exclusion applies with empty include list", func(t *testing.T) {
		m := extracted(t, sample)
		config := fields.FilterConfig{ExcludedFields: []string{"message"}}

		out := fields.Filter(m, config)

		assert.Equal(t, []string{"devicename", "severity"}, out.Keys())
	})

	t.Run("order is preserved", func(t *testing.T) {
		m := extracted(t, sample)
		// Include list order must not leak into output order
		config := fields.FilterConfig{IncludedFields: []string{"message", "devicename"}}

		out := fields.Filter(m, config)

		assert.Equal(t, []string{"devicename", "message"}, out.Keys())
	})

	t.Run("input is not mutated", func(t *testing.T) {
		m := extracted(t, sample)
		before := m.Keys()

		fields.Filter(m, fields.FilterConfig{ExcludedFields: []string{"devicename"}})

		assert.Equal(t, before, m.Keys())
	})
}

func TestFilterConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := fields.FilterConfig{
			Name:           "prtg-default",
			IncludedFields: []string{"devicename"},
			ExcludedFields: []string{"internal.token"},
		}
		require.NoError(t, config.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		err := fields.FilterConfig{}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("empty key in include list", func(t *testing.T) {
		err := fields.FilterConfig{Name: "x", IncludedFields: []string{""}}.Validate()
		require.Error(t, err)
	})
}
