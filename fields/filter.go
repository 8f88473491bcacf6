package fields

import "fmt"

/* FilterConfig is a named include/exclude rule set applied to extracted
 * fields before formatting. An empty include list means "include all";
 * exclusion always dominates inclusion.
 */
type FilterConfig struct {
	ID             string
	Name           string
	IncludedFields []string
	ExcludedFields []string
	Description    string
	SamplePayload  string
}

// Validate checks if the filter configuration is valid
func (c FilterConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	for _, key := range c.IncludedFields {
		if key == "" {
			return fmt.Errorf("included field keys cannot be empty for filter %s", c.Name)
		}
	}
	for _, key := range c.ExcludedFields {
		if key == "" {
			return fmt.Errorf("excluded field keys cannot be empty for filter %s", c.Name)
		}
	}
	return nil
}

/* Filter applies a FilterConfig to an extracted FlatMap.
 * A key passes iff it is not excluded AND (the include list is empty OR the
 * key is included). Extraction order is preserved. Pure function.
 */
func Filter(m FlatMap, config FilterConfig) FlatMap {
	excluded := make(map[string]struct{}, len(config.ExcludedFields))
	for _, key := range config.ExcludedFields {
		excluded[key] = struct{}{}
	}
	included := make(map[string]struct{}, len(config.IncludedFields))
	for _, key := range config.IncludedFields {
		included[key] = struct{}{}
	}

	out := NewFlatMap()
	for _, key := range m.Keys() {
		if _, isExcluded := excluded[key]; isExcluded {
			continue
		}
		if len(included) > 0 {
			if _, isIncluded := included[key]; !isIncluded {
				continue
			}
		}
		value, _ := m.Get(key)
		out.Set(key, value)
	}
	return out
}
