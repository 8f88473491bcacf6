package fields

/* FlatMap is the ordered dotted-key -> value mapping produced by extraction.
 * Order matters: formatters render fields in document order, so a plain
 * map[string]string is not enough.
 * Uses value semantics as it represents data, not behavior.
 */

type FlatMap struct {
	keys   []string
	values map[string]string
}

// NewFlatMap creates an empty FlatMap
func NewFlatMap() FlatMap {
	return FlatMap{
		values: make(map[string]string),
	}
}

// Set adds or replaces a key, preserving first-insertion order
func (m *FlatMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for a key and whether it is present
func (m FlatMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (m FlatMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys
func (m FlatMap) Len() int {
	return len(m.keys)
}
