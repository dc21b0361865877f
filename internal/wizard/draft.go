package wizard

import "maps"

// Draft is the flat record a wizard accumulates across its steps. Keys owned
// by different steps share one namespace.
type Draft map[string]any

// Merge overwrites d's keys with partial's. Keys absent from partial are kept.
func (d Draft) Merge(partial Draft) {
	maps.Copy(d, partial)
}

// Clone returns a shallow copy.
func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	maps.Copy(out, d)
	return out
}

func (d Draft) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the string stored at key, or "" when absent or not a string.
func (d Draft) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Get returns the value at key when it holds a T.
func Get[T any](d Draft, key string) (T, bool) {
	v, ok := d[key].(T)
	return v, ok
}
