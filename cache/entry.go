package cache

import "encoding/json"

// Entry wraps a possibly-absent cached value together with the preference it is
// (or will be) stored under.
type Entry[T any] struct {
	data       *T
	Preference Preference
}

// NewEntry wraps data. A nil data produces an empty entry.
func NewEntry[T any](data *T, pref Preference) Entry[T] {
	return Entry[T]{data: data, Preference: pref}
}

// CacheHit reports whether the entry carries a value.
func (e Entry[T]) CacheHit() bool {
	return e.data != nil
}

// LoadCachedData returns an independent deep copy of the wrapped value, or the zero
// value of T when the entry is empty.
func (e Entry[T]) LoadCachedData() T {
	var zero T
	if e.data == nil {
		return zero
	}
	if c, ok := any(*e.data).(Cloner[T]); ok {
		return c.Clone()
	}
	out, err := copyValue(*e.data)
	if err != nil {
		return zero
	}
	return out
}

// copyValue deep-copies v through its JSON form, the same representation the store
// keeps, so only exported state survives.
func copyValue[T any](v T) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}
