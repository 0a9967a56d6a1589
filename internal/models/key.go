package models

// Key is the opaque string identifier used for stations and trains. Callers
// treat it as a handle; only the stores assign meaning to its value.
type Key string

// NewKey wraps a raw string as a Key.
func NewKey(s string) Key {
	return Key(s)
}

// String returns the raw key value.
func (k Key) String() string {
	return string(k)
}

// IsEmpty reports whether the key carries no value.
func (k Key) IsEmpty() bool {
	return len(k) == 0
}
