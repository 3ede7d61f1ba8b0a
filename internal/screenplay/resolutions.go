package screenplay

import (
	"cmp"
	"fmt"
	"strings"
)

type resolution[T any] struct {
	desc     string
	expected any
	match    func(T) bool
}

func (r resolution[T]) Description() string   { return r.desc }
func (r resolution[T]) Expected() any         { return r.expected }
func (r resolution[T]) Resolve(answer T) bool { return r.match(answer) }

// ContainsTheText matches strings containing text, ignoring case. The empty
// text matches every string, the empty string included.
func ContainsTheText(text string) Resolution[string] {
	return resolution[string]{
		desc:     fmt.Sprintf("to contain the text %q", text),
		expected: text,
		match: func(s string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(text))
		},
	}
}

// ContainsTheExactText is ContainsTheText respecting case
func ContainsTheExactText(text string) Resolution[string] {
	return resolution[string]{
		desc:     fmt.Sprintf("to contain the exact text %q", text),
		expected: text,
		match: func(s string) bool {
			return strings.Contains(s, text)
		},
	}
}

// IsEqualTo matches only answers equal to expected. Callers trim expected
// text themselves where the page pads it.
func IsEqualTo[T comparable](expected T) Resolution[T] {
	return resolution[T]{
		desc:     fmt.Sprintf("to equal %#v", expected),
		expected: expected,
		match: func(v T) bool {
			return v == expected
		},
	}
}

// IsTrue matches true
func IsTrue() Resolution[bool] {
	return resolution[bool]{desc: "to be true", expected: true, match: func(b bool) bool { return b }}
}

// IsFalse matches false
func IsFalse() Resolution[bool] {
	return resolution[bool]{desc: "to be false", expected: false, match: func(b bool) bool { return !b }}
}

// IsGreaterThan matches answers strictly greater than floor
func IsGreaterThan[T cmp.Ordered](floor T) Resolution[T] {
	return resolution[T]{
		desc:     fmt.Sprintf("to be greater than %v", floor),
		expected: floor,
		match: func(v T) bool {
			return v > floor
		},
	}
}

// IsEmpty matches empty slices
func IsEmpty[T any]() Resolution[[]T] {
	return resolution[[]T]{desc: "to be empty", expected: []T{}, match: func(v []T) bool { return len(v) == 0 }}
}

// Not inverts r
func Not[T any](r Resolution[T]) Resolution[T] {
	return resolution[T]{
		desc:     "not " + r.Description(),
		expected: r.Expected(),
		match: func(v T) bool {
			return !r.Resolve(v)
		},
	}
}
