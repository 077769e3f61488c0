// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

// Kind is the type of a stored property value.
type Kind byte

const (
	// KindString is a string value.
	KindString Kind = iota + 1
	// KindInteger is an int64 value.
	KindInteger
	// KindBoolean is a bool value.
	KindBoolean
	// KindFloat is a float64 value.
	KindFloat
	// KindRaw is any other (structured) value, like a list or a date.
	KindRaw
)

// String returns the name of the kind, as it appears in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInteger:
		return "int"
	case KindBoolean:
		return "bool"
	case KindFloat:
		return "float"
	case KindRaw:
		return "raw"
	}

	return "unknown"
}

// valid reports whether k is one of the declared kinds.
func (k Kind) valid() bool {
	return k >= KindString && k <= KindRaw
}

// kindOf returns the exact kind of a stored value.
// Values are expected to be normalized (see normalizeScalar), so
// integers are int64 and floats are float64.
func kindOf(value any) Kind {
	switch value.(type) {
	case string:
		return KindString
	case int64:
		return KindInteger
	case bool:
		return KindBoolean
	case float64:
		return KindFloat
	}

	return KindRaw
}
