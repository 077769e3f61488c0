// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"encoding/json"
	"math"

	"github.com/spf13/cast"
)

// DeepCopyConfigMap is a utility function to make a deep "copy"/clone of a config map.
// Scalar values are normalized the same way the property map stores them
// (integers become int64, floats become float64).
func DeepCopyConfigMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = deepCopyValue(value)
	}

	return dst
}

// deepCopyValue returns a deep copy of a decoded value.
// Implementation is opinionated to the types produced by the decoders in use:
// json gives map[string]any / []any / json.Number, yaml gives
// map[string]any or map[any]any and plain int, toml gives int64 and
// time values. Anything else is returned as is.
func deepCopyValue(value any) any {
	switch val := value.(type) {
	case map[string]any:
		return DeepCopyConfigMap(val)
	case map[any]any:
		dst := make(map[any]any, len(val))
		for key, item := range val {
			dst[key] = deepCopyValue(item)
		}

		return dst
	case []any:
		dst := make([]any, len(val))
		for idx, item := range val {
			dst[idx] = deepCopyValue(item)
		}

		return dst
	case []string:
		dst := make([]string, len(val))
		copy(dst, val)

		return dst
	case []int:
		dst := make([]int, len(val))
		copy(dst, val)

		return dst
	}

	return normalizeScalar(value)
}

// normalizeScalar brings numeric values to the two numeric kinds
// the property map knows of: int64 and float64.
// Unsigned integers above math.MaxInt64 are not representable and stay unsigned.
func normalizeScalar(value any) any {
	switch val := value.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}

		return val.String()
	case uint:
		if uint64(val) > math.MaxInt64 {
			return value // out of int64 range, kept as is (a raw value).
		}

		return int64(val)
	case uint64:
		if val > math.MaxInt64 {
			return value // out of int64 range, kept as is (a raw value).
		}

		return int64(val)
	case int, int8, int16, int32, uint8, uint16, uint32:
		if i, err := cast.ToInt64E(val); err == nil {
			return i
		}
	case float32:
		return cast.ToFloat64(val)
	}

	return value
}
