// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Config provides prototype for a lenient access to properties.
// Both [Properties] and [Facade] implement it.
type Config interface {
	// Get returns a property value for a given key.
	// The first parameter is the full key to return the value for.
	// The second parameter is optional, and represents a default
	// value in case key is not found. It also has a role in inferring
	// the type of key's value (if it exists) and thus key's value
	// will be casted to default's value type.
	Get(key string, def ...any) any
}

// Get returns a property value for a given key, without the strict
// kind checks of GetProperty.
// If a default is given, the found value is casted to default's type;
// if the cast fails, the default is returned.
// Only basic types (string, bool, int, uint, float, and their flavours),
// time.Duration, time.Time, []int, []string are covered.
func (props *Properties) Get(key string, def ...any) any {
	value, foundKey := props.flatMap[strings.ToLower(key)]
	if len(def) > 0 {
		defaultValue := def[0]
		if !foundKey {
			return defaultValue
		}
		if defaultValue != nil {
			return castValueByDefault(value, defaultValue)
		}
	}
	if !foundKey {
		return nil
	}

	return deepCopyValue(value)
}

// castValueByDefault casts a key's value to provided default value's type.
// If a cast error occurs, the defaultValue is returned.
func castValueByDefault(value, defaultValue any) any {
	var (
		castValue any
		castErr   error
	)
	switch defaultValue.(type) {
	case string:
		castValue, castErr = cast.ToStringE(value)
	case int:
		castValue, castErr = cast.ToIntE(value)
	case uint:
		castValue, castErr = cast.ToUintE(value)
	case float64:
		castValue, castErr = cast.ToFloat64E(value)
	case bool:
		castValue, castErr = cast.ToBoolE(value)
	case time.Duration:
		castValue, castErr = cast.ToDurationE(value)
	case int64:
		castValue, castErr = cast.ToInt64E(value)
	case int32:
		castValue, castErr = cast.ToInt32E(value)
	case uint64:
		castValue, castErr = cast.ToUint64E(value)
	case uint32:
		castValue, castErr = cast.ToUint32E(value)
	case float32:
		castValue, castErr = cast.ToFloat32E(value)
	case time.Time:
		castValue, castErr = cast.ToTimeE(value)
	case []string:
		castValue, castErr = cast.ToStringSliceE(value)
	case []int:
		castValue, castErr = cast.ToIntSliceE(value)
	default:
		castValue = value // not supported cast type, return directly the value
	}

	if castErr == nil {
		return castValue
	}

	return defaultValue
}
