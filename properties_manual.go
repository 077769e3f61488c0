// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Manual property value type markers.
// A value starting with typePrefix and at least one more character
// is typed by that character:
//
//	"$$text"  => string "text"
//	"$#123"   => integer 123
//	"$!true"  => boolean true (case insensitive, anything else is false)
//	"$xtext"  => string "xtext" (only the prefix is dropped)
const (
	typePrefix  = '$'
	typeString  = '$'
	typeInteger = '#'
	typeBoolean = '!'
)

// SetManualProperty sets one or more properties given in the "key=value" form.
// Each property is processed in order; the first malformed one stops the
// processing and its error is returned (previous ones remain set).
//
// The key is lower-cased. A value without a type marker is stored as a string
// and is remembered as untyped, which makes it eligible for conversion on
// retrieval (see [PropertiesWithConvertUntypedIfPossible]).
func (props *Properties) SetManualProperty(manualProperties ...string) error {
	for _, manualProperty := range manualProperties {
		if err := props.setManualProperty(manualProperty); err != nil {
			return err
		}
	}

	return nil
}

func (props *Properties) setManualProperty(manualProperty string) error {
	if err := VerifyManualPropertyForm(manualProperty); err != nil {
		return err
	}
	equalsIdx := strings.Index(manualProperty, AssignmentOperator)
	propertyKey := strings.ToLower(manualProperty[:equalsIdx])
	propertyValue := manualProperty[equalsIdx+1:]

	var composedValue any = propertyValue
	if len(propertyValue) >= 2 && propertyValue[0] == typePrefix {
		typedValue, err := adjustPropertyType(propertyValue)
		if err != nil {
			return err
		}
		composedValue = typedValue
		props.dropUntypedMark(propertyKey)
	} else {
		props.set(Separator+propertyKey, propertyValue)
	}

	props.set(propertyKey, composedValue)
	props.logDebug("adding configuration", "key", propertyKey, "value", composedValue)

	return nil
}

// adjustPropertyType interprets a value starting with the type prefix.
func adjustPropertyType(propertyValue string) (any, error) {
	marker, size := utf8.DecodeRuneInString(propertyValue[1:])
	rest := propertyValue[1+size:]

	switch marker {
	case typeString:
		return rest, nil
	case typeInteger:
		value, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
		if err != nil {
			return nil, newPropertyError(
				ErrInvalidIntegerLiteral,
				err,
				"Manual property value '%s' cannot be translated into an integer.",
				propertyValue,
			)
		}

		return value, nil
	case typeBoolean:
		return strings.ToLower(rest) == "true", nil
	}

	return propertyValue[1:], nil
}
