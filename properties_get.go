// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"strconv"
	"strings"
)

// ValidatorFunc validates a found property value.
// A returned error makes the value not eligible: the default is returned
// instead, or, in strict mode, the retrieval fails with ErrValidationFailed.
type ValidatorFunc func(value any) error

// getOptions holds the optional parameters of a property retrieval.
type getOptions struct {
	def       any
	validator ValidatorFunc
	required  bool
	strict    *bool
}

// GetOption defines optional function for configuring a property retrieval.
type GetOption func(*getOptions)

// WithDefault sets the value returned if the property is not found
// or not eligible. It must be of the requested kind, it is not converted.
func WithDefault(def any) GetOption {
	return func(opts *getOptions) {
		opts.def = def
	}
}

// WithValidator sets a function to validate the found value with.
func WithValidator(validator ValidatorFunc) GetOption {
	return func(opts *getOptions) {
		opts.validator = validator
	}
}

// Required makes the retrieval fail if the property is not found.
func Required() GetOption {
	return func(opts *getOptions) {
		opts.required = true
	}
}

// WithStrictMode overrides, for one retrieval, the strict mode of the Properties object.
func WithStrictMode(strict bool) GetOption {
	return func(opts *getOptions) {
		opts.strict = &strict
	}
}

// GetProperty returns the value of a property of given kind.
//
// If the property is not found, the default (see [WithDefault]) is returned,
// or, if [Required], an ErrMissingRequiredProperty error.
// If the property is found, but its value is not exactly of the requested kind,
// an untyped value is converted if [PropertiesWithConvertUntypedIfPossible] is on.
// If it still does not match, in strict mode an ErrTypeMismatch error is returned,
// otherwise the default.
func (props *Properties) GetProperty(propertyName string, kind Kind, opts ...GetOption) (any, error) {
	var options getOptions
	for _, opt := range opts {
		opt(&options)
	}
	strictMode := props.strictMode
	if options.strict != nil {
		strictMode = *options.strict
	}

	if err := VerifyFullKeyForm(propertyName); err != nil {
		return nil, err
	}
	if !kind.valid() {
		return nil, newPropertyError(
			ErrInvalidArgument,
			nil,
			"The property kind argument for '%s' must be a valid kind.",
			propertyName,
		)
	}
	if options.def != nil && kindOf(options.def) != kind {
		return nil, newPropertyError(
			ErrTypeMismatch,
			nil,
			"The default value for property '%s' must either be nil or a '%s' value.",
			propertyName,
			kind,
		)
	}

	propertyName = strings.ToLower(propertyName)
	props.logDebug("getting property", "name", propertyName, "kind", kind.String())
	if _, found := props.flatMap[propertyName]; found {
		return props.getPresentProperty(propertyName, kind, strictMode, options)
	}
	if options.required {
		return nil, newPropertyError(
			ErrMissingRequiredProperty,
			nil,
			"A value for property '%s' must be provided.",
			propertyName,
		)
	}

	return options.def, nil
}

// getPresentProperty applies eligibility and validation rules for a stored property.
func (props *Properties) getPresentProperty(
	propertyName string,
	kind Kind,
	strictMode bool,
	options getOptions,
) (any, error) {
	isEligible, foundValue := props.getPresentPropertyValue(propertyName, kind)
	if !isEligible && strictMode {
		return nil, newPropertyError(
			ErrTypeMismatch,
			nil,
			"The value for property '%s' must be of type '%s'.",
			propertyName,
			kind,
		)
	}
	if isEligible && options.validator != nil {
		if err := options.validator(foundValue); err != nil {
			if strictMode {
				return nil, newPropertyError(
					ErrValidationFailed,
					err,
					"The value for property '%s' is not valid: %s",
					propertyName,
					err.Error(),
				)
			}
			isEligible = false
		}
	}
	if isEligible {
		return foundValue, nil
	}

	return options.def, nil
}

// getPresentPropertyValue returns the stored value and whether it is of the
// requested kind, converting an untyped value if allowed.
func (props *Properties) getPresentPropertyValue(propertyName string, kind Kind) (bool, any) {
	foundValue := props.flatMap[propertyName]
	if kindOf(foundValue) == kind {
		return true, foundValue
	}
	if kind == KindString || kind == KindRaw || !props.convertUntyped {
		return false, foundValue
	}
	untypedValue, found := props.flatMap[Separator+propertyName]
	if !found {
		return false, foundValue
	}
	rawValue, _ := untypedValue.(string)

	switch kind {
	case KindBoolean:
		value, _ := adjustPropertyType(string(typePrefix) + string(typeBoolean) + rawValue)

		return true, value
	case KindInteger:
		if value, err := adjustPropertyType(string(typePrefix) + string(typeInteger) + rawValue); err == nil {
			return true, value
		}
	case KindFloat:
		if value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64); err == nil {
			return true, value
		}
	}

	return false, foundValue
}

// GetBoolean returns a boolean property, or def if it is not found/eligible.
func (props *Properties) GetBoolean(propertyName string, def bool, opts ...GetOption) (bool, error) {
	value, err := props.GetProperty(propertyName, KindBoolean, append([]GetOption{WithDefault(def)}, opts...)...)
	if err != nil {
		return def, err
	}

	if typedValue, ok := value.(bool); ok {
		return typedValue, nil
	}

	return def, nil
}

// GetInteger returns an integer property, or def if it is not found/eligible.
func (props *Properties) GetInteger(propertyName string, def int64, opts ...GetOption) (int64, error) {
	value, err := props.GetProperty(propertyName, KindInteger, append([]GetOption{WithDefault(def)}, opts...)...)
	if err != nil {
		return def, err
	}

	if typedValue, ok := value.(int64); ok {
		return typedValue, nil
	}

	return def, nil
}

// GetString returns a string property, or def if it is not found/eligible.
func (props *Properties) GetString(propertyName string, def string, opts ...GetOption) (string, error) {
	value, err := props.GetProperty(propertyName, KindString, append([]GetOption{WithDefault(def)}, opts...)...)
	if err != nil {
		return def, err
	}

	if typedValue, ok := value.(string); ok {
		return typedValue, nil
	}

	return def, nil
}

// GetFloat returns a float property, or def if it is not found/eligible.
func (props *Properties) GetFloat(propertyName string, def float64, opts ...GetOption) (float64, error) {
	value, err := props.GetProperty(propertyName, KindFloat, append([]GetOption{WithDefault(def)}, opts...)...)
	if err != nil {
		return def, err
	}

	if typedValue, ok := value.(float64); ok {
		return typedValue, nil
	}

	return def, nil
}

// GetRaw returns a structured property (a list, a date...), or nil if it is not found/eligible.
func (props *Properties) GetRaw(propertyName string, opts ...GetOption) (any, error) {
	value, err := props.GetProperty(propertyName, KindRaw, opts...)
	if err != nil {
		return nil, err
	}

	return deepCopyValue(value), nil
}
