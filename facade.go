// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Facade is a view over a Properties object, restricted to and
// rebased under a key prefix.
//
// Example: given the properties "plugins.md013.line_length" and "plugins.md013.enabled",
// a facade with prefix "plugins.md013." exposes "line_length" and "enabled".
type Facade struct {
	base   *Properties
	prefix string
}

// NewFacade instantiates a new Facade object over base properties.
// The prefix must end with the separator.
func NewFacade(base *Properties, prefix string) (*Facade, error) {
	if base == nil {
		return nil, newPropertyError(
			ErrInvalidArgument,
			nil,
			"The base properties of the facade must be a Properties instance.",
		)
	}
	if !strings.HasSuffix(prefix, Separator) {
		return nil, newPropertyError(
			ErrInvalidArgument,
			nil,
			"The prefix argument must end with the separator character '%s'.",
			Separator,
		)
	}

	return &Facade{base: base, prefix: prefix}, nil
}

// Prefix returns the prefix of the facade.
func (facade *Facade) Prefix() string {
	return facade.prefix
}

// GetProperty returns the value of a property of given kind, relative to the prefix.
// See [Properties.GetProperty].
func (facade *Facade) GetProperty(propertyName string, kind Kind, opts ...GetOption) (any, error) {
	return facade.base.GetProperty(facade.prefix+propertyName, kind, opts...)
}

// GetBoolean returns a boolean property, relative to the prefix.
func (facade *Facade) GetBoolean(propertyName string, def bool, opts ...GetOption) (bool, error) {
	return facade.base.GetBoolean(facade.prefix+propertyName, def, opts...)
}

// GetInteger returns an integer property, relative to the prefix.
func (facade *Facade) GetInteger(propertyName string, def int64, opts ...GetOption) (int64, error) {
	return facade.base.GetInteger(facade.prefix+propertyName, def, opts...)
}

// GetString returns a string property, relative to the prefix.
func (facade *Facade) GetString(propertyName string, def string, opts ...GetOption) (string, error) {
	return facade.base.GetString(facade.prefix+propertyName, def, opts...)
}

// GetFloat returns a float property, relative to the prefix.
func (facade *Facade) GetFloat(propertyName string, def float64, opts ...GetOption) (float64, error) {
	return facade.base.GetFloat(facade.prefix+propertyName, def, opts...)
}

// GetRaw returns a structured property, relative to the prefix.
func (facade *Facade) GetRaw(propertyName string, opts ...GetOption) (any, error) {
	return facade.base.GetRaw(facade.prefix+propertyName, opts...)
}

// Get implements [Config], relative to the prefix.
func (facade *Facade) Get(key string, def ...any) any {
	return facade.base.Get(facade.prefix+key, def...)
}

// PropertyNames returns the names of the properties under the prefix,
// with the prefix stripped.
func (facade *Facade) PropertyNames() []string {
	names := make([]string, 0)
	for _, name := range facade.base.PropertyNames() {
		if strings.HasPrefix(name, facade.prefix) {
			names = append(names, name[len(facade.prefix):])
		}
	}

	return names
}

// PropertyNamesUnder returns the (stripped) property names starting with given key name.
func (facade *Facade) PropertyNamesUnder(keyName string) ([]string, error) {
	if err := VerifyFullKeyForm(keyName); err != nil {
		return nil, err
	}
	names := make([]string, 0)
	for _, name := range facade.PropertyNames() {
		if strings.HasPrefix(name, keyName) {
			names = append(names, name)
		}
	}

	return names, nil
}

// Decode decodes the properties under the prefix into out, which must be
// a pointer to a struct or a map. Nested keys map to nested structs,
// field names match keys case insensitively (or through `mapstructure` tags),
// and untyped strings are weakly converted to the field's type.
func (facade *Facade) Decode(out any) error {
	nested := make(map[string]any)
	for _, name := range facade.PropertyNames() {
		parts := strings.Split(name, Separator)
		current := nested
		for _, part := range parts[:len(parts)-1] {
			child, ok := current[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				current[part] = child
			}
			current = child
		}
		current[parts[len(parts)-1]] = deepCopyValue(facade.base.flatMap[facade.prefix+name])
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(nested)
}
