// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"sort"
	"strings"

	"github.com/actforgood/xlog"
)

const (
	// Separator splits the hierarchy of a property key.
	Separator = "."
	// AssignmentOperator splits a manual property key from its value.
	AssignmentOperator = "="
)

// Properties holds a flat key-value map of configuration properties,
// keyed by lower-cased dotted paths (e.g. "plugins.md999.test_value"),
// and exposes type-checked accessors over it.
//
// A Properties object is not safe for concurrent mutation.
// Concurrent reads after loading completed are fine.
type Properties struct {
	// flatMap holds the properties, including the hidden entries
	// (key prefixed with Separator) marking untyped values.
	flatMap map[string]any
	// keys holds flatMap's keys in insertion order.
	keys []string
	// strictMode makes type mismatches an error instead of falling back to default.
	strictMode bool
	// convertUntyped allows untyped values to be converted on retrieval.
	convertUntyped bool
	// logger is an optional debug logger.
	logger xlog.Logger
}

// NewProperties instantiates a new, empty, Properties object.
func NewProperties(opts ...PropertiesOption) *Properties {
	props := &Properties{
		flatMap: make(map[string]any),
	}

	// apply options, if any.
	for _, opt := range opts {
		opt(props)
	}

	return props
}

// Separator returns the character used to split the hierarchy of property names.
func (props *Properties) Separator() string {
	return Separator
}

// StrictMode returns whether strict mode is on by default.
func (props *Properties) StrictMode() bool {
	return props.strictMode
}

// EnableStrictMode switches strict mode on. It cannot be switched off afterwards.
func (props *Properties) EnableStrictMode() {
	props.strictMode = true
}

// ConvertUntypedIfPossible returns whether untyped values may be converted on retrieval.
func (props *Properties) ConvertUntypedIfPossible() bool {
	return props.convertUntyped
}

// EnableConvertUntypedIfPossible allows untyped values to be converted
// on retrieval. It cannot be switched off afterwards.
func (props *Properties) EnableConvertUntypedIfPossible() {
	props.convertUntyped = true
}

// Clear empties the property map.
func (props *Properties) Clear() {
	props.flatMap = make(map[string]any)
	props.keys = nil
}

// PropertyNames returns the names of the stored properties, in insertion order.
func (props *Properties) PropertyNames() []string {
	names := make([]string, 0, len(props.keys))
	for _, key := range props.keys {
		if !strings.HasPrefix(key, Separator) {
			names = append(names, key)
		}
	}

	return names
}

// NumberOfProperties returns the number of stored properties.
func (props *Properties) NumberOfProperties() int {
	return len(props.PropertyNames())
}

// PropertyNamesUnder returns every stored key starting with given key name.
func (props *Properties) PropertyNamesUnder(keyName string) ([]string, error) {
	if err := VerifyFullKeyForm(keyName); err != nil {
		return nil, err
	}
	names := make([]string, 0)
	for _, key := range props.keys {
		if strings.HasPrefix(key, keyName) {
			names = append(names, key)
		}
	}

	return names, nil
}

// LoadFromMap loads the properties from a (nested) map.
// Accepted inputs are map[string]any and map[any]any (as produced by YAML decoders).
// Nested maps are flattened with Separator, leaves are deep copied.
// If clearMap is true, the property map is emptied first, otherwise new keys
// overwrite existing ones.
//
// Values loaded this way are typed and thus never eligible for conversion.
func (props *Properties) LoadFromMap(configMap any, clearMap bool) error {
	if !isMapping(configMap) {
		return newPropertyError(ErrNotAMapping, nil, "Specified parameter was not a dictionary.")
	}

	props.logDebug("loading from map", "map", configMap)
	if clearMap {
		props.Clear()
	}

	return props.scanMap(configMap, "")
}

// LoadFrom loads the properties from the map returned by given Loader.
func (props *Properties) LoadFrom(loader Loader, clearMap bool) error {
	configMap, err := loader.Load()
	if err != nil {
		return err
	}

	return props.LoadFromMap(configMap, clearMap)
}

// scanMap walks a nested map and stores its leaves.
func (props *Properties) scanMap(configMap any, currentPrefix string) error {
	stringMap, err := toStringKeyedMap(configMap)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(stringMap))
	for key := range stringMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.ContainsAny(key, " \t\n"+AssignmentOperator+Separator) {
			return newPropertyError(
				ErrInvalidNestedKey,
				nil,
				"Key strings cannot contain a whitespace character, a '%s' character, or a '%s' character.",
				AssignmentOperator,
				Separator,
			)
		}

		value := stringMap[key]
		if isMapping(value) {
			if err := props.scanMap(value, currentPrefix+key+Separator); err != nil {
				return err
			}

			continue
		}

		newKey := strings.ToLower(currentPrefix + key)
		props.set(newKey, deepCopyValue(value))
		props.dropUntypedMark(newKey)
		props.logDebug("adding configuration", "key", newKey, "value", value)
	}

	return nil
}

// set stores a value, keeping track of insertion order.
func (props *Properties) set(key string, value any) {
	if _, found := props.flatMap[key]; !found {
		props.keys = append(props.keys, key)
	}
	props.flatMap[key] = value
}

// dropUntypedMark removes the entry marking key's value as untyped, if any.
func (props *Properties) dropUntypedMark(key string) {
	shadowKey := Separator + key
	if _, found := props.flatMap[shadowKey]; !found {
		return
	}
	delete(props.flatMap, shadowKey)
	for idx, storedKey := range props.keys {
		if storedKey == shadowKey {
			props.keys = append(props.keys[:idx], props.keys[idx+1:]...)

			break
		}
	}
}

func (props *Properties) logDebug(msg string, keyValues ...any) {
	if props.logger == nil {
		return
	}
	props.logger.Debug(append([]any{xlog.MessageKey, "[xprops] " + msg}, keyValues...)...)
}

// isMapping returns true if value is a map accepted by LoadFromMap.
func isMapping(value any) bool {
	switch value.(type) {
	case map[string]any, map[any]any:
		return true
	}

	return false
}

// toStringKeyedMap checks that all keys of a map are strings.
func toStringKeyedMap(configMap any) (map[string]any, error) {
	switch typedMap := configMap.(type) {
	case map[string]any:
		return typedMap, nil
	case map[any]any:
		stringMap := make(map[string]any, len(typedMap))
		for key, value := range typedMap {
			strKey, ok := key.(string)
			if !ok {
				return nil, newPropertyError(
					ErrInvalidNestedKey,
					nil,
					"All keys in the main dictionary and nested dictionaries must be strings.",
				)
			}
			stringMap[strKey] = value
		}

		return stringMap, nil
	}

	return nil, newPropertyError(ErrNotAMapping, nil, "Specified parameter was not a dictionary.")
}

// PropertiesOption defines optional function for configuring
// a Properties object.
type PropertiesOption func(*Properties)

// PropertiesWithStrictMode starts the Properties object in strict mode.
func PropertiesWithStrictMode() PropertiesOption {
	return func(props *Properties) {
		props.strictMode = true
	}
}

// PropertiesWithConvertUntypedIfPossible allows untyped values
// (like the ones coming from INI files, or manual properties without a type marker)
// to be converted on retrieval.
func PropertiesWithConvertUntypedIfPossible() PropertiesOption {
	return func(props *Properties) {
		props.convertUntyped = true
	}
}

// PropertiesWithLogger sets a logger to trace, at debug level, what gets stored.
// By default, nothing is logged.
func PropertiesWithLogger(logger xlog.Logger) PropertiesOption {
	return func(props *Properties) {
		props.logger = logger
	}
}
