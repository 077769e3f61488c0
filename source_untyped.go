// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// EnvironmentSource is a configuration source made of OS's ENV variables
// having a given prefix. The prefix is stripped, the name is lower-cased, and
// "__" is translated to the hierarchy separator, so that "APP_DB__PORT=5432"
// becomes the untyped property "db.port".
type EnvironmentSource struct {
	prefix string
}

// NewEnvironmentSource instantiates a new EnvironmentSource.
func NewEnvironmentSource(prefix string) EnvironmentSource {
	return EnvironmentSource{prefix: prefix}
}

// ApplyConfiguration sets the matching variables as untyped properties.
func (src EnvironmentSource) ApplyConfiguration(
	_ LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	configMap, _ := EnvLoader(src.prefix).Load()

	return applyUntypedConfigMap(props, configMap, "environment", envPropertyName, onError)
}

// DotEnvFileSource is a configuration source made of a .env file, that may or may not exist.
// Variable names are translated like in EnvironmentSource, without any prefix.
type DotEnvFileSource struct {
	filePath string
}

// NewDotEnvFileSource instantiates a new DotEnvFileSource.
func NewDotEnvFileSource(filePath string) DotEnvFileSource {
	return DotEnvFileSource{filePath: filePath}
}

// ApplyConfiguration sets the file's variables as untyped properties.
func (src DotEnvFileSource) ApplyConfiguration(
	_ LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	return applyUntypedFile(props, src.filePath, DotEnvFileLoader(src.filePath, DotEnvLoaderWithPropertyNames()), onError)
}

// PropertiesFileSource is a configuration source made of a Java like .properties file,
// that may or may not exist. Keys are already dotted ("db.port=5432").
type PropertiesFileSource struct {
	filePath string
}

// NewPropertiesFileSource instantiates a new PropertiesFileSource.
func NewPropertiesFileSource(filePath string) PropertiesFileSource {
	return PropertiesFileSource{filePath: filePath}
}

// ApplyConfiguration sets the file's entries as untyped properties.
func (src PropertiesFileSource) ApplyConfiguration(
	_ LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	return applyUntypedFile(
		props,
		src.filePath,
		PropertiesFileLoader(src.filePath, PropertiesLoaderWithPropertyNames()),
		onError,
	)
}

// applyUntypedFile loads a flat file, if it exists, and applies it as untyped properties.
// The loader is expected to return property names as keys.
func applyUntypedFile(
	props *Properties,
	filePath string,
	loader Loader,
	onError ErrorHandler,
) (didApply, didError bool) {
	if !isFilePresent(filePath) {
		return false, false
	}

	props.logDebug("loading configuration file", "file", filePath)
	configMap, err := loader.Load()
	if err != nil {
		onError(fmt.Sprintf("Specified configuration file '%s' was not loaded: %s.", filePath, err), err)

		return false, true
	}

	return applyUntypedConfigMap(props, configMap, fmt.Sprintf("file '%s'", filePath), nil, onError)
}

// applyUntypedConfigMap sets each entry of a flat map as an untyped manual
// property, in property name order. The first invalid entry is reported and stops the processing.
// A nil propertyName uses keys as they are.
func applyUntypedConfigMap(
	props *Properties,
	configMap map[string]any,
	origin string,
	propertyName func(string) string,
	onError ErrorHandler,
) (didApply, didError bool) {
	type untypedEntry struct {
		name string
		key  string
	}
	entries := make([]untypedEntry, 0, len(configMap))
	for key := range configMap {
		name := key
		if propertyName != nil {
			name = propertyName(key)
		}
		entries = append(entries, untypedEntry{name: name, key: key})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].name != entries[j].name {
			return entries[i].name < entries[j].name
		}

		return entries[i].key < entries[j].key
	})

	for _, entry := range entries {
		name := entry.name
		value, err := cast.ToStringE(configMap[entry.key])
		if err == nil {
			err = props.SetManualProperty(name + AssignmentOperator + value)
		}
		if err != nil {
			onError(fmt.Sprintf("Property '%s' from %s was not validly formed: %s", name, origin, err), err)

			return false, true
		}
		didApply = true
	}

	return didApply, false
}
