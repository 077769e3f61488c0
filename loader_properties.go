// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"os"
	"strings"

	"github.com/magiconair/properties"
)

// PropertiesLoaderOption configures a Java Properties loader.
type PropertiesLoaderOption func(*propertiesLoaderConfig)

type propertiesLoaderConfig struct {
	propertyNames bool
}

// PropertiesLoaderWithPropertyNames makes the loader return property names,
// which are the lower-cased keys ("DB.Host" is returned as "db.host").
// Two keys differing only by case are an error.
func PropertiesLoaderWithPropertyNames() PropertiesLoaderOption {
	return func(cfg *propertiesLoaderConfig) {
		cfg.propertyNames = true
	}
}

// PropertiesFileLoader loads Java Properties configuration from a file.
// The location of properties content based file is given as parameter.
// Keys are returned flat, as they are written ("db.host").
func PropertiesFileLoader(filePath string, opts ...PropertiesLoaderOption) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}

		return PropertiesBytesLoader(content, opts...).Load()
	})
}

// PropertiesBytesLoader loads Properties configuration from bytes.
// "${key}" references are expanded.
func PropertiesBytesLoader(propertiesContent []byte, opts ...PropertiesLoaderOption) Loader {
	var cfg propertiesLoaderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return LoaderFunc(func() (map[string]any, error) {
		loader := properties.Loader{
			Encoding:         properties.UTF8,
			DisableExpansion: false,
		}
		parsed, err := loader.LoadBytes(propertiesContent)
		if err != nil {
			return nil, err
		}
		keys := parsed.Keys()
		entries := make(map[string]string, len(keys))
		for _, key := range keys {
			entries[key], _ = parsed.Get(key)
		}
		if cfg.propertyNames {
			return translateFlatKeys(entries, strings.ToLower)
		}

		configMap := make(map[string]any, len(entries))
		for key, value := range entries {
			configMap[key] = value
		}

		return configMap, nil
	})
}
