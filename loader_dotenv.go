// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// envHierarchySeparator splits the hierarchy of an environment variable name,
// as "." is not allowed there ("APP_DB__HOST" => "db.host").
const envHierarchySeparator = "__"

// DotEnvLoaderOption configures a .env loader.
type DotEnvLoaderOption func(*dotEnvLoaderConfig)

type dotEnvLoaderConfig struct {
	propertyNames bool
}

// DotEnvLoaderWithPropertyNames makes the loader return property names
// instead of raw variable names: "DB__HOST" is returned as "db.host".
// Two variables translating to the same property name are an error.
func DotEnvLoaderWithPropertyNames() DotEnvLoaderOption {
	return func(cfg *dotEnvLoaderConfig) {
		cfg.propertyNames = true
	}
}

// DotEnvFileLoader loads .env configuration from a file.
// The location of .env content based file is given as parameter.
func DotEnvFileLoader(filePath string, opts ...DotEnvLoaderOption) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return DotEnvReaderLoader(f, opts...).Load()
	})
}

// DotEnvReaderLoader loads .env configuration from an [io.Reader].
func DotEnvReaderLoader(reader io.Reader, opts ...DotEnvLoaderOption) Loader {
	var cfg dotEnvLoaderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return LoaderFunc(func() (map[string]any, error) {
		if seekReader, ok := reader.(io.Seeker); ok {
			_, _ = seekReader.Seek(0, io.SeekStart) // move to the beginning in case of a re-load needed.
		}
		envs, err := godotenv.Parse(reader)
		if err != nil {
			return nil, err
		}
		if !cfg.propertyNames {
			configMap := make(map[string]any, len(envs))
			for key, value := range envs {
				configMap[key] = value
			}

			return configMap, nil
		}

		return translateFlatKeys(envs, envPropertyName)
	})
}

// envPropertyName translates an environment variable name into a property name.
func envPropertyName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), envHierarchySeparator, Separator)
}

// translateFlatKeys returns a config map with keys translated into property names.
// Keys are processed in sorted order, so the reported collision is stable.
func translateFlatKeys(entries map[string]string, propertyName func(string) string) (map[string]any, error) {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var (
		configMap = make(map[string]any, len(entries))
		origins   = make(map[string]string, len(entries))
	)
	for _, key := range keys {
		name := propertyName(key)
		if origin, found := origins[name]; found {
			return nil, fmt.Errorf("keys '%s' and '%s' both translate to property '%s'", origin, key, name)
		}
		origins[name] = key
		configMap[name] = entries[key]
	}

	return configMap, nil
}
