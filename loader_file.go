// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"errors"
	"path/filepath"
)

// ErrUnknownConfigFileExt is an error returned by [FileLoader] if file extension
// does not match any supported format.
var ErrUnknownConfigFileExt = errors.New("unknown configuration file extension")

// FileLoader is a factory for appropriate XFileLoader based on file's extension.
// Supported extensions are: .json, .json5, .yml, .yaml, .toml, .ini, .env, .properties.
func FileLoader(filePath string) Loader {
	switch filepath.Ext(filePath) {
	case ".json":
		return JSONFileLoader(filePath)
	case ".json5":
		return JSON5FileLoader(filePath)
	case ".yml", ".yaml":
		return YAMLFileLoader(filePath)
	case ".toml":
		return TOMLFileLoader(filePath)
	case ".ini":
		return NewIniFileLoader(filePath)
	case ".env":
		return DotEnvFileLoader(filePath)
	case ".properties":
		return PropertiesFileLoader(filePath)
	}

	return LoaderFunc(func() (map[string]any, error) {
		return nil, ErrUnknownConfigFileExt
	})
}
