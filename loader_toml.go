// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"bytes"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TOMLFileLoader loads TOML configuration from a file.
// The location of TOML content based file is given as parameter.
func TOMLFileLoader(filePath string) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return TOMLReaderLoader(f).Load()
	})
}

// TOMLReaderLoader loads TOML configuration from an io.Reader.
func TOMLReaderLoader(reader io.Reader) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		if seekReader, ok := reader.(io.Seeker); ok {
			_, _ = seekReader.Seek(0, io.SeekStart) // move to the beginning in case of a re-load needed.
		}
		var configMap map[string]any
		dec := toml.NewDecoder(reader)
		if err := dec.Decode(&configMap); err != nil {
			return nil, err
		}

		return DeepCopyConfigMap(configMap), nil
	})
}

// LoadTOMLFile loads a TOML file into given properties.
// It returns whether the file's content was applied and whether an
// error was reported to the error handler.
func LoadTOMLFile(props *Properties, filePath string, opts ...FileLoaderOption) (didApply, didError bool) {
	format := structuredFormat{
		name:     "TOML",
		decode:   decodeTOML,
		sections: true,
	}

	return loadAndSet(props, filePath, format, newFileLoaderConfig(opts))
}

// decodeTOML parses a TOML content.
func decodeTOML(content []byte) (any, error) {
	var configMap map[string]any
	if err := toml.NewDecoder(bytes.NewReader(content)).Decode(&configMap); err != nil {
		return nil, err
	}

	return DeepCopyConfigMap(configMap), nil
}
