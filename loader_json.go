// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/tailscale/hujson"
)

// errJSONExtraData is returned when a JSON content has data after the top-level value.
var errJSONExtraData = errors.New("extra data after top-level value")

// JSONFileLoader loads JSON configuration from a file.
// The location of JSON content based file is given as parameter.
func JSONFileLoader(filePath string) Loader {
	return jsonFileLoader(filePath, false)
}

// JSON5FileLoader loads tolerant JSON configuration from a file,
// allowing comments and trailing commas.
func JSON5FileLoader(filePath string) Loader {
	return jsonFileLoader(filePath, true)
}

func jsonFileLoader(filePath string, json5 bool) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return jsonReaderLoader(f, json5).Load()
	})
}

// JSONReaderLoader loads JSON configuration from an [io.Reader].
func JSONReaderLoader(reader io.Reader) Loader {
	return jsonReaderLoader(reader, false)
}

// JSON5ReaderLoader loads tolerant JSON configuration from an [io.Reader].
func JSON5ReaderLoader(reader io.Reader) Loader {
	return jsonReaderLoader(reader, true)
}

func jsonReaderLoader(reader io.Reader, json5 bool) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		if seekReader, ok := reader.(io.Seeker); ok {
			_, _ = seekReader.Seek(0, io.SeekStart) // move to the beginning in case of a re-load needed.
		}
		content, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		decoded, err := decodeJSON(content, json5)
		if err != nil {
			return nil, err
		}

		return asConfigMap(decoded)
	})
}

// LoadJSONFile loads a JSON file into given properties.
// It returns whether the file's content was applied and whether an
// error was reported to the error handler.
func LoadJSONFile(props *Properties, filePath string, opts ...FileLoaderOption) (didApply, didError bool) {
	cfg := newFileLoaderConfig(opts)
	format := structuredFormat{
		name: "JSON",
		decode: func(content []byte) (any, error) {
			return decodeJSON(content, cfg.json5)
		},
	}

	return loadAndSet(props, filePath, format, cfg)
}

// decodeJSON parses a JSON content. Numbers are kept exact (integers are
// not turned into floats). In json5 mode, comments and trailing commas are
// stripped before parsing.
func decodeJSON(content []byte, json5 bool) (any, error) {
	if json5 {
		standardized, err := hujson.Standardize(content)
		if err != nil {
			return nil, err
		}
		content = standardized
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errJSONExtraData
	}

	return deepCopyValue(decoded), nil
}
