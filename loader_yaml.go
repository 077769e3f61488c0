// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLFileLoader loads YAML configuration from a file.
// The location of YAML content based file is given as parameter.
func YAMLFileLoader(filePath string) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return YAMLReaderLoader(f).Load()
	})
}

// YAMLReaderLoader loads YAML configuration from an io.Reader.
func YAMLReaderLoader(reader io.Reader) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		if seekReader, ok := reader.(io.Seeker); ok {
			_, _ = seekReader.Seek(0, io.SeekStart) // move to the beginning in case of a re-load needed.
		}
		content, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		decoded, err := decodeYAML(content)
		if err != nil {
			return nil, err
		}

		return asConfigMap(decoded)
	})
}

// LoadYAMLFile loads a YAML file into given properties.
// A file whose top-level value is not a mapping is reported as invalid.
// It returns whether the file's content was applied and whether an
// error was reported to the error handler.
func LoadYAMLFile(props *Properties, filePath string, opts ...FileLoaderOption) (didApply, didError bool) {
	format := structuredFormat{
		name:        "YAML",
		decode:      decodeYAML,
		mappingOnly: true,
		sections:    true,
	}

	return loadAndSet(props, filePath, format, newFileLoaderConfig(opts))
}

// errYAMLMultipleDocuments is returned when a YAML content holds more than one document.
var errYAMLMultipleDocuments = errors.New("expected a single document in the stream")

// decodeYAML parses a single document YAML content.
// An empty content decodes to nil. Anything after the document,
// be it another document or unparseable text, is an error.
func decodeYAML(content []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, err
	}

	var next any
	if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}

		return nil, errYAMLMultipleDocuments
	}

	return deepCopyValue(decoded), nil
}
