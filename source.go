// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"strings"
)

// FileType is a structured configuration file format.
type FileType byte

const (
	// FileTypeNone means the format is not known (yet).
	FileTypeNone FileType = iota
	// FileTypeJSON is a JSON file (.json).
	FileTypeJSON
	// FileTypeYAML is a YAML file (.yaml).
	FileTypeYAML
	// FileTypeYML is a YAML file (.yml).
	FileTypeYML
	// FileTypeTOML is a TOML file (.toml).
	FileTypeTOML
)

// knownFileTypes lists the file types, in detection order.
var knownFileTypes = []FileType{FileTypeJSON, FileTypeYAML, FileTypeYML, FileTypeTOML}

// Extension returns the file extension associated to the file type,
// or an empty string for FileTypeNone.
func (fileType FileType) Extension() string {
	switch fileType {
	case FileTypeJSON:
		return ".json"
	case FileTypeYAML:
		return ".yaml"
	case FileTypeYML:
		return ".yml"
	case FileTypeTOML:
		return ".toml"
	}

	return ""
}

// String returns the name of the file type.
func (fileType FileType) String() string {
	switch fileType {
	case FileTypeJSON:
		return "JSON"
	case FileTypeYAML, FileTypeYML:
		return "YAML"
	case FileTypeTOML:
		return "TOML"
	}

	return "NONE"
}

// fileTypeByExtension returns the file type matching the file's extension.
func fileTypeByExtension(filePath string) FileType {
	for _, fileType := range knownFileTypes {
		if strings.HasSuffix(filePath, fileType.Extension()) {
			return fileType
		}
	}

	return FileTypeNone
}

// LoaderOptions are the options shared by all the configuration sources
// of a MultisourceLoader.
type LoaderOptions struct {
	// LoadJSONAsJSON5 enables the tolerant JSON parsing for JSON files.
	LoadJSONAsJSON5 bool
	// SectionHeaderIfTOML is the section header used when loading TOML files.
	SectionHeaderIfTOML string
}

// ConfigurationSource is one origin of configuration applied on a Properties object
// by a MultisourceLoader.
type ConfigurationSource interface {
	// ApplyConfiguration applies the source's configuration on props.
	// Expected failures are reported to onError, and signaled by didError.
	// didApply tells if anything was applied.
	ApplyConfiguration(opts LoaderOptions, props *Properties, onError ErrorHandler) (didApply, didError bool)
}

// The ConfigurationSourceFunc type is an adapter to allow the use of
// ordinary functions as ConfigurationSource.
type ConfigurationSourceFunc func(opts LoaderOptions, props *Properties, onError ErrorHandler) (bool, bool)

// ApplyConfiguration calls fn.
func (fn ConfigurationSourceFunc) ApplyConfiguration(
	opts LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	return fn(opts, props, onError)
}

// loadConfig loads a file of known type into props, without clearing
// existing properties, and ignoring a missing file.
func loadConfig(
	fileType FileType,
	filePath string,
	opts LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	props.logDebug("attempting to find/load configuration file", "file", filePath, "format", fileType.String())
	fileOpts := []FileLoaderOption{
		FileLoaderWithErrorHandler(onError),
		FileLoaderWithClearPropertyMap(false),
		FileLoaderWithCheckForFilePresence(true),
	}

	switch fileType {
	case FileTypeJSON:
		return LoadJSONFile(props, filePath, append(fileOpts, FileLoaderWithJSON5(opts.LoadJSONAsJSON5))...)
	case FileTypeYAML, FileTypeYML:
		return LoadYAMLFile(props, filePath, fileOpts...)
	case FileTypeTOML:
		return LoadTOMLFile(props, filePath, append(fileOpts, FileLoaderWithSectionHeader(opts.SectionHeaderIfTOML))...)
	}

	return false, false
}
