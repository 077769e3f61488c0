// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const pyprojectTOMLFileName = "pyproject.toml"

// LocalPyprojectTOMLFile is a configuration source referencing
// a "pyproject.toml" file, from current working directory, that may or may not exist.
// Only the given section of the file is applied.
type LocalPyprojectTOMLFile struct {
	sectionHeader string
}

// NewLocalPyprojectTOMLFile instantiates a new LocalPyprojectTOMLFile source.
// The section header is the dotted path of the section holding the
// application's configuration (e.g. "tool.myapp").
func NewLocalPyprojectTOMLFile(sectionHeader string) LocalPyprojectTOMLFile {
	return LocalPyprojectTOMLFile{sectionHeader: sectionHeader}
}

// ApplyConfiguration loads the section of the local "pyproject.toml" file, if it exists.
func (src LocalPyprojectTOMLFile) ApplyConfiguration(
	_ LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	props.logDebug("looking for local project file", "file", pyprojectTOMLFileName)
	filePath, err := filepath.Abs(pyprojectTOMLFileName)
	if err != nil {
		filePath = pyprojectTOMLFileName
	}

	return LoadTOMLFile(
		props,
		filePath,
		FileLoaderWithSectionHeader(src.sectionHeader),
		FileLoaderWithErrorHandler(onError),
		FileLoaderWithClearPropertyMap(false),
		FileLoaderWithCheckForFilePresence(true),
	)
}

// LocalProjectConfigurationFile is a configuration source referencing
// a project configuration file, relative to current working directory,
// that may or may not exist.
//
// The file is first looked up with its given name. Only if nothing got applied
// and no error occurred, the alternate file types are tried, in order, by
// replacing the file's extension.
type LocalProjectConfigurationFile struct {
	fileName           string
	fileType           FileType
	alternateFileTypes []FileType
}

// NewLocalProjectConfigurationFile instantiates a new LocalProjectConfigurationFile source.
// An error of category ErrInvalidArgument is returned if fileType is FileTypeNone.
func NewLocalProjectConfigurationFile(
	fileName string,
	fileType FileType,
	alternateFileTypes ...FileType,
) (LocalProjectConfigurationFile, error) {
	if fileType == FileTypeNone {
		return LocalProjectConfigurationFile{}, newPropertyError(
			ErrInvalidArgument,
			nil,
			"Project configuration file must have a non-NONE file type set.",
		)
	}

	return LocalProjectConfigurationFile{
		fileName:           fileName,
		fileType:           fileType,
		alternateFileTypes: append([]FileType(nil), alternateFileTypes...),
	}, nil
}

// ApplyConfiguration loads the first project configuration file found.
func (src LocalProjectConfigurationFile) ApplyConfiguration(
	opts LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	props.logDebug("looking for local configuration files", "file", src.fileName)

	baseFileName := strings.TrimSuffix(src.fileName, src.fileType.Extension())
	didApply, didError = loadConfig(src.fileType, absPath(src.fileName), opts, props, onError)
	for _, alternateFileType := range src.alternateFileTypes {
		if didApply || didError {
			break
		}
		didApply, didError = loadConfig(
			alternateFileType,
			absPath(baseFileName)+alternateFileType.Extension(),
			opts,
			props,
			onError,
		)
	}

	if !didApply {
		props.logDebug("no default configuration files were loaded")
	}

	return didApply, didError
}

// absPath returns the absolute representation of path, or path itself
// if that cannot be computed.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return path
}

// SpecifiedConfigurationFile is a configuration source referencing
// a configuration file explicitly given, typically by the user.
//
// Unlike the other file sources, a missing file is an error.
// If the file type is FileTypeNone, the type is determined by the file's
// extension, and, if that fails, by trying to parse the file's content as
// JSON, YAML, and TOML, in this order.
type SpecifiedConfigurationFile struct {
	filePath string
	fileType FileType
}

// NewSpecifiedConfigurationFile instantiates a new SpecifiedConfigurationFile source.
// An empty file path makes the source a no-op.
func NewSpecifiedConfigurationFile(filePath string, fileType FileType) SpecifiedConfigurationFile {
	return SpecifiedConfigurationFile{filePath: filePath, fileType: fileType}
}

// ApplyConfiguration loads the specified file.
func (src SpecifiedConfigurationFile) ApplyConfiguration(
	opts LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	if src.filePath == "" {
		return false, false
	}

	if !isFilePresent(src.filePath) {
		onError(fmt.Sprintf("Specified configuration file `%s` does not exist.", src.filePath), nil)

		return false, true
	}

	fileType := src.determineFileType(opts, props)
	if fileType == FileTypeNone {
		onError(
			fmt.Sprintf(
				"Specified configuration file '%s' was not parseable as a JSON, YAML, or TOML file.",
				src.filePath,
			),
			nil,
		)

		return false, true
	}

	return loadConfig(fileType, src.filePath, opts, props, onError)
}

// determineFileType returns the configured file type, or detects it.
func (src SpecifiedConfigurationFile) determineFileType(opts LoaderOptions, props *Properties) FileType {
	if src.fileType != FileTypeNone {
		return src.fileType
	}
	if fileType := fileTypeByExtension(src.filePath); fileType != FileTypeNone {
		return fileType
	}

	props.logDebug("attempting to determine configuration file type by content", "file", src.filePath)
	content, err := os.ReadFile(src.filePath)
	if err != nil {
		return FileTypeNone
	}
	if _, err := decodeJSON(content, opts.LoadJSONAsJSON5); err == nil {
		return FileTypeJSON
	}
	if _, err := decodeYAML(content); err == nil {
		return FileTypeYAML
	}
	if _, err := decodeTOML(content); err == nil {
		return FileTypeTOML
	}

	return FileTypeNone
}

// ManuallySetProperties is a configuration source made of "key=value" strings,
// typically given on the command line.
type ManuallySetProperties struct {
	manualProperties []string
}

// NewManuallySetProperties instantiates a new ManuallySetProperties source.
func NewManuallySetProperties(manualProperties []string) ManuallySetProperties {
	return ManuallySetProperties{manualProperties: append([]string(nil), manualProperties...)}
}

// ApplyConfiguration sets each manual property, in order.
// The first malformed one is reported and stops the processing.
func (src ManuallySetProperties) ApplyConfiguration(
	_ LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	if len(src.manualProperties) == 0 {
		return false, false
	}

	for _, manualProperty := range src.manualProperties {
		props.logDebug("attempting to set manual property", "property", manualProperty)
		if err := props.SetManualProperty(manualProperty); err != nil {
			onError(
				fmt.Sprintf("Manually set property '%s' was not validly formed: %s", manualProperty, err),
				err,
			)

			return false, true
		}
	}

	return true, false
}
