// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"fmt"

	"github.com/actforgood/xlog"
)

// MultisourceLoader is a composite of configuration sources, applied
// on a Properties object in registration order. A later source overwrites
// the properties a previous source has set.
//
// Usage example:
//
//	props := xprops.NewProperties()
//	hasErrors := xprops.NewMultisourceLoader().
//		AddLocalPyprojectTOMLFile("tool.myapp").
//		AddLocalProjectConfigurationFile(".myapp.json", xprops.FileTypeJSON, xprops.FileTypeYAML).
//		AddSpecifiedConfigurationFile(configFilePath, xprops.FileTypeNone).
//		AddManuallySetProperties(manualProperties).
//		Process(props, nil)
type MultisourceLoader struct {
	// sources to apply configuration from.
	sources []ConfigurationSource
	// opts are passed to each source.
	opts LoaderOptions
	// logger is an optional debug logger.
	logger xlog.Logger
}

// NewMultisourceLoader instantiates a new, empty, MultisourceLoader.
func NewMultisourceLoader(opts ...MultisourceLoaderOption) *MultisourceLoader {
	loader := &MultisourceLoader{}

	// apply options, if any.
	for _, opt := range opts {
		opt(loader)
	}

	return loader
}

// AddLocalPyprojectTOMLFile registers a LocalPyprojectTOMLFile source.
func (loader *MultisourceLoader) AddLocalPyprojectTOMLFile(sectionHeader string) *MultisourceLoader {
	return loader.add(NewLocalPyprojectTOMLFile(sectionHeader))
}

// AddLocalProjectConfigurationFile registers a LocalProjectConfigurationFile source.
// It panics if fileType is FileTypeNone, as that is a programming error.
func (loader *MultisourceLoader) AddLocalProjectConfigurationFile(
	fileName string,
	fileType FileType,
	alternateFileTypes ...FileType,
) *MultisourceLoader {
	src, err := NewLocalProjectConfigurationFile(fileName, fileType, alternateFileTypes...)
	if err != nil {
		panic(err)
	}

	return loader.add(src)
}

// AddSpecifiedConfigurationFile registers a SpecifiedConfigurationFile source.
// Pass FileTypeNone to have the file's type determined at processing time.
func (loader *MultisourceLoader) AddSpecifiedConfigurationFile(filePath string, fileType FileType) *MultisourceLoader {
	return loader.add(NewSpecifiedConfigurationFile(filePath, fileType))
}

// AddManuallySetProperties registers a ManuallySetProperties source.
func (loader *MultisourceLoader) AddManuallySetProperties(manualProperties []string) *MultisourceLoader {
	return loader.add(NewManuallySetProperties(manualProperties))
}

// AddCustomSource registers a custom ConfigurationSource.
// It panics if src is nil, as that is a programming error.
func (loader *MultisourceLoader) AddCustomSource(src ConfigurationSource) *MultisourceLoader {
	if src == nil {
		panic(newPropertyError(
			ErrInvalidArgument,
			nil,
			"Added source '%v' is not a valid configuration source.",
			src,
		))
	}

	return loader.add(src)
}

func (loader *MultisourceLoader) add(src ConfigurationSource) *MultisourceLoader {
	loader.sources = append(loader.sources, src)

	return loader
}

// Process applies the registered sources on props, in order.
// It stops at the first source reporting an error, and returns true in that case.
// Errors are reported to onError, or to DefaultErrorHandler if onError is nil.
func (loader *MultisourceLoader) Process(props *Properties, onError ErrorHandler) bool {
	onError = errorHandlerOrDefault(onError)

	for idx, src := range loader.sources {
		didApply, didError := src.ApplyConfiguration(loader.opts, props, onError)
		loader.logDebug(
			"applied configuration source",
			"index", idx,
			"source", fmt.Sprintf("%T", src),
			"applied", didApply,
			"error", didError,
		)
		if didError {
			return true
		}
	}

	return false
}

func (loader *MultisourceLoader) logDebug(msg string, keyValues ...any) {
	if loader.logger == nil {
		return
	}
	loader.logger.Debug(append([]any{xlog.MessageKey, "[xprops] " + msg}, keyValues...)...)
}

// MultisourceLoaderOption defines optional function for configuring
// a MultisourceLoader.
type MultisourceLoaderOption func(*MultisourceLoader)

// MultisourceLoaderWithJSON5 enables the tolerant JSON parsing for JSON files
// (comments and trailing commas are allowed).
func MultisourceLoaderWithJSON5() MultisourceLoaderOption {
	return func(loader *MultisourceLoader) {
		loader.opts.LoadJSONAsJSON5 = true
	}
}

// MultisourceLoaderWithTOMLSectionHeader sets the section header used
// when loading TOML files (other than "pyproject.toml", which has its own).
func MultisourceLoaderWithTOMLSectionHeader(sectionHeader string) MultisourceLoaderOption {
	return func(loader *MultisourceLoader) {
		loader.opts.SectionHeaderIfTOML = sectionHeader
	}
}

// MultisourceLoaderWithLogger sets a logger the processing gets debugged with.
func MultisourceLoaderWithLogger(logger xlog.Logger) MultisourceLoaderOption {
	return func(loader *MultisourceLoader) {
		loader.logger = logger
	}
}
