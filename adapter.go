// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"fmt"
	"os"
	"strings"
)

// fileLoaderConfig holds the parameters shared by the LoadXXXFile functions.
type fileLoaderConfig struct {
	// onError is the handler for environment/data failures.
	onError ErrorHandler
	// clearPropertyMap indicates whether the properties get cleared before loading.
	clearPropertyMap bool
	// checkForFilePresence indicates whether a missing file is silently ignored.
	checkForFilePresence bool
	// sectionHeader is a dotted path selecting the sub-tree to load.
	sectionHeader string
	// json5 enables the tolerant JSON parsing (comments, trailing commas).
	json5 bool
}

func newFileLoaderConfig(opts []FileLoaderOption) fileLoaderConfig {
	cfg := fileLoaderConfig{
		clearPropertyMap:     true,
		checkForFilePresence: true,
	}

	// apply options, if any.
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.onError = errorHandlerOrDefault(cfg.onError)

	return cfg
}

// FileLoaderOption defines optional function for configuring
// a LoadXXXFile call.
type FileLoaderOption func(*fileLoaderConfig)

// FileLoaderWithErrorHandler sets the handler errors are reported to.
// By default, DefaultErrorHandler is used.
func FileLoaderWithErrorHandler(onError ErrorHandler) FileLoaderOption {
	return func(cfg *fileLoaderConfig) {
		cfg.onError = onError
	}
}

// FileLoaderWithClearPropertyMap sets whether the properties get cleared before
// the file's content is applied. By default, is true.
func FileLoaderWithClearPropertyMap(clearPropertyMap bool) FileLoaderOption {
	return func(cfg *fileLoaderConfig) {
		cfg.clearPropertyMap = clearPropertyMap
	}
}

// FileLoaderWithCheckForFilePresence sets whether a missing file is silently
// ignored (true) or reported as an error (false). By default, is true.
func FileLoaderWithCheckForFilePresence(checkForFilePresence bool) FileLoaderOption {
	return func(cfg *fileLoaderConfig) {
		cfg.checkForFilePresence = checkForFilePresence
	}
}

// FileLoaderWithSectionHeader sets a dotted path of the section to load
// (e.g. "tool.pymarkdown"). Honoured by the TOML, YAML and INI loaders.
// By default, the whole file is loaded.
func FileLoaderWithSectionHeader(sectionHeader string) FileLoaderOption {
	return func(cfg *fileLoaderConfig) {
		cfg.sectionHeader = sectionHeader
	}
}

// FileLoaderWithJSON5 enables the tolerant JSON parsing (comments and
// trailing commas are allowed). Honoured by the JSON loader.
func FileLoaderWithJSON5(json5 bool) FileLoaderOption {
	return func(cfg *fileLoaderConfig) {
		cfg.json5 = json5
	}
}

// structuredFormat describes how to parse a structured configuration format.
type structuredFormat struct {
	// name is used in error messages.
	name string
	// decode parses the file's content.
	decode func(content []byte) (any, error)
	// mappingOnly reports a non map top-level value as a parse error.
	mappingOnly bool
	// sections indicates whether the section header is honoured.
	sections bool
}

// isFilePresent returns true if path exists and is a regular file.
func isFilePresent(filePath string) bool {
	fInfo, err := os.Stat(filePath)

	return err == nil && fInfo.Mode().IsRegular()
}

// loadAndSet loads a structured file into props, following the protocol:
// missing file is not an error if presence is checked, parse errors and invalid
// keys are reported to the error handler. It returns whether the content was
// applied and whether an error was reported.
func loadAndSet(
	props *Properties,
	filePath string,
	format structuredFormat,
	cfg fileLoaderConfig,
) (didApply, didError bool) {
	if cfg.checkForFilePresence && !isFilePresent(filePath) {
		return false, false
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		cfg.onError(fmt.Sprintf("Specified configuration file '%s' was not loaded: %s.", filePath, err), err)

		return false, true
	}

	props.logDebug("loading configuration file", "file", filePath, "format", format.name)
	configMap, err := format.decode(content)
	if err != nil {
		cfg.onError(
			fmt.Sprintf("Specified configuration file '%s' is not a valid %s file: %s.", filePath, format.name, err),
			err,
		)

		return false, true
	}
	if format.mappingOnly && !isMapping(configMap) {
		cfg.onError(fmt.Sprintf("Specified configuration file '%s' is not a valid %s file.", filePath, format.name), nil)

		return false, true
	}

	if format.sections && cfg.sectionHeader != "" && !isEmptyStructure(configMap) {
		configMap = applySectionHeader(configMap, cfg.sectionHeader)
	}
	if isEmptyStructure(configMap) {
		return false, false
	}

	if err := props.LoadFromMap(configMap, cfg.clearPropertyMap); err != nil {
		cfg.onError(fmt.Sprintf("Specified configuration file '%s' is not valid: %s", filePath, err), err)

		return false, true
	}

	return true, false
}

// applySectionHeader descends a decoded structure through each part of the
// dotted section header. It returns nil if a part is missing or is not a map.
func applySectionHeader(configMap any, sectionHeader string) any {
	for _, headerPart := range strings.Split(sectionHeader, Separator) {
		stringMap, err := asConfigMap(configMap)
		if err != nil {
			return nil
		}
		next, found := stringMap[headerPart]
		if !found || !isMapping(next) {
			return nil
		}
		configMap = next
	}

	return configMap
}

// isEmptyStructure reports whether a decoded structure holds nothing to apply.
func isEmptyStructure(decoded any) bool {
	switch val := decoded.(type) {
	case nil:
		return true
	case map[string]any:
		return len(val) == 0
	case map[any]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case string:
		return val == ""
	case bool:
		return !val
	}

	return normalizeScalar(decoded) == int64(0) || normalizeScalar(decoded) == float64(0)
}
