// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// iniLoadOptions makes the ini package behave like a strict, python-like,
// config parser: keys are case insensitive, values are kept verbatim, and
// duplicate sections/keys are kept so they can be reported.
// Indented lines continue the value of the previous key.
var iniLoadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	AllowNonUniqueSections:     true,
	AllowShadows:               true,
	IgnoreInlineComment:        true,
	PreserveSurroundedQuote:    true,
	AllowPythonMultilineValues: true,
}

// errINIMissingSectionHeader is returned when an INI content has items
// before its first section header.
var errINIMissingSectionHeader = errors.New("file contains no section headers")

// IniFileLoader is a loader that returns configuration from
// an INI content based file, as a map of sections to maps of keys.
// Keys of the [DEFAULT] section are returned at top level.
type IniFileLoader struct {
	// filePath is ini content based file to be parsed.
	filePath string
}

// NewIniFileLoader instantiates a new IniFileLoader object that loads
// INI configuration from a file.
// The location of INI content based file is given as parameter.
func NewIniFileLoader(filePath string) IniFileLoader {
	return IniFileLoader{filePath: filePath}
}

// Load returns a configuration key-value map from a INI file,
// or an error if something bad happens along the process.
func (loader IniFileLoader) Load() (map[string]any, error) {
	content, err := os.ReadFile(loader.filePath)
	if err != nil {
		return nil, err
	}
	sections, err := parseINI(content)
	if err != nil {
		return nil, err
	}

	configMap := make(map[string]any)
	for _, section := range sections {
		target := configMap
		if section.name != ini.DefaultSection {
			target = make(map[string]any, len(section.items))
			configMap[section.name] = target
		}
		for _, item := range section.items {
			target[item.name] = item.value
		}
	}

	return configMap, nil
}

// iniItem is a key-value pair of an INI section.
type iniItem struct {
	name  string
	value string
}

// iniSection is a parsed INI section, with items of the default
// section inherited.
type iniSection struct {
	name  string
	items []iniItem
}

// parseINI parses an INI content into its sections, in file order.
// Items of the [DEFAULT] section are inherited by every other section.
// Content must start with a section header, and a section or a key within
// a section occurring twice is an error.
func parseINI(content []byte) ([]iniSection, error) {
	if !startsWithSectionHeader(content) {
		return nil, errINIMissingSectionHeader
	}
	cfg, err := ini.LoadSources(iniLoadOptions, content)
	if err != nil {
		return nil, err
	}

	var (
		defaultItems []iniItem
		sections     []iniSection
		seen         = make(map[string]struct{})
	)
	for _, section := range cfg.Sections() {
		name := section.Name()
		if _, found := seen[name]; found && name != ini.DefaultSection {
			return nil, fmt.Errorf("section '%s' already exists", name)
		}
		seen[name] = struct{}{}

		items := make([]iniItem, 0, len(section.Keys()))
		for _, key := range section.Keys() {
			if len(key.ValueWithShadows()) > 1 {
				return nil, fmt.Errorf("option '%s' in section '%s' already exists", key.Name(), name)
			}
			items = append(items, iniItem{name: key.Name(), value: key.Value()})
		}
		if name == ini.DefaultSection {
			defaultItems = append(defaultItems, items...)

			continue
		}
		sections = append(sections, iniSection{name: name, items: items})
	}

	for idx := range sections {
		sections[idx].items = inheritDefaultItems(defaultItems, sections[idx].items)
	}
	if len(defaultItems) > 0 {
		sections = append([]iniSection{{name: ini.DefaultSection, items: defaultItems}}, sections...)
	}

	return sections, nil
}

// startsWithSectionHeader reports whether the first line that is neither
// blank nor a comment is a section header.
// An empty (or comments only) content is accepted.
func startsWithSectionHeader(content []byte) bool {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf")) // UTF-8 BOM
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		return strings.HasPrefix(line, "[")
	}

	return true
}

// inheritDefaultItems returns default items overridden by section's items,
// followed by section's own items.
func inheritDefaultItems(defaultItems, items []iniItem) []iniItem {
	if len(defaultItems) == 0 {
		return items
	}
	merged := make([]iniItem, len(defaultItems), len(defaultItems)+len(items))
	copy(merged, defaultItems)
	positions := make(map[string]int, len(merged))
	for idx, item := range merged {
		positions[item.name] = idx
	}
	for _, item := range items {
		if idx, found := positions[item.name]; found {
			merged[idx] = item

			continue
		}
		merged = append(merged, item)
	}

	return merged
}

// LoadINIFile loads an INI file into given properties.
// Each item is applied as an untyped manual property "section.item=value",
// or, if a section header is given, only the items of that section are
// applied as "item=value".
// It returns whether at least one item was applied (and no error occurred) and
// whether an error was reported to the error handler.
func LoadINIFile(props *Properties, filePath string, opts ...FileLoaderOption) (didApply, didError bool) {
	cfg := newFileLoaderConfig(opts)
	if !isFilePresent(filePath) {
		if cfg.checkForFilePresence {
			return false, false
		}
		cfg.onError(fmt.Sprintf("Specified configuration file '%s' does not exist.", filePath), nil)

		return false, true
	}

	if cfg.clearPropertyMap {
		props.Clear()
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		cfg.onError(fmt.Sprintf("Specified configuration file '%s' was not loaded: %s.", filePath, err), err)

		return false, true
	}
	props.logDebug("loading configuration file", "file", filePath, "format", "INI")
	sections, err := parseINI(content)
	if err != nil {
		cfg.onError(fmt.Sprintf("Specified configuration file '%s' is not a valid config file: %s.", filePath, err), err)

		return false, true
	}

	setPropertyNames := make(map[string]struct{})
	for _, section := range sections {
		if section.name == ini.DefaultSection {
			continue
		}
		if err := VerifyFullKeyForm(section.name, "Configuration section name"); err != nil {
			cfg.onError(
				fmt.Sprintf(
					"Configuration section name '%s' in file '%s' is not a valid section name: %s",
					section.name, filePath, err,
				),
				err,
			)
			didError = true

			continue
		}
		if cfg.sectionHeader != "" && section.name != cfg.sectionHeader {
			continue
		}
		for _, item := range section.items {
			if !setINIItem(props, filePath, section.name, item, setPropertyNames, cfg) {
				didError = true

				break
			}
			didApply = true
		}
	}

	return didApply && !didError, didError
}

// setINIItem applies one item, reporting any problem to the error handler.
func setINIItem(
	props *Properties,
	filePath string,
	sectionName string,
	item iniItem,
	setPropertyNames map[string]struct{},
	cfg fileLoaderConfig,
) bool {
	if err := VerifyFullKeyForm(item.name, "Configuration item name"); err != nil {
		cfg.onError(
			fmt.Sprintf(
				"Configuration item name '%s' in file '%s' is not a valid section name: %s",
				item.name, filePath, err,
			),
			err,
		)

		return false
	}

	fullPropertyName := sectionName + Separator + item.name
	if cfg.sectionHeader != "" {
		fullPropertyName = item.name
	}
	if strings.TrimSpace(item.value) == "" {
		cfg.onError(
			fmt.Sprintf(
				"Full configuration item name '%s' in file '%s' does not have a value assigned to it.",
				fullPropertyName, filePath,
			),
			nil,
		)

		return false
	}
	if _, found := setPropertyNames[fullPropertyName]; found {
		cfg.onError(
			fmt.Sprintf(
				"Full configuration item name '%s' in file '%s' occurs multiple times using different formats.",
				fullPropertyName, filePath,
			),
			nil,
		)

		return false
	}

	if err := props.SetManualProperty(fullPropertyName + AssignmentOperator + item.value); err != nil {
		cfg.onError(
			fmt.Sprintf(
				"Full configuration item name '%s' in file '%s' is not valid: %s",
				fullPropertyName, filePath, err,
			),
			err,
		)

		return false
	}
	setPropertyNames[fullPropertyName] = struct{}{}

	return true
}
