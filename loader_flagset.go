// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"flag"
	"strings"
)

// ManualPropertyFlag is a [flag.Value] collecting the "key=value" manual
// properties given by repeating a flag (-s a.b=1 -s c=$!true).
// Each value is verified with [VerifyManualPropertyForm] when parsed.
type ManualPropertyFlag []string

// String returns the collected manual properties, comma separated.
func (f *ManualPropertyFlag) String() string {
	if f == nil {
		return ""
	}

	return strings.Join(*f, ",")
}

// Set verifies and appends a manual property.
func (f *ManualPropertyFlag) Set(manualProperty string) error {
	if err := VerifyManualPropertyForm(manualProperty); err != nil {
		return err
	}
	*f = append(*f, manualProperty)

	return nil
}

// DefaultFlags holds the command line arguments registered by [RegisterDefaultFlags].
type DefaultFlags struct {
	// ConfigFile is the path of the configuration file to load, if any.
	ConfigFile string
	// ManualProperties are the "key=value" properties set from command line.
	ManualProperties ManualPropertyFlag
	// StrictConfig asks for errors instead of defaults on bad configuration.
	StrictConfig bool
}

// RegisterDefaultFlags registers on a [flag.FlagSet] the usual configuration
// arguments of an application:
//
//	-config / -c     path of the configuration file
//	-set / -s        manual property, can be repeated
//	-strict-config   strict mode
//
// The flag set has to be parsed before using returned DefaultFlags.
func RegisterDefaultFlags(flgSet *flag.FlagSet) *DefaultFlags {
	flags := &DefaultFlags{}
	configUsage := "path of the configuration file to load"
	flgSet.StringVar(&flags.ConfigFile, "config", "", configUsage)
	flgSet.StringVar(&flags.ConfigFile, "c", "", configUsage+" (shorthand)")
	setUsage := "manually set an individual configuration property, as key=value"
	flgSet.Var(&flags.ManualProperties, "set", setUsage)
	flgSet.Var(&flags.ManualProperties, "s", setUsage+" (shorthand)")
	flgSet.BoolVar(
		&flags.StrictConfig,
		"strict-config",
		false,
		"report bad configuration values as errors instead of falling back on defaults",
	)

	return flags
}

// Apply registers on loader the specified configuration file, followed by the
// manual properties, so the latter take precedence.
func (flags *DefaultFlags) Apply(loader *MultisourceLoader) *MultisourceLoader {
	return loader.
		AddSpecifiedConfigurationFile(flags.ConfigFile, FileTypeNone).
		AddManuallySetProperties(flags.ManualProperties)
}

// ApplyStrictMode enables strict mode on props if it was requested.
func (flags *DefaultFlags) ApplyStrictMode(props *Properties) {
	if flags.StrictConfig {
		props.EnableStrictMode()
	}
}
