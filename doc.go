// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

// Package xprops provides a typed, hierarchical, configuration properties store for an application.
// Nested configuration maps are flattened into dotted keys ("plugins.md013.line_length"),
// and retrieved through type-checked accessors, with defaults, validators and a strict mode.
// Properties can be loaded from json, yaml, toml, ini files, from manual "key=value" strings,
// and layered from multiple sources (local project files, a user specified file,
// command line, env, .env, (java) properties, etcd) with a MultisourceLoader.
package xprops
