// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"os"
	"strings"
)

// EnvLoader loads configuration from OS's ENV.
// Only variables having given prefix are returned, with the prefix stripped.
// An empty prefix returns all variables.
func EnvLoader(prefix string) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		envs := os.Environ()

		configMap := make(map[string]any, len(envs))
		for _, env := range envs {
			key, value, found := strings.Cut(env, AssignmentOperator)
			if !found || !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
				continue
			}
			configMap[key[len(prefix):]] = value
		}

		return configMap, nil
	})
}
