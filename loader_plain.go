// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

// PlainLoader is an explicit go configuration map retriever.
// It simply returns a copy of the given config map parameter.
//
// It can be used, for example, to bulk load application hardcoded
// defaults with [Properties.LoadFrom].
func PlainLoader(configMap map[string]any) Loader {
	// make a copy to preserve state at current time.
	configMapCopy := DeepCopyConfigMap(configMap)

	return LoaderFunc(func() (map[string]any, error) {
		return DeepCopyConfigMap(configMapCopy), nil // make a copy for an eventual (safe) later mutation.
	})
}
