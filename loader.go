// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

// Loader is responsible for parsing a configuration source
// into a nested key value map.
type Loader interface {
	// Load returns a nested configuration key value map or an error.
	//
	// It's Loader's responsibility to return a map that is safe for
	// an eventual later mutation (see also DeepCopyConfigMap utility).
	Load() (map[string]any, error)
}

// The LoaderFunc type is an adapter to allow the use of
// ordinary functions as Loaders. If fn is a function
// with the appropriate signature, LoaderFunc(fn) is a
// Loader that calls fn.
type LoaderFunc func() (map[string]any, error)

// Load calls fn().
func (fn LoaderFunc) Load() (map[string]any, error) {
	return fn()
}

// asConfigMap returns decoded content as a map, or ErrNotAMapping.
func asConfigMap(decoded any) (map[string]any, error) {
	switch configMap := decoded.(type) {
	case map[string]any:
		return configMap, nil
	case map[any]any:
		return toStringKeyedMap(configMap)
	}

	return nil, newPropertyError(ErrNotAMapping, nil, "Specified parameter was not a dictionary.")
}
