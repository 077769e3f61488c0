// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// assertEqual checks if 2 values are equal.
// Returns successful assertion status.
func assertEqual(t *testing.T, expected, actual any) bool {
	t.Helper()

	if !reflect.DeepEqual(expected, actual) {
		t.Errorf(
			"\n\t"+`expected "%+v" (%T),`+
				"\n\t"+`but got  "%+v" (%T)`+"\n",
			expected, expected,
			actual, actual,
		)

		return false
	}

	return true
}

// assertNil checks if value passed is nil.
// Returns successful assertion status.
func assertNil(t *testing.T, actual any) bool {
	t.Helper()

	if !isNil(actual) {
		t.Errorf("expected nil, but got %+v", actual)

		return false
	}

	return true
}

// requireNil fails the test immediately if passed value is not nil.
func requireNil(t *testing.T, actual any) {
	t.Helper()

	if !isNil(actual) {
		t.Fatalf("expected nil, but got %+v", actual)
	}
}

// assertNotNil checks if value passed is not nil.
// Returns successful assertion status.
func assertNotNil(t *testing.T, actual any) bool {
	t.Helper()

	if isNil(actual) {
		t.Error("expected not nil value")

		return false
	}

	return true
}

// assertTrue checks if value passed is true.
// Returns successful assertion status.
func assertTrue(t *testing.T, actual bool) bool {
	t.Helper()

	if !actual {
		t.Error("expected true, but got false")

		return false
	}

	return true
}

// assertFalse checks if value passed is false.
// Returns successful assertion status.
func assertFalse(t *testing.T, actual bool) bool {
	t.Helper()

	if actual {
		t.Error("expected false, but got true")

		return false
	}

	return true
}

// assertErrorMessage checks that err is not nil and has the given message.
// Returns successful assertion status.
func assertErrorMessage(t *testing.T, expectedMsg string, err error) bool {
	t.Helper()

	if err == nil {
		t.Errorf("expected error %q, but got nil", expectedMsg)

		return false
	}

	return assertEqual(t, expectedMsg, err.Error())
}

// isNil checks if a value is nil or not.
func isNil(value any) bool {
	if value == nil {
		return true
	}

	switch reflect.TypeOf(value).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func, reflect.Interface:
		return reflect.ValueOf(value).IsNil()
	}

	return false
}

// writeTestFile creates a file with given content in a test's temporary directory,
// and returns its path.
func writeTestFile(t *testing.T, fileName, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return filePath
}

// errorRecorder is an error handler which remembers the reported messages.
type errorRecorder struct {
	mu       sync.Mutex
	messages []string
	causes   []error
}

func (recorder *errorRecorder) handle(message string, cause error) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.messages = append(recorder.messages, message)
	recorder.causes = append(recorder.causes, cause)
}

func (recorder *errorRecorder) reported() string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	return strings.Join(recorder.messages, "\n")
}

func (recorder *errorRecorder) count() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	return len(recorder.messages)
}
