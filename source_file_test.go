// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/actforgood/xprops"
)

func TestFileType(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		fileType          xprops.FileType
		expectedExtension string
		expectedName      string
	}{
		{fileType: xprops.FileTypeNone, expectedExtension: "", expectedName: "NONE"},
		{fileType: xprops.FileTypeJSON, expectedExtension: ".json", expectedName: "JSON"},
		{fileType: xprops.FileTypeYAML, expectedExtension: ".yaml", expectedName: "YAML"},
		{fileType: xprops.FileTypeYML, expectedExtension: ".yml", expectedName: "YAML"},
		{fileType: xprops.FileTypeTOML, expectedExtension: ".toml", expectedName: "TOML"},
	}

	for _, testData := range tests {
		test := testData // capture range variable
		t.Run(test.expectedName+test.expectedExtension, func(t *testing.T) {
			t.Parallel()

			assertEqual(t, test.expectedExtension, test.fileType.Extension())
			assertEqual(t, test.expectedName, test.fileType.String())
		})
	}
}

func TestSpecifiedConfigurationFile(t *testing.T) {
	t.Parallel()

	t.Run("success - empty path is a no-op", testSpecifiedConfigurationFileEmptyPath)
	t.Run("error - missing file", testSpecifiedConfigurationFileMissing)
	t.Run("success - type given explicitly", testSpecifiedConfigurationFileExplicitType)
	t.Run("success - type inferred from extension", testSpecifiedConfigurationFileByExtension)
	t.Run("success - json detected by content", testSpecifiedConfigurationFileJSONContent)
	t.Run("success - toml detected by content", testSpecifiedConfigurationFileTOMLContent)
	t.Run("error - scalar detected as yaml", testSpecifiedConfigurationFileScalarContent)
	t.Run("error - not parseable", testSpecifiedConfigurationFileNotParseable)
}

func testSpecifiedConfigurationFileEmptyPath(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile("", xprops.FileTypeJSON)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertFalse(t, didApply)
	assertFalse(t, didError)
	assertEqual(t, 0, recorder.count())
}

func testSpecifiedConfigurationFileMissing(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		filePath = filepath.Join(t.TempDir(), "missing.json")
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile(filePath, xprops.FileTypeNone)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertFalse(t, didApply)
	assertTrue(t, didError)
	assertEqual(t, "Specified configuration file `"+filePath+"` does not exist.", recorder.reported())
}

func testSpecifiedConfigurationFileExplicitType(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		filePath = writeTestFile(t, "config.txt", "[plugins]\nmd013 = false\n")
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile(filePath, xprops.FileTypeTOML)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertTrue(t, didApply)
	assertFalse(t, didError)
	enabled, err := props.GetBoolean("plugins.md013", true)
	assertNil(t, err)
	assertFalse(t, enabled)
}

func testSpecifiedConfigurationFileByExtension(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		filePath = writeTestFile(t, "config.yml", "plugins:\n  md013: false\n")
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile(filePath, xprops.FileTypeNone)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertTrue(t, didApply)
	assertFalse(t, didError)
	assertEqual(t, []string{"plugins.md013"}, props.PropertyNames())
}

func testSpecifiedConfigurationFileJSONContent(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		filePath = writeTestFile(t, "settings", "{\n// comment\n\"line_length\": 100,\n}")
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile(filePath, xprops.FileTypeNone)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(
		xprops.LoaderOptions{LoadJSONAsJSON5: true},
		props,
		recorder.handle,
	)

	// assert
	assertTrue(t, didApply)
	assertFalse(t, didError)
	lineLength, err := props.GetInteger("line_length", 80)
	assertNil(t, err)
	assertEqual(t, int64(100), lineLength)
}

func testSpecifiedConfigurationFileTOMLContent(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		filePath = writeTestFile(t, "settings", "[tool]\nline_length = 100\n")
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile(filePath, xprops.FileTypeNone)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertTrue(t, didApply)
	assertFalse(t, didError)
	assertEqual(t, []string{"tool.line_length"}, props.PropertyNames())
}

func testSpecifiedConfigurationFileScalarContent(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		filePath = writeTestFile(t, "settings", "just some text\n")
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile(filePath, xprops.FileTypeNone)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertFalse(t, didApply)
	assertTrue(t, didError)
	assertEqual(t, "Specified configuration file '"+filePath+"' is not a valid YAML file.", recorder.reported())
}

func testSpecifiedConfigurationFileNotParseable(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		filePath = writeTestFile(t, "settings", "a: [b\n")
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewSpecifiedConfigurationFile(filePath, xprops.FileTypeNone)
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertFalse(t, didApply)
	assertTrue(t, didError)
	assertEqual(
		t,
		"Specified configuration file '"+filePath+"' was not parseable as a JSON, YAML, or TOML file.",
		recorder.reported(),
	)
}

func TestNewLocalProjectConfigurationFile(t *testing.T) {
	t.Parallel()

	t.Run("error - none file type", func(t *testing.T) {
		t.Parallel()

		_, err := xprops.NewLocalProjectConfigurationFile(".myapp", xprops.FileTypeNone)

		assertTrue(t, errors.Is(err, xprops.ErrInvalidArgument))
		assertErrorMessage(t, "Project configuration file must have a non-NONE file type set.", err)
	})
}

func TestLocalProjectConfigurationFile(t *testing.T) {
	t.Parallel()

	t.Run("success - main file is applied", testLocalProjectConfigurationFileMain)
	t.Run("success - alternate file is applied", testLocalProjectConfigurationFileAlternate)
	t.Run("success - no file exists", testLocalProjectConfigurationFileNoFile)
	t.Run("error - invalid main file stops the lookup", testLocalProjectConfigurationFileInvalidMain)
}

func testLocalProjectConfigurationFileMain(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		dir      = t.TempDir()
		props    = xprops.NewProperties()
		recorder errorRecorder
	)
	requireNil(t, os.WriteFile(filepath.Join(dir, ".myapp.json"), []byte(`{"source": "json"}`), 0o600))
	requireNil(t, os.WriteFile(filepath.Join(dir, ".myapp.yaml"), []byte("source: yaml\n"), 0o600))
	subject, err := xprops.NewLocalProjectConfigurationFile(
		filepath.Join(dir, ".myapp.json"),
		xprops.FileTypeJSON,
		xprops.FileTypeYAML,
	)
	requireNil(t, err)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertTrue(t, didApply)
	assertFalse(t, didError)
	source, _ := props.GetString("source", "")
	assertEqual(t, "json", source)
}

func testLocalProjectConfigurationFileAlternate(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		dir      = t.TempDir()
		props    = xprops.NewProperties()
		recorder errorRecorder
	)
	requireNil(t, os.WriteFile(filepath.Join(dir, ".myapp.toml"), []byte("source = \"toml\"\n"), 0o600))
	subject, err := xprops.NewLocalProjectConfigurationFile(
		filepath.Join(dir, ".myapp.json"),
		xprops.FileTypeJSON,
		xprops.FileTypeYAML,
		xprops.FileTypeYML,
		xprops.FileTypeTOML,
	)
	requireNil(t, err)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertTrue(t, didApply)
	assertFalse(t, didError)
	source, _ := props.GetString("source", "")
	assertEqual(t, "toml", source)
}

func testLocalProjectConfigurationFileNoFile(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		dir      = t.TempDir()
		props    = xprops.NewProperties()
		recorder errorRecorder
	)
	subject, err := xprops.NewLocalProjectConfigurationFile(
		filepath.Join(dir, ".myapp.json"),
		xprops.FileTypeJSON,
		xprops.FileTypeYAML,
	)
	requireNil(t, err)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertFalse(t, didApply)
	assertFalse(t, didError)
	assertEqual(t, 0, recorder.count())
}

func testLocalProjectConfigurationFileInvalidMain(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		dir      = t.TempDir()
		props    = xprops.NewProperties()
		recorder errorRecorder
	)
	requireNil(t, os.WriteFile(filepath.Join(dir, ".myapp.json"), []byte(`{"source": `), 0o600))
	requireNil(t, os.WriteFile(filepath.Join(dir, ".myapp.yaml"), []byte("source: yaml\n"), 0o600))
	subject, err := xprops.NewLocalProjectConfigurationFile(
		filepath.Join(dir, ".myapp.json"),
		xprops.FileTypeJSON,
		xprops.FileTypeYAML,
	)
	requireNil(t, err)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert
	assertFalse(t, didApply)
	assertTrue(t, didError)
	assertEqual(t, 1, recorder.count())
	assertEqual(t, 0, props.NumberOfProperties())
}

func TestLocalPyprojectTOMLFile(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		props    = xprops.NewProperties()
		recorder errorRecorder
		subject  = xprops.NewLocalPyprojectTOMLFile("tool.myapp")
	)

	// act
	didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

	// assert: there is no pyproject.toml in the package directory.
	assertFalse(t, didApply)
	assertFalse(t, didError)
	assertEqual(t, 0, recorder.count())
}

func TestManuallySetProperties(t *testing.T) {
	t.Parallel()

	t.Run("success - properties are set", func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			props    = xprops.NewProperties()
			recorder errorRecorder
			subject  = xprops.NewManuallySetProperties([]string{"log.level=debug", "retries=$#3"})
		)

		// act
		didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

		// assert
		assertTrue(t, didApply)
		assertFalse(t, didError)
		retries, err := props.GetInteger("retries", 0)
		assertNil(t, err)
		assertEqual(t, int64(3), retries)
	})
	t.Run("success - no properties", func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			props    = xprops.NewProperties()
			recorder errorRecorder
			subject  = xprops.NewManuallySetProperties(nil)
		)

		// act
		didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

		// assert
		assertFalse(t, didApply)
		assertFalse(t, didError)
	})
	t.Run("error - malformed property stops the processing", func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			props    = xprops.NewProperties()
			recorder errorRecorder
			subject  = xprops.NewManuallySetProperties([]string{"a=1", "abc", "b=2"})
		)

		// act
		didApply, didError := subject.ApplyConfiguration(xprops.LoaderOptions{}, props, recorder.handle)

		// assert
		assertFalse(t, didApply)
		assertTrue(t, didError)
		assertEqual(
			t,
			"Manually set property 'abc' was not validly formed: "+
				"Manual property key and value must be separated by the '=' character.",
			recorder.reported(),
		)
		assertEqual(t, []string{"a"}, props.PropertyNames())
	})
}
