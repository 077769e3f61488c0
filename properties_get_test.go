// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/actforgood/xprops"
)

var errTooBig = errors.New("too big")

func maxValidator(maxValue int64) xprops.ValidatorFunc {
	return func(value any) error {
		if value.(int64) > maxValue {
			return errTooBig
		}

		return nil
	}
}

func newLoadedProperties(t *testing.T, configMap map[string]any, opts ...xprops.PropertiesOption) *xprops.Properties {
	t.Helper()

	props := xprops.NewProperties(opts...)
	requireNil(t, props.LoadFromMap(configMap, true))

	return props
}

func TestProperties_GetProperty(t *testing.T) {
	t.Parallel()

	t.Run("success - found value of requested kind", testGetPropertyFound)
	t.Run("success - lookup is idempotent", testGetPropertyIdempotent)
	t.Run("success - missing returns default", testGetPropertyMissingReturnsDefault)
	t.Run("success - kind mismatch returns default", testGetPropertyMismatchReturnsDefault)
	t.Run("success - strict override per call", testGetPropertyStrictOverride)
	t.Run("success - validator accepts", testGetPropertyValidatorAccepts)
	t.Run("success - validator rejects outside strict mode", testGetPropertyValidatorRejectsLenient)
	t.Run("error - validator rejects in strict mode", testGetPropertyValidatorRejectsStrict)
	t.Run("error - kind mismatch in strict mode", testGetPropertyMismatchStrict)
	t.Run("error - required property missing", testGetPropertyRequiredMissing)
	t.Run("error - default of another kind", testGetPropertyDefaultOfAnotherKind)
	t.Run("error - invalid kind", testGetPropertyInvalidKind)
	t.Run("error - invalid name", testGetPropertyInvalidName)
}

func testGetPropertyFound(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"a": map[string]any{"b": 1}})

	// act
	value, err := subject.GetProperty("a.b", xprops.KindInteger)

	// assert
	assertNil(t, err)
	assertEqual(t, int64(1), value)
	assertEqual(t, 1, subject.NumberOfProperties())
}

func testGetPropertyIdempotent(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"a": "value"})

	for i := 0; i < 5; i++ {
		// act
		value, err := subject.GetProperty("a", xprops.KindString)

		// assert
		assertNil(t, err)
		assertEqual(t, "value", value)
	}
	assertEqual(t, []string{"a"}, subject.PropertyNames())
}

func testGetPropertyMissingReturnsDefault(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties()

	// act
	value, err := subject.GetProperty("missing", xprops.KindString, xprops.WithDefault("def"))
	nilValue, nilErr := subject.GetProperty("missing", xprops.KindString)

	// assert
	assertNil(t, err)
	assertEqual(t, "def", value)
	assertNil(t, nilErr)
	assertNil(t, nilValue)
}

func testGetPropertyMismatchReturnsDefault(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"property": 1})

	// act
	value, err := subject.GetString("property", "def")

	// assert
	assertNil(t, err)
	assertEqual(t, "def", value)
}

func testGetPropertyStrictOverride(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"property": 1}, xprops.PropertiesWithStrictMode())

	// act
	value, err := subject.GetString("property", "def", xprops.WithStrictMode(false))

	// assert
	assertNil(t, err)
	assertEqual(t, "def", value)
}

func testGetPropertyValidatorAccepts(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"line_length": 80}, xprops.PropertiesWithStrictMode())

	// act
	value, err := subject.GetInteger("line_length", 100, xprops.WithValidator(maxValidator(120)))

	// assert
	assertNil(t, err)
	assertEqual(t, int64(80), value)
}

func testGetPropertyValidatorRejectsLenient(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"line_length": 200})

	// act
	value, err := subject.GetInteger("line_length", 100, xprops.WithValidator(maxValidator(120)))

	// assert
	assertNil(t, err)
	assertEqual(t, int64(100), value)
}

func testGetPropertyValidatorRejectsStrict(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"line_length": 200}, xprops.PropertiesWithStrictMode())

	// act
	_, err := subject.GetInteger("line_length", 100, xprops.WithValidator(maxValidator(120)))

	// assert
	assertErrorMessage(t, "The value for property 'line_length' is not valid: too big", err)
	assertTrue(t, errors.Is(err, xprops.ErrValidationFailed))
	assertTrue(t, errors.Is(err, errTooBig))
}

func testGetPropertyMismatchStrict(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"property": 1})

	// act
	_, err := subject.GetString("property", "def", xprops.WithStrictMode(true))

	// assert
	assertErrorMessage(t, "The value for property 'property' must be of type 'str'.", err)
	assertTrue(t, errors.Is(err, xprops.ErrTypeMismatch))
}

func testGetPropertyRequiredMissing(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties()

	// act
	value, err := subject.GetProperty("missing", xprops.KindInteger, xprops.Required())

	// assert
	assertNil(t, value)
	assertErrorMessage(t, "A value for property 'missing' must be provided.", err)
	assertTrue(t, errors.Is(err, xprops.ErrMissingRequiredProperty))
}

func testGetPropertyDefaultOfAnotherKind(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{"a": 1})

	// act
	_, err := subject.GetProperty("a", xprops.KindInteger, xprops.WithDefault("1"))

	// assert
	assertErrorMessage(t, "The default value for property 'a' must either be nil or a 'int' value.", err)
	assertTrue(t, errors.Is(err, xprops.ErrTypeMismatch))
}

func testGetPropertyInvalidKind(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties()

	// act
	_, err := subject.GetProperty("a", xprops.Kind(100))

	// assert
	assertTrue(t, errors.Is(err, xprops.ErrInvalidArgument))
}

func testGetPropertyInvalidName(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties()

	// act
	_, err := subject.GetProperty("a..b", xprops.KindString)

	// assert
	assertErrorMessage(t, "Full property key cannot contain multiples of the . without any text between them.", err)
}

func TestProperties_GetWithUntypedConversion(t *testing.T) {
	t.Parallel()

	t.Run("success - integer promotion", testGetUntypedIntegerPromotion)
	t.Run("success - boolean promotion", testGetUntypedBooleanPromotion)
	t.Run("success - float promotion", testGetUntypedFloatPromotion)
	t.Run("success - unconvertible integer falls back on default", testGetUntypedUnconvertibleInteger)
	t.Run("error - no conversion in strict mode", testGetUntypedNoConversionStrict)
	t.Run("success - typed values are never converted", testGetTypedValuesAreNotConverted)
}

func testGetUntypedIntegerPromotion(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties(xprops.PropertiesWithConvertUntypedIfPossible())
	requireNil(t, subject.SetManualProperty("x=5"))

	// act
	value, err := subject.GetInteger("x", -1)

	// assert
	assertNil(t, err)
	assertEqual(t, int64(5), value)
}

func testGetUntypedBooleanPromotion(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties(xprops.PropertiesWithConvertUntypedIfPossible())
	requireNil(t, subject.SetManualProperty("yes=True", "no=nope"))

	// act
	yes, errYes := subject.GetBoolean("yes", false)
	no, errNo := subject.GetBoolean("no", true)

	// assert
	assertNil(t, errYes)
	assertTrue(t, yes)
	assertNil(t, errNo)
	assertFalse(t, no)
}

func testGetUntypedFloatPromotion(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties(xprops.PropertiesWithConvertUntypedIfPossible())
	requireNil(t, subject.SetManualProperty("ratio=0.75"))

	// act
	value, err := subject.GetFloat("ratio", 0)

	// assert
	assertNil(t, err)
	assertEqual(t, 0.75, value)
}

func testGetUntypedUnconvertibleInteger(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties(xprops.PropertiesWithConvertUntypedIfPossible())
	requireNil(t, subject.SetManualProperty("x=five"))

	// act
	value, err := subject.GetInteger("x", 3)

	// assert
	assertNil(t, err)
	assertEqual(t, int64(3), value)
}

func testGetUntypedNoConversionStrict(t *testing.T) {
	t.Parallel()

	// arrange
	subject := xprops.NewProperties(xprops.PropertiesWithStrictMode())
	requireNil(t, subject.SetManualProperty("x=5"))

	// act
	_, err := subject.GetInteger("x", -1)

	// assert
	assertErrorMessage(t, "The value for property 'x' must be of type 'int'.", err)
}

func testGetTypedValuesAreNotConverted(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(
		t,
		map[string]any{"x": "5"},
		xprops.PropertiesWithConvertUntypedIfPossible(),
	)

	// act
	value, err := subject.GetInteger("x", -1)

	// assert
	assertNil(t, err)
	assertEqual(t, int64(-1), value)
}

func TestProperties_GetRaw(t *testing.T) {
	t.Parallel()

	// arrange
	subject := newLoadedProperties(t, map[string]any{
		"list":   []any{"a", "b"},
		"string": "text",
	})

	// act
	list, errList := subject.GetRaw("list")
	str, errStr := subject.GetRaw("string")

	// assert
	assertNil(t, errList)
	assertEqual(t, []any{"a", "b"}, list)
	list.([]any)[0] = "changed"
	again, _ := subject.GetRaw("list")
	assertEqual(t, []any{"a", "b"}, again)

	assertNil(t, errStr)
	assertNil(t, str)
}

func ExampleProperties_GetInteger() {
	props := xprops.NewProperties(xprops.PropertiesWithConvertUntypedIfPossible())
	_ = props.LoadFromMap(map[string]any{ // treat the error on live code!
		"plugins": map[string]any{
			"md013": map[string]any{"line_length": 100},
		},
	}, true)
	_ = props.SetManualProperty("plugins.md013.code_block_line_length=120")

	lineLength, _ := props.GetInteger("plugins.md013.line_length", 80)
	codeBlockLineLength, _ := props.GetInteger("plugins.md013.code_block_line_length", 80)
	headingLineLength, _ := props.GetInteger("plugins.md013.heading_line_length", 80)
	fmt.Println(lineLength, codeBlockLineLength, headingLineLength)

	// Output:
	// 100 120 80
}
