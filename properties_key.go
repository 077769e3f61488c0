// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"strings"
)

const defaultKeyRole = "Full property key"

// VerifyFullPartForm verifies that one part of a full key is composed properly:
// it must not be empty and must not contain a whitespace, the assignment
// operator or the separator.
func VerifyFullPartForm(keyPart string) error {
	if strings.ContainsAny(keyPart, " \t\n"+AssignmentOperator+Separator) {
		return newPropertyError(
			ErrInvalidKeyPart,
			nil,
			"Each part of the property key cannot contain a whitespace character, a '%s' character, or a '%s' character.",
			AssignmentOperator,
			Separator,
		)
	}
	if keyPart == "" {
		return newPropertyError(
			ErrInvalidKeyPart,
			nil,
			"Each part of the property key must contain at least one character.",
		)
	}

	return nil
}

// VerifyFullKeyForm verifies that a full key is composed properly.
// The optional second parameter replaces "Full property key" in the
// error messages, to name the role of the key (e.g. "Configuration section name").
func VerifyFullKeyForm(propertyKey string, alternateName ...string) error {
	keyName := defaultKeyRole
	if len(alternateName) > 0 && alternateName[0] != "" {
		keyName = alternateName[0]
	}

	if strings.HasPrefix(propertyKey, Separator) || strings.HasSuffix(propertyKey, Separator) {
		return newPropertyError(
			ErrInvalidKeyForm,
			nil,
			"%s must not start or end with the '%s' character.",
			keyName,
			Separator,
		)
	}
	if strings.Contains(propertyKey, Separator+Separator) {
		return newPropertyError(
			ErrInvalidKeyForm,
			nil,
			"%s cannot contain multiples of the %s without any text between them.",
			keyName,
			Separator,
		)
	}
	for _, keyPart := range strings.Split(propertyKey, Separator) {
		if err := VerifyFullPartForm(keyPart); err != nil {
			return err
		}
	}

	return nil
}

// VerifyManualPropertyForm verifies the general form of a manual property string,
// "key=value", with key being a valid full key.
func VerifyManualPropertyForm(manualProperty string) error {
	equalsIdx := strings.Index(manualProperty, AssignmentOperator)
	if equalsIdx == -1 {
		return newPropertyError(
			ErrMissingAssignment,
			nil,
			"Manual property key and value must be separated by the '%s' character.",
			AssignmentOperator,
		)
	}

	return VerifyFullKeyForm(manualProperty[:equalsIdx])
}
