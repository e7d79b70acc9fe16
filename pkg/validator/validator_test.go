package validator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelRegex(t *testing.T) {
	testCases := map[string]bool{
		"A":            true,
		"North East":   true,
		"18-24":        true,
		"$100+":        true,
		"":             false,
		" leading":     false,
		"trailing ":    false,
		"a|b":          false,
		"a=b":          false,
		"*":            false,
		"multi\nline":  false,
		"Ünïcödé":      true,
		"x":            true,
	}

	for testCase, expectedMatch := range testCases {
		actualMatch := ValidateLabel(testCase)
		assert.Equal(t, expectedMatch, actualMatch, fmt.Sprintf("unexpected label: %q", testCase))
	}
}

func TestSpecKeyRegex(t *testing.T) {
	testCases := map[string]bool{
		"revenue":         true,
		"revenue.net":     true,
		"age-group":       true,
		"income_bracket2": true,
		"2revenue":        false,
		"_revenue":        false,
		"gross sales":     false,
		"":                false,
	}

	for testCase, expectedMatch := range testCases {
		actualMatch := ValidateSpecKey(testCase)
		assert.Equal(t, expectedMatch, actualMatch, fmt.Sprintf("unexpected spec key: %q", testCase))
	}
}

func TestValidateStruct(t *testing.T) {
	type options struct {
		Data      string   `validate:"required"`
		Precision int      `validate:"gte=0,lte=12"`
		Direction string   `validate:"omitempty,oneof=upper lower"`
		Labels    []string `validate:"unique,dive,label"`
	}

	err := ValidateStruct(options{Data: "Revenue", Precision: 2, Direction: "upper", Labels: []string{"A", "B"}})
	assert.NoError(t, err)

	err = ValidateStruct(options{Precision: -1})
	assert.EqualError(t, err, "data is required; precision failed 'gte=0' rule, got '-1'")

	err = ValidateStruct(options{Data: "Revenue", Direction: "sideways"})
	assert.EqualError(t, err, "direction must be one of [upper lower], got 'sideways'")

	err = ValidateStruct(options{Data: "Revenue", Labels: []string{"A", "A"}})
	assert.EqualError(t, err, "labels must be unique")

	err = ValidateStruct(options{Data: "Revenue", Labels: []string{"A|B"}})
	assert.EqualError(t, err, "labels[0] has invalid label 'A|B'")
}
