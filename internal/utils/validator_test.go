// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colorFixture struct {
	Color string `validate:"required,display_color"`
}

type watchlistFixture struct {
	Type string `validate:"required,watchlist_type"`
}

type genderFixture struct {
	Gender string `validate:"required,gender"`
}

func TestDisplayColorValidator(t *testing.T) {
	assert.NoError(t, ValidateStruct(&colorFixture{Color: "#FF5733"}))
	assert.NoError(t, ValidateStruct(&colorFixture{Color: "#a1b2c3"}))

	assert.Error(t, ValidateStruct(&colorFixture{Color: "FF5733"}))
	assert.Error(t, ValidateStruct(&colorFixture{Color: "#FF573"}))
	assert.Error(t, ValidateStruct(&colorFixture{Color: "#GGGGGG"}))
	assert.Error(t, ValidateStruct(&colorFixture{Color: "#FF5733AA"}))
}

func TestWatchlistTypeValidator(t *testing.T) {
	assert.NoError(t, ValidateStruct(&watchlistFixture{Type: "whitelist"}))
	assert.NoError(t, ValidateStruct(&watchlistFixture{Type: "blacklist"}))

	assert.Error(t, ValidateStruct(&watchlistFixture{Type: "greylist"}))
	assert.Error(t, ValidateStruct(&watchlistFixture{Type: "Whitelist"}))
}

func TestGenderValidator(t *testing.T) {
	assert.NoError(t, ValidateStruct(&genderFixture{Gender: "male"}))
	assert.NoError(t, ValidateStruct(&genderFixture{Gender: "female"}))
	assert.NoError(t, ValidateStruct(&genderFixture{Gender: "other"}))

	assert.Error(t, ValidateStruct(&genderFixture{Gender: "unknown"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&colorFixture{Color: "nope"})
	require.Error(t, err)

	errors := GetValidationErrors(err)
	require.Len(t, errors, 1)
	assert.Equal(t, "color", errors[0].Field)
	assert.Equal(t, "display_color", errors[0].Tag)
	assert.NotEmpty(t, errors[0].Message)
}
