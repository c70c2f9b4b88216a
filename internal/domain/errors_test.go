package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidArgument, KindOf(InvalidArgument("Invalid or missing %s", "userId")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NotFound("blog"))))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnexpected, KindOf(Unexpected(errors.New("boom"))))
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("category")
	assert.Equal(t, "Category not found", err.Error())
	assert.True(t, IsNotFound(err, "category"))
	assert.False(t, IsNotFound(err, "user"))
}

func TestUnexpectedUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Unexpected(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection reset", err.Error())
}

func TestIsValidID(t *testing.T) {
	cases := map[string]bool{
		"65a1f0c2e4b0a1b2c3d4e5f6":  true,
		"65A1F0C2E4B0A1B2C3D4E5F6":  true,
		"":                          false,
		"65a1f0c2e4b0a1b2c3d4e5f":   false,
		"65a1f0c2e4b0a1b2c3d4e5f67": false,
		"zza1f0c2e4b0a1b2c3d4e5f6":  false,
		"abcdefghijkl":              false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsValidID(in), "IsValidID(%q)", in)
	}
	assert.True(t, IsValidID(NewID()))
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", NormalizeID("65A1F0C2E4B0A1B2C3D4E5F6"))
	id := NewID()
	assert.Equal(t, id, NormalizeID(id))
}
