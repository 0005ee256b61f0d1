package validator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "Ana"),
			validator.ValidEmail("email", "ana@campus.edu"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects failures", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "nope"),
			validator.MinLen("email", "nope", 6),
		)
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 3)
		assert.Equal(t, []string{"name", "email"}, ve.Fields())
		assert.True(t, ve.Has("email"))
		assert.Len(t, ve.Get("email"), 2)
		assert.Equal(t, "validation.required", ve[0].Key)
		assert.Contains(t, err.Error(), "name: field is required")
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("signup: %w", validator.Apply(validator.Required("name", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.False(t, validator.IsValidationError(errors.New("other")))
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
	})
}

func TestWhen(t *testing.T) {
	t.Parallel()

	avatar := ""
	rules := validator.When(avatar != "", validator.ValidURL("avatar", avatar))
	assert.NoError(t, validator.Apply(rules...))

	avatar = "not a url"
	rules = validator.When(avatar != "", validator.ValidURL("avatar", avatar))
	assert.Error(t, validator.Apply(rules...))
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"email ok", validator.ValidEmail("e", "a@x.com"), true},
		{"email display name", validator.ValidEmail("e", "A <a@x.com>"), false},
		{"email no tld", validator.ValidEmail("e", "a@localhost"), false},
		{"email empty label", validator.ValidEmail("e", "a@x..com"), false},
		{"url https", validator.ValidURL("u", "https://github.com/ana"), true},
		{"url ftp", validator.ValidURL("u", "ftp://files.campus.edu"), false},
		{"url relative", validator.ValidURL("u", "/ana"), false},
		{"minlen runes", validator.MinLen("p", "ñandú", 5), true},
		{"minlen short", validator.MinLen("p", "abc", 6), false},
		{"maxlen", validator.MaxLen("b", strings.Repeat("x", 11), 10), false},
		{"maxbytes multibyte", validator.MaxBytes("p", "ññ", 3), false},
		{"maxbytes ascii", validator.MaxBytes("p", "abc", 3), true},
		{"equal", validator.Equal("c", "Pw123!", "Pw123!"), true},
		{"not equal", validator.Equal("c", "Pw123!", "pw123!"), false},
		{"one of", validator.OneOf("s", "active", []string{"active", "inactive"}), true},
		{"not one of", validator.OneOf("s", "pending", []string{"active", "inactive"}), false},
		{"required comparable", validator.RequiredComparable("r", 0), false},
		{"not empty", validator.NotEmpty("roles", []int{1}), true},
		{"empty", validator.NotEmpty("roles", []int{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.rule.Check())
		})
	}
}
