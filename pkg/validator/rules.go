package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"
)

func rule(field, key, message string, check func() bool) Rule {
	return Rule{
		Check: check,
		Error: ValidationError{Field: field, Message: message, Key: key},
	}
}

// Required fails on empty or whitespace-only strings.
func Required(field, value string) Rule {
	return rule(field, "validation.required", "field is required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// RequiredComparable fails on the zero value of T.
func RequiredComparable[T comparable](field string, value T) Rule {
	var zero T
	return rule(field, "validation.required", "field is required", func() bool {
		return value != zero
	})
}

// MinLen counts runes, not bytes.
func MinLen(field, value string, min int) Rule {
	return rule(field, "validation.min_length", fmt.Sprintf("must be at least %d characters long", min), func() bool {
		return utf8.RuneCountInString(value) >= min
	})
}

func MaxLen(field, value string, max int) Rule {
	return rule(field, "validation.max_length", fmt.Sprintf("must be at most %d characters long", max), func() bool {
		return utf8.RuneCountInString(value) <= max
	})
}

// MaxBytes bounds the encoded length, e.g. for bcrypt's 72-byte input limit.
func MaxBytes(field, value string, max int) Rule {
	return rule(field, "validation.max_bytes", fmt.Sprintf("must be at most %d bytes long", max), func() bool {
		return len(value) <= max
	})
}

// ValidEmail accepts a bare address whose domain has at least one dot.
func ValidEmail(field, value string) Rule {
	return rule(field, "validation.email", "must be a valid email address", func() bool {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}
		local, domain, ok := strings.Cut(addr.Address, "@")
		if !ok || local == "" {
			return false
		}
		for part := range strings.SplitSeq(domain, ".") {
			if part == "" {
				return false
			}
		}
		return strings.Contains(domain, ".")
	})
}

// ValidURL accepts absolute http and https URLs.
func ValidURL(field, value string) Rule {
	return rule(field, "validation.url", "must be a valid URL", func() bool {
		u, err := url.ParseRequestURI(value)
		if err != nil || u.Host == "" {
			return false
		}
		return u.Scheme == "http" || u.Scheme == "https"
	})
}

// Equal fails unless value equals other. Used for confirmation fields.
func Equal[T comparable](field string, value, other T) Rule {
	return rule(field, "validation.equal", "does not match", func() bool {
		return value == other
	})
}

func OneOf[T comparable](field string, value T, options []T) Rule {
	return rule(field, "validation.one_of", fmt.Sprintf("must be one of: %v", options), func() bool {
		return slices.Contains(options, value)
	})
}

// NotEmpty fails on an empty slice.
func NotEmpty[T any](field string, values []T) Rule {
	return rule(field, "validation.not_empty", "must not be empty", func() bool {
		return len(values) > 0
	})
}
