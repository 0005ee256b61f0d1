package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusnet/accounts/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ana@campus.edu", sanitizer.NormalizeEmail("  Ana@Campus.EDU \n"))
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  Ana   María  ":   "Ana María",
		"Ana\nMaría":        "Ana María",
		"Ana\x00\x07María":  "AnaMaría",
		"José":        "José",
		"Ana  Ma": "Ana Ma",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizer.SingleLine(in), "input %q", in)
	}
}

func TestMultiLine(t *testing.T) {
	t.Parallel()

	in := "  First   line \r\n\r\n\r\n\r\nSecond\tline\x00 "
	assert.Equal(t, "First line\n\nSecond line", sanitizer.MultiLine(in))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	upper := sanitizer.Compose(sanitizer.SingleLine, strings.ToUpper)
	assert.Equal(t, "CS DEPT", upper("  cs   dept "))
	assert.Equal(t, "x", sanitizer.Apply(" x ", sanitizer.Trim))
}
