package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestAccountID(t *testing.T) {
	t.Parallel()
	attr := logger.AccountID("65f0c0ffee")
	require.Equal(t, "account_id", attr.Key)
	assert.Equal(t, "65f0c0ffee", attr.Value.String())

	assert.True(t, logger.AccountID("").Equal(slog.Attr{}))
}

func TestRole(t *testing.T) {
	t.Parallel()
	attr := logger.Role("admin")
	require.Equal(t, "role", attr.Key)
	assert.Equal(t, "admin", attr.Value.Any())

	assert.True(t, logger.Role(nil).Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}

func TestComponentAndEvent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "component", logger.Component("tokens").Key)
	assert.Equal(t, "event", logger.Event("signin").Key)
}
