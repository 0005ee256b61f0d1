package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/svc/auth"
)

func testTokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Issuer:           "test",
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		ActivationSecret: "activation-secret",
		ResetSecret:      "reset-secret",
		SelectionSecret:  "selection-secret",
		AccessTTL:        15 * time.Minute,
		RefreshTTL:       7 * 24 * time.Hour,
		ActivationTTL:    24 * time.Hour,
		ResetTTL:         15 * time.Minute,
		SelectionTTL:     5 * time.Minute,
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTokens(t *testing.T) (*auth.TokenService, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := auth.NewTokenService(testTokenConfig(), auth.WithClock(c.now))
	require.NoError(t, err)
	return svc, c
}

func TestNewTokenService_Config(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	cfg.ResetSecret = ""
	_, err := auth.NewTokenService(cfg)
	assert.ErrorIs(t, err, auth.ErrTokenConfig)

	cfg = testTokenConfig()
	cfg.AccessTTL = 0
	_, err = auth.NewTokenService(cfg)
	assert.ErrorIs(t, err, auth.ErrTokenConfig)
}

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, c := newTokens(t)

	access, exp, err := svc.IssueAccessToken("acc-1", auth.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(15*time.Minute), exp)

	claims, err := svc.Verify(access, auth.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID())
	assert.Equal(t, auth.RoleStaff, claims.Role)
	assert.Equal(t, auth.KindAccess, claims.Kind)

	refresh, exp, err := svc.IssueRefreshToken("acc-1")
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(7*24*time.Hour), exp)
	claims, err = svc.Verify(refresh, auth.KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID())

	for kind, issue := range map[auth.Kind]func(string) (string, error){
		auth.KindActivation: svc.IssueActivationToken,
		auth.KindReset:      svc.IssueResetToken,
		auth.KindSelection:  svc.IssueSelectionToken,
	} {
		tok, err := issue("acc-2")
		require.NoError(t, err, kind)
		claims, err := svc.Verify(tok, kind)
		require.NoError(t, err, kind)
		assert.Equal(t, "acc-2", claims.AccountID(), kind)
	}
}

func TestTokenService_UniqueTokens(t *testing.T) {
	t.Parallel()
	svc, _ := newTokens(t)

	a, _, err := svc.IssueRefreshToken("acc-1")
	require.NoError(t, err)
	b, _, err := svc.IssueRefreshToken("acc-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenService_KindsDoNotCross(t *testing.T) {
	t.Parallel()
	svc, _ := newTokens(t)

	access, _, err := svc.IssueAccessToken("acc-1", auth.RoleAdmin)
	require.NoError(t, err)
	reset, err := svc.IssueResetToken("acc-1")
	require.NoError(t, err)

	_, err = svc.Verify(access, auth.KindRefresh)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	_, err = svc.Verify(reset, auth.KindAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	claims, err := svc.VerifyAny(reset, auth.KindAccess, auth.KindReset)
	require.NoError(t, err)
	assert.Equal(t, auth.KindReset, claims.Kind)
}

func TestTokenService_KindClaimEnforcedWithSharedSecret(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	cfg.RefreshSecret = cfg.AccessSecret
	svc, err := auth.NewTokenService(cfg)
	require.NoError(t, err)

	refresh, _, err := svc.IssueRefreshToken("acc-1")
	require.NoError(t, err)
	_, err = svc.Verify(refresh, auth.KindAccess)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_Expiry(t *testing.T) {
	t.Parallel()
	svc, c := newTokens(t)

	reset, err := svc.IssueResetToken("acc-1")
	require.NoError(t, err)

	c.advance(14 * time.Minute)
	_, err = svc.Verify(reset, auth.KindReset)
	require.NoError(t, err)

	c.advance(2 * time.Minute)
	_, err = svc.Verify(reset, auth.KindReset)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_Rejects(t *testing.T) {
	t.Parallel()
	svc, _ := newTokens(t)

	access, _, err := svc.IssueAccessToken("acc-1", auth.RoleStudent)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.token",
		"tampered":  access[:len(access)-2] + "xx",
		"truncated": access[:len(access)/2],
	} {
		_, err := svc.Verify(tok, auth.KindAccess)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, name)
	}

	_, _, err = svc.IssueAccessToken("acc-1", auth.Role(9))
	assert.ErrorIs(t, err, auth.ErrInvalidRole)
	_, _, err = svc.IssueRefreshToken("")
	assert.Error(t, err)
}
