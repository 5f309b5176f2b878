package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/coursework/internal/common"
	"github.com/dmitrijs2005/coursework/internal/server/auth"
	"github.com/dmitrijs2005/coursework/internal/server/config"
)

type fakeVerifier struct {
	out *auth.Principal
	err error
}

func (f *fakeVerifier) Verify(username, password string) (*auth.Principal, error) {
	return f.out, f.err
}

func newUserService(t *testing.T, v auth.CredentialVerifier) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(v, cfg)
}

func TestLogin_Success(t *testing.T) {
	s := newUserService(t, &fakeVerifier{out: &auth.Principal{Username: "admin", Role: common.RoleAdmin}})

	sess, err := s.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, common.RoleAdmin, sess.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	p, err := s.Authenticate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, &auth.Principal{Username: "admin", Role: common.RoleAdmin}, p)
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newUserService(t, &fakeVerifier{err: common.ErrorUnauthorized})

	_, err := s.Login(context.Background(), "admin", "nope")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_VerifierFailure(t *testing.T) {
	s := newUserService(t, &fakeVerifier{err: errors.New("backend down")})

	_, err := s.Login(context.Background(), "admin", "admin123")
	require.ErrorIs(t, err, common.ErrorInternal)
	assert.Contains(t, err.Error(), "backend down")
}

func TestLogin_WithStaticVerifier(t *testing.T) {
	v, err := auth.NewStaticVerifier([]config.UserCredential{
		{Username: "privuser", Password: "priv123", Role: common.RolePrivilegedUser},
	})
	require.NoError(t, err)
	s := newUserService(t, v)

	sess, err := s.Login(context.Background(), "privuser", "priv123")
	require.NoError(t, err)
	assert.Equal(t, common.RolePrivilegedUser, sess.Role)

	_, err = s.Login(context.Background(), "privuser", "admin123")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthenticate_Rejects(t *testing.T) {
	s := newUserService(t, &fakeVerifier{})

	_, err := s.Authenticate("garbage")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	tok, _, err := auth.GenerateToken("admin", common.RoleAdmin, []byte("k"), -time.Minute)
	require.NoError(t, err)
	_, err = s.Authenticate(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}
