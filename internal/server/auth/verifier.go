package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/coursework/internal/common"
	"github.com/dmitrijs2005/coursework/internal/server/config"
)

// CredentialVerifier checks a username and password pair.
type CredentialVerifier interface {
	Verify(username, password string) (*Principal, error)
}

type account struct {
	hash []byte
	role string
}

// StaticVerifier accepts a fixed set of accounts. Passwords are kept only as
// bcrypt hashes.
type StaticVerifier struct {
	accounts map[string]account
}

// NewStaticVerifier hashes every configured password once.
func NewStaticVerifier(users []config.UserCredential) (*StaticVerifier, error) {
	v := &StaticVerifier{accounts: make(map[string]account, len(users))}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", u.Username, err)
		}
		v.accounts[u.Username] = account{hash: hash, role: u.Role}
	}

	return v, nil
}

// Verify returns the principal for a matching pair and
// common.ErrorUnauthorized otherwise.
func (v *StaticVerifier) Verify(username, password string) (*Principal, error) {
	a, ok := v.accounts[username]
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return &Principal{Username: username, Role: a.role}, nil
}
