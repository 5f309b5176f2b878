package auth

import (
	"slices"

	"github.com/dmitrijs2005/coursework/internal/common"
)

// Principal is an authenticated caller.
type Principal struct {
	Username string
	Role     string
}

func (p *Principal) HasRole(role string) bool {
	return p != nil && p.Role == role
}

func (p *Principal) HasAnyRole(roles ...string) bool {
	return slices.ContainsFunc(roles, p.HasRole)
}

// Require returns common.ErrorForbidden unless p holds one of roles.
func (p *Principal) Require(roles ...string) error {
	if !p.HasAnyRole(roles...) {
		return common.ErrorForbidden
	}
	return nil
}
