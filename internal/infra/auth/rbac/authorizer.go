// Package rbac holds the default authorization decision: an exact,
// case-sensitive match of the route's required authority against the
// principal's authority set.
package rbac

import (
	"errors"
	"strings"

	"chronicle/internal/domain"
)

type AuthzError struct {
	Code string
	Err  error
}

func (e *AuthzError) Error() string {
	if e == nil {
		return ""
	}
	return e.Code
}

func (e *AuthzError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// Require allows the request iff a principal is present and, when the route
// declared an authority, the principal holds exactly that authority string.
// An empty authority only demands an authenticated principal.
func (a *Authorizer) Require(principal domain.Principal, authority string) error {
	if principal.Subject == "" {
		return domain.ErrUnauthorized
	}
	if authority == "" {
		return nil
	}
	if !principal.HasAuthority(authority) {
		return &AuthzError{Code: MissingCode(authority), Err: domain.ErrForbidden}
	}
	return nil
}

// MissingCode names the denial after the kind of the required authority.
func MissingCode(authority string) string {
	if strings.HasPrefix(authority, domain.ScopePrefix) {
		return "MISSING_SCOPE"
	}
	return "MISSING_ROLE"
}

func IsAuthzError(err error) (*AuthzError, bool) {
	var authz *AuthzError
	if errors.As(err, &authz) {
		return authz, true
	}
	return nil, false
}
