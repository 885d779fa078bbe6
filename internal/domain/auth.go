package domain

import "time"

// Authority names carry their grant kind as a prefix. The prefix is part of
// the authority string and survives token encoding and decoding unchanged.
const (
	RolePrefix  = "ROLE_"
	ScopePrefix = "SCOPE_"

	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal is the identity reconstructed from a verified token for a single
// request. It is created by the authentication stage, read by route guards
// and handlers, and discarded when the request completes.
type Principal struct {
	Subject     string
	Authorities []string
}

// HasAuthority reports whether the principal holds the exact authority
// string. Matching is case-sensitive and includes the ROLE_/SCOPE_ prefix.
func (p Principal) HasAuthority(name string) bool {
	if name == "" {
		return false
	}
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}
	return false
}

// Claims are the verified facts decoded from a token. They are only ever
// produced after the signature has been checked.
type Claims struct {
	Subject   string
	Roles     []string
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authorizer decides whether a principal may proceed on a route that
// declared the given required authority. An empty authority means the route
// only needs an authenticated principal. The decision is a pure function of
// its arguments.
type Authorizer interface {
	Require(principal Principal, authority string) error
}
