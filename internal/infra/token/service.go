// Package token issues and verifies the signed bearer credentials used for
// stateless authentication. Tokens are self-contained: subject, authority
// claims and validity window all travel inside the token, and nothing is
// kept server-side after issuance.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chronicle/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is deliberately short: there is no revocation list, so expiry
// is the only way an issued token ever stops working.
const DefaultTTL = 10 * time.Minute

const minSecretLen = 32

// Service signs tokens with a single process-wide HMAC-SHA-512 key. The key
// is read-only after construction, so concurrent use needs no locking.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration, now func() time.Time) (*Service, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLen)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    now,
	}, nil
}

// tokenClaims is the wire shape of the claims segment. Role and scope
// authorities are comma-joined strings, full prefix included.
type tokenClaims struct {
	Role  string `json:"role,omitempty"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Issue converts a verified identity into a signed bearer token. The
// authority set is partitioned by prefix into the role and scope claims;
// authorities with neither prefix are not encoded.
func (s *Service) Issue(subject string, authorities []string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: subject is required", domain.ErrInvalidArgument)
	}
	var roles, scopes []string
	for _, a := range authorities {
		switch {
		case strings.HasPrefix(a, domain.RolePrefix):
			roles = append(roles, a)
		case strings.HasPrefix(a, domain.ScopePrefix):
			scopes = append(scopes, a)
		}
	}
	now := s.now()
	claims := tokenClaims{
		Role:  strings.Join(roles, ","),
		Scope: strings.Join(scopes, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
}

// ParseClaims verifies the signature and decodes the claims. It does not
// check expiry; that is IsExpired's job. Failures map to
// domain.ErrInvalidSignature when the signature does not verify and
// domain.ErrTokenMalformed when the token cannot be decoded at all.
func (s *Service) ParseClaims(tokenString string) (domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return domain.Claims{}, domain.ErrInvalidSignature
		}
		return domain.Claims{}, domain.ErrTokenMalformed
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return domain.Claims{}, domain.ErrTokenMalformed
	}
	out := domain.Claims{
		Subject: claims.Subject,
		Roles:   splitAuthorities(claims.Role),
		Scopes:  splitAuthorities(claims.Scope),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// IsExpired reports whether the token is past its expiry. A token that
// cannot be parsed or whose signature does not verify counts as expired: an
// untrusted token must never read as still valid.
func (s *Service) IsExpired(tokenString string) bool {
	claims, err := s.ParseClaims(tokenString)
	if err != nil {
		return true
	}
	return !claims.ExpiresAt.After(s.now())
}

// Subject extracts the subject claim after full signature verification.
func (s *Service) Subject(tokenString string) (string, error) {
	claims, err := s.ParseClaims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Service) keyFunc(*jwt.Token) (any, error) {
	return s.secret, nil
}

func splitAuthorities(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
