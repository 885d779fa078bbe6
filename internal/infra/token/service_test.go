package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"chronicle/internal/domain"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef0123456789abcdef")

func newTestService(t *testing.T, now func() time.Time) *Service {
	t.Helper()
	svc, err := NewService(testSecret, DefaultTTL, now)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestIssueParseRoundTrip(t *testing.T) {
	svc := newTestService(t, nil)

	authorities := []string{"ROLE_USER", "ROLE_ADMIN", "SCOPE_READ_POSTS", "UNPREFIXED"}
	tok, err := svc.Issue("alice", authorities)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(strings.Split(tok, ".")) != 3 {
		t.Fatalf("expected three token segments, got %q", tok)
	}

	claims, err := svc.ParseClaims(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	wantRoles := []string{"ROLE_USER", "ROLE_ADMIN"}
	if len(claims.Roles) != len(wantRoles) {
		t.Fatalf("roles = %v, want %v", claims.Roles, wantRoles)
	}
	for i, r := range wantRoles {
		if claims.Roles[i] != r {
			t.Fatalf("roles = %v, want %v", claims.Roles, wantRoles)
		}
	}
	if len(claims.Scopes) != 1 || claims.Scopes[0] != "SCOPE_READ_POSTS" {
		t.Fatalf("scopes = %v, want [SCOPE_READ_POSTS]", claims.Scopes)
	}
	if !claims.ExpiresAt.Equal(claims.IssuedAt.Add(DefaultTTL)) {
		t.Fatalf("expiry %v not issuedAt+TTL (%v)", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestSubject(t *testing.T) {
	svc := newTestService(t, nil)
	tok, err := svc.Issue("bob", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	subject, err := svc.Subject(tok)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if subject != "bob" {
		t.Fatalf("subject = %q, want bob", subject)
	}
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	svc := newTestService(t, nil)
	tok, err := svc.Issue("alice", []string{"ROLE_USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Mutate one character of the signature segment.
	idx := strings.LastIndex(tok, ".") + 1
	mutated := []byte(tok)
	if mutated[idx] == 'A' {
		mutated[idx] = 'B'
	} else {
		mutated[idx] = 'A'
	}

	if _, err := svc.ParseClaims(string(mutated)); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	svc := newTestService(t, nil)
	other, err := NewService([]byte("another-secret-key-of-sufficient-length!!"), DefaultTTL, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tok, err := other.Issue("alice", []string{"ROLE_USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.ParseClaims(tok); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if !svc.IsExpired(tok) {
		t.Fatalf("unverifiable token must report expired")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	svc := newTestService(t, nil)
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d", "not base64.at all.really"} {
		if _, err := svc.ParseClaims(tok); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
		if !svc.IsExpired(tok) {
			t.Fatalf("token %q: unparsable token must report expired", tok)
		}
	}
}

func TestExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := issuedAt
	svc := newTestService(t, func() time.Time { return current })

	tok, err := svc.Issue("alice", []string{"ROLE_USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	current = issuedAt.Add(9*time.Minute + 59*time.Second)
	if svc.IsExpired(tok) {
		t.Fatalf("token must still be valid one second before expiry")
	}

	current = issuedAt.Add(10*time.Minute + 1*time.Second)
	if !svc.IsExpired(tok) {
		t.Fatalf("token must be expired one second after expiry")
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.Issue("", nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNewServiceRejectsShortSecret(t *testing.T) {
	if _, err := NewService([]byte("short"), DefaultTTL, nil); err == nil {
		t.Fatalf("expected error for short secret")
	}
}
