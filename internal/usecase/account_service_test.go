package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chronicle/internal/domain"
	"chronicle/internal/infra/mail"
	"chronicle/internal/infra/memstore"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "digest:" + password, nil }

func (fakeHasher) Verify(password, digest string) bool { return "digest:"+password == digest }

type fakeIssuer struct {
	lastSubject     string
	lastAuthorities []string
}

func (f *fakeIssuer) Issue(subject string, authorities []string) (string, error) {
	f.lastSubject = subject
	f.lastAuthorities = authorities
	return "token-for-" + subject, nil
}

func newAccountFixture() (*AccountService, *fakeIssuer, *mail.Recorder) {
	issuer := &fakeIssuer{}
	recorder := &mail.Recorder{}
	svc := NewAccountService(memstore.NewUserRepository(), fakeHasher{}, issuer, recorder, func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return svc, issuer, recorder
}

func TestRegisterAndLogin(t *testing.T) {
	svc, issuer, recorder := newAccountFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "P@ssword1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	sent := recorder.Sent()
	if len(sent) != 1 || sent[0].To != "alice" {
		t.Fatalf("expected one welcome mail to alice, got %+v", sent)
	}

	token, err := svc.Login(ctx, "alice", "P@ssword1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "token-for-alice" {
		t.Fatalf("unexpected token %q", token)
	}
	if issuer.lastSubject != "alice" {
		t.Fatalf("issued for %q, want alice", issuer.lastSubject)
	}
	if len(issuer.lastAuthorities) != 1 || issuer.lastAuthorities[0] != domain.RoleUser {
		t.Fatalf("new accounts should hold only %s, got %v", domain.RoleUser, issuer.lastAuthorities)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAccountFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, "", "secret"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty username: got %v", err)
	}
	if err := svc.Register(ctx, "bob", ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty password: got %v", err)
	}
	if err := svc.Register(ctx, "   ", "secret"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("blank username: got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newAccountFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "first"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Register(ctx, "alice", "second"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate username: got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAccountFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "P@ssword1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown user and wrong password must be indistinguishable.
	if _, err := svc.Login(ctx, "mallory", "whatever"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown user: got %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("wrong password: got %v", err)
	}
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	issuer := &fakeIssuer{}
	svc := NewAccountService(memstore.NewUserRepository(), fakeHasher{}, issuer, failingSender{}, nil)

	if err := svc.Register(context.Background(), "alice", "P@ssword1"); err != nil {
		t.Fatalf("register should not fail when the welcome mail does: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", "P@ssword1"); err != nil {
		t.Fatalf("login after mail failure: %v", err)
	}
}

type failingSender struct{}

func (failingSender) Send(to, subject, body string) error {
	if strings.Contains(subject, "Welcome") {
		return errors.New("smtp unavailable")
	}
	return nil
}
