package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chronicle/internal/domain"

	"github.com/google/uuid"
)

// TokenIssuer mints a signed bearer token for a verified identity.
type TokenIssuer interface {
	Issue(subject string, authorities []string) (string, error)
}

// Every new account starts with the user role; further grants are an
// administrative concern outside this service.
var defaultAuthorities = []string{domain.RoleUser}

type AccountService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	tokens TokenIssuer
	mail   domain.EmailSender
	now    func() time.Time
}

func NewAccountService(users domain.UserRepository, hasher domain.PasswordHasher, tokens TokenIssuer, mail domain.EmailSender, now func() time.Time) *AccountService {
	if now == nil {
		now = time.Now
	}
	return &AccountService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mail:   mail,
		now:    now,
	}
}

func (s *AccountService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidArgument)
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:             uuid.NewString(),
		Username:       username,
		PasswordDigest: digest,
		Authorities:    append([]string(nil), defaultAuthorities...),
		CreatedAt:      s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	if s.mail != nil {
		if err := s.mail.Send(username, "Welcome", "Your account has been created."); err != nil {
			log.Printf("welcome mail to %s failed: %v", username, err)
		}
	}
	return nil
}

// Login verifies the credentials and returns a fresh token. Unknown
// usernames and wrong passwords produce the same ErrUnauthorized so the
// response does not reveal which half failed.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}
	if !s.hasher.Verify(password, user.PasswordDigest) {
		return "", domain.ErrUnauthorized
	}
	return s.tokens.Issue(user.Username, user.Authorities)
}
