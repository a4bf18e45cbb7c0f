package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-builder/internal/shared/auth"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Sign(claims auth.Claims) (string, error)
}

type Service struct {
	Repo     Repo
	Tokens   TokenIssuer
	HashCost int
	Now      func() time.Time
	NewID    func() string

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo Repo, tokens TokenIssuer) *Service {
	return &Service{
		Repo:     repo,
		Tokens:   tokens,
		HashCost: bcrypt.DefaultCost,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// Register creates a password account and signs it in. The duplicate check
// runs before the password policy, and nothing is stored when either fails.
func (s *Service) Register(ctx context.Context, name, email, password string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" {
		return Session{}, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	switch _, err := s.Repo.GetByEmail(ctx, email); {
	case err == nil:
		return Session{}, ErrEmailExists
	case !errors.Is(err, ErrNotFound):
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Session{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Session{}, fmt.Errorf("%w: password is too long", ErrInvalidInput)
		}
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := s.newUser(name, email, ProviderPassword)
	user.PasswordHash = string(hash)
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return Session{}, ErrEmailExists
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}
	return s.session(user)
}

// Login verifies a password. Unknown emails and wrong passwords both return
// ErrInvalidCredentials after a bcrypt comparison.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	user, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Session{}, fmt.Errorf("lookup user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
		return Session{}, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(user)
}

// GetProfile returns the account for userID.
func (s *Service) GetProfile(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

// SignInExternal signs in a provider-asserted identity, linking by email and
// creating a password-less account on first sight.
func (s *Service) SignInExternal(ctx context.Context, id Identity) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	email := NormalizeEmail(id.Email)
	if email == "" {
		return Session{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return s.session(user)
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = email
	}
	provider := strings.TrimSpace(id.Provider)
	if provider == "" {
		provider = ProviderGoogle
	}
	user = s.newUser(name, email, provider)
	if err := s.Repo.Create(ctx, user); err != nil {
		if !errors.Is(err, ErrEmailExists) {
			return Session{}, fmt.Errorf("create user: %w", err)
		}
		// Lost a race with a concurrent sign-in for the same email.
		if user, err = s.Repo.GetByEmail(ctx, email); err != nil {
			return Session{}, fmt.Errorf("lookup user: %w", err)
		}
	}
	return s.session(user)
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func (s *Service) newUser(name, email, provider string) User {
	now := s.now()
	newID := s.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return User{
		ID:        newID(),
		Name:      name,
		Email:     email,
		Provider:  provider,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) session(user User) (Session, error) {
	token, err := s.Tokens.Sign(auth.Claims{Sub: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{User: user, Token: token}, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *Service) cost() int {
	if s.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}

// placeholderHash keeps the unknown-email path as slow as a real comparison.
func (s *Service) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost())
	})
	return s.dummyHash
}
