package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tienda/internal/config"
	"tienda/internal/domain"
)

// Service checks console logins against the configured accounts.
type Service struct {
	accounts map[domain.Role]domain.Account
	cost     int
}

type Option func(*Service)

// WithCost overrides the bcrypt cost, mostly so tests stay fast.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// Credentials is one account before its password is hashed.
type Credentials struct {
	Name     string
	Role     domain.Role
	Password string
}

// New hashes every password once. An empty password means the account never
// gets a password prompt.
func New(creds []Credentials, opts ...Option) (*Service, error) {
	s := &Service{
		accounts: make(map[domain.Role]domain.Account, len(creds)),
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, c := range creds {
		if _, exists := s.accounts[c.Role]; exists {
			return nil, fmt.Errorf("auth: role %q configured twice: %w", c.Role, domain.ErrDuplicateID)
		}
		acc := domain.Account{Name: strings.TrimSpace(c.Name), Role: c.Role}
		if c.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.cost)
			if err != nil {
				return nil, fmt.Errorf("auth: hash password for %s: %w", c.Role, err)
			}
			acc.PasswordHash = string(hash)
		}
		s.accounts[c.Role] = acc
	}
	return s, nil
}

// FromConfig builds the admin and user accounts from the Auth section.
func FromConfig(cfg config.AuthConfig, opts ...Option) (*Service, error) {
	return New([]Credentials{
		{Name: cfg.AdminName, Role: domain.RoleAdmin, Password: cfg.AdminPassword},
		{Name: cfg.UserName, Role: domain.RoleUser, Password: cfg.UserPassword},
	}, opts...)
}

// RequiresPassword reports whether logging in as role needs a password.
func (s *Service) RequiresPassword(role domain.Role) bool {
	acc, ok := s.accounts[role]
	return ok && acc.PasswordHash != ""
}

// Authenticate returns the account for role when password matches.
func (s *Service) Authenticate(role domain.Role, password string) (domain.Account, error) {
	acc, ok := s.accounts[role]
	if !ok {
		return domain.Account{}, fmt.Errorf("account for role %q: %w", role, domain.ErrNotFound)
	}
	if acc.PasswordHash == "" {
		return acc, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.Account{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("auth: compare password: %w", err)
	}
	return acc, nil
}
