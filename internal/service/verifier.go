package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/internhub/internal/model"
)

// DemoVerifier accepts any complete credentials and returns the canned
// profile for the requested role with the supplied email.
type DemoVerifier struct {
	templates map[model.Role]model.User
}

var _ model.CredentialVerifier = (*DemoVerifier)(nil)

// NewDemoVerifier creates a DemoVerifier over per-role user templates.
func NewDemoVerifier(templates map[model.Role]model.User) *DemoVerifier {
	t := make(map[model.Role]model.User, len(templates))
	for role, user := range templates {
		user.Role = role
		t[role] = user
	}
	return &DemoVerifier{templates: t}
}

func (v *DemoVerifier) Verify(ctx context.Context, creds model.Credentials) (model.User, error) {
	if err := creds.Validate(); err != nil {
		return model.User{}, err
	}

	user, ok := v.templates[creds.Role]
	if !ok {
		return model.User{}, &model.AuthError{Email: creds.Email, Err: fmt.Errorf("no profile for role %s: %w", creds.Role, model.ErrInvalidCredentials)}
	}
	user.Email = creds.Email

	return user, nil
}

// argon2id parameters for stored account passwords.
const (
	argonTime    = 1
	argonMemKiB  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

type account struct {
	user model.User
	salt []byte
	hash []byte
}

// PasswordVerifier checks credentials against an account directory with
// argon2id password hashes.
type PasswordVerifier struct {
	accounts map[string]account
}

var _ model.CredentialVerifier = (*PasswordVerifier)(nil)

// NewPasswordVerifier creates an empty PasswordVerifier.
func NewPasswordVerifier() *PasswordVerifier {
	return &PasswordVerifier{accounts: make(map[string]account)}
}

// Register stores an account for user. The user's email is the login.
func (v *PasswordVerifier) Register(user model.User, password string) error {
	if user.Email == "" || password == "" {
		return model.NewValidationError("account", "email and password are required")
	}
	if !user.Role.Valid() {
		return model.NewValidationError("role", "unknown role "+string(user.Role))
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	v.accounts[normalizeEmail(user.Email)] = account{
		user: user,
		salt: salt,
		hash: hashPassword([]byte(password), salt),
	}

	return nil
}

func (v *PasswordVerifier) Verify(ctx context.Context, creds model.Credentials) (model.User, error) {
	if err := creds.Validate(); err != nil {
		return model.User{}, err
	}

	acc, ok := v.accounts[normalizeEmail(creds.Email)]
	if !ok {
		// Hash anyway so unknown emails cost the same as wrong passwords.
		hashPassword([]byte(creds.Password), make([]byte, saltLen))
		return model.User{}, &model.AuthError{Email: creds.Email, Err: model.ErrInvalidCredentials}
	}

	candidate := hashPassword([]byte(creds.Password), acc.salt)
	if subtle.ConstantTimeCompare(candidate, acc.hash) != 1 || acc.user.Role != creds.Role {
		return model.User{}, &model.AuthError{Email: creds.Email, Err: model.ErrInvalidCredentials}
	}

	return acc.user, nil
}

func hashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemKiB, argonThreads, argonKeyLen)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
