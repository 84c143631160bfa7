package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"
)

// Credentials carries a username/password pair submitted to the token
// endpoint.
type Credentials struct {
	Username string
	Password string
}

// CredentialProvider validates credentials and maps users to roles.
type CredentialProvider interface {
	// ValidateCredentials returns nil when the credentials are valid.
	ValidateCredentials(ctx context.Context, creds Credentials) error
	// IdentifyUser returns the role for a known username.
	IdentifyUser(ctx context.Context, username string) (string, error)
	// Name returns the provider name for logging.
	Name() string
}

// EnvProvider implements environment-based authentication for the admin
// account and an optional editor account.
//
// ADMIN_USER / ADMIN_USER_PASSWORD are required; EDITOR_USER /
// EDITOR_USER_PASSWORD enable the editor role when set.
type EnvProvider struct {
	minPasswordLength int
	weakPasswords     []string
}

// DefaultEnvProvider creates an EnvProvider enforcing the same password
// policy the startup validators check.
func DefaultEnvProvider() *EnvProvider {
	return NewEnvProvider(minPasswordLength, weakPasswordList)
}

// NewEnvProvider creates an environment-backed credential provider.
func NewEnvProvider(minPasswordLength int, weakPasswords []string) *EnvProvider {
	return &EnvProvider{
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// ValidateCredentials validates credentials against environment variables.
// Both accounts are checked with constant-time comparison to prevent
// timing attacks.
func (p *EnvProvider) ValidateCredentials(ctx context.Context, creds Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}

	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}

	for _, weak := range p.weakPasswords {
		if creds.Password == weak || strings.HasPrefix(creds.Password, weak) {
			return fmt.Errorf("weak password detected")
		}
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")

	adminUserMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	adminPassMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1
	if adminUserMatch && adminPassMatch {
		return nil
	}

	editorUser := os.Getenv("EDITOR_USER")
	editorPass := os.Getenv("EDITOR_USER_PASSWORD")

	if editorUser != "" {
		editorUserMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(editorUser)) == 1
		editorPassMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(editorPass)) == 1
		if editorUserMatch && editorPassMatch {
			return nil
		}
	}

	return fmt.Errorf("invalid credentials")
}

// IdentifyUser returns the role for a given username.
// Returns RoleAdmin, RoleEditor, or an error if the username is unknown.
func (p *EnvProvider) IdentifyUser(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username must not be empty")
	}

	adminUser := os.Getenv("ADMIN_USER")
	editorUser := os.Getenv("EDITOR_USER")

	if subtle.ConstantTimeCompare([]byte(username), []byte(adminUser)) == 1 {
		return RoleAdmin, nil
	}

	if editorUser != "" && subtle.ConstantTimeCompare([]byte(username), []byte(editorUser)) == 1 {
		return RoleEditor, nil
	}

	return "", fmt.Errorf("user not found")
}

// Name returns the provider name.
func (p *EnvProvider) Name() string {
	return "env"
}
