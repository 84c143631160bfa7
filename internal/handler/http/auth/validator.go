package auth

import (
	"fmt"
	"os"
	"strings"
)

// weakPasswordList contains common weak passwords that must be rejected.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"1234567890",
	"password1",
	"test",
	"test123",
	"default",
	"root",
	"editor",
	"announce",
}

// minPasswordLength is the minimum required password length for accounts.
const minPasswordLength = 12

// ValidateAdminCredentials validates admin credentials from environment
// variables at application startup. It must be called before the server
// starts so a misconfigured deployment fails fast instead of running with
// empty or weak credentials.
//
// Requirements:
//   - ADMIN_USER must not be empty
//   - ADMIN_USER_PASSWORD must not be empty
//   - Password must be at least 12 characters
//   - Password must not match any weak password patterns
//
// Error messages are safe to log and do not leak the password itself.
func ValidateAdminCredentials() error {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")

	if user == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER must not be empty")
	}
	if pass == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be empty")
	}
	if len(pass) < minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}
	if isRepeatedChar(pass) {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a repeated character")
	}

	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak {
			return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a weak password")
		}
		// Catches variations like "admin1234567890".
		if strings.HasPrefix(lowerPass, weak) && len(pass) < minPasswordLength+5 {
			return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be based on common weak passwords")
		}
	}

	return nil
}

// ValidateEditorCredentials validates editor credentials at startup.
// It implements graceful degradation: if editor credentials are
// misconfigured, the editor role is disabled by unsetting the variables
// and the application continues in admin-only mode. It never fails startup.
func ValidateEditorCredentials(logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}) {
	editorUser := os.Getenv("EDITOR_USER")
	editorPass := os.Getenv("EDITOR_USER_PASSWORD")
	adminUser := os.Getenv("ADMIN_USER")

	if editorUser == "" {
		logger.Info("editor role not configured - running in admin-only mode")
		return
	}

	disable := func(reason string) {
		logger.Warn(reason + " - disabling editor role")
		_ = os.Unsetenv("EDITOR_USER")
		_ = os.Unsetenv("EDITOR_USER_PASSWORD")
	}

	if editorPass == "" {
		disable("EDITOR_USER_PASSWORD is empty")
		return
	}
	if editorUser == adminUser {
		disable("EDITOR_USER cannot be the same as ADMIN_USER")
		return
	}
	if len(editorPass) < minPasswordLength {
		disable(fmt.Sprintf("EDITOR_USER_PASSWORD must be at least %d characters", minPasswordLength))
		return
	}

	lowerPass := strings.ToLower(editorPass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak || strings.HasPrefix(lowerPass, weak) {
			disable("EDITOR_USER_PASSWORD is a weak password")
			return
		}
	}

	logger.Info("editor role configured successfully", "user", editorUser)
}

// isRepeatedChar checks if the password consists of a single repeated
// character, e.g. "aaaaaaaaaaaa".
func isRepeatedChar(pass string) bool {
	if pass == "" {
		return false
	}
	first := pass[0]
	for i := 1; i < len(pass); i++ {
		if pass[i] != first {
			return false
		}
	}
	return true
}
