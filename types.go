package subscribers

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialVerifier resolves Basic credentials to a live operator account.
type CredentialVerifier interface {
	VerifyIdentity(ctx context.Context, username, password string) (*User, error)
}

// Config holds the knobs the HTTP layer needs. Constructed once at startup
// and injected; the package keeps no ambient state.
type Config interface {
	GetRealm() string
	GetContextKey() string
}

// DefaultRealm is the Basic auth realm announced on 401 responses.
const DefaultRealm = "subscriber"

// DefaultContextKey is where the middleware stores the principal.
const DefaultContextKey = "user"

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SUBS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SUBS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SUBS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
