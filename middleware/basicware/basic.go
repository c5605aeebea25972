package basicware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-router"
)

var (
	defaultLookupHeader = router.HeaderAuthorization

	// ErrMissingOrMalformed is returned when the Authorization header is
	// absent, carries a different scheme, or fails to decode.
	ErrMissingOrMalformed = errors.New("missing or malformed basic credentials")
)

// Verifier resolves a username/password pair to a principal without
// creating an import cycle with the root package. It mirrors
// subscribers.CredentialVerifier.
type Verifier interface {
	VerifyIdentity(ctx context.Context, username, password string) (any, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, username, password string) (any, error)

func (f VerifierFunc) VerifyIdentity(ctx context.Context, username, password string) (any, error) {
	return f(ctx, username, password)
}

type Config struct {
	// Filter skips the middleware when it returns true.
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	// Verifier is required.
	Verifier Verifier
	// Realm is announced in the WWW-Authenticate challenge.
	Realm string
	// Charset is announced in the WWW-Authenticate challenge.
	Charset string
	// ContextKey is where the principal is stored in router locals.
	ContextKey string
	// ContextEnricher propagates the principal to the standard Go context.
	ContextEnricher func(c context.Context, principal any) context.Context
}

// New returns a middleware that authenticates requests via HTTP Basic and
// stores the resolved principal under ContextKey. Every failure path
// carries the challenge header so standards compliant clients re-prompt.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			username, password, err := ExtractBasicCredentials(ctx)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			principal, err := cfg.Verifier.VerifyIdentity(ctx.Context(), username, password)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, principal)

			if cfg.ContextEnricher != nil {
				ctx.SetContext(cfg.ContextEnricher(ctx.Context(), principal))
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// Challenge formats the WWW-Authenticate header value for the realm.
func Challenge(realm, charset string) string {
	return fmt.Sprintf("Basic realm=%q, charset=%q", realm, charset)
}

// SetChallenge attaches the WWW-Authenticate header to the response.
func SetChallenge(ctx router.Context, realm, charset string) {
	ctx.SetHeader("WWW-Authenticate", Challenge(realm, charset))
}

// ExtractBasicCredentials pulls the username/password pair out of the
// Authorization header.
func ExtractBasicCredentials(ctx router.Context) (string, string, error) {
	raw := ctx.GetString(defaultLookupHeader, "")

	const scheme = "Basic "
	if len(raw) <= len(scheme) || !strings.EqualFold(raw[:len(scheme)], scheme) {
		return "", "", ErrMissingOrMalformed
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw[len(scheme):]))
	if err != nil {
		return "", "", ErrMissingOrMalformed
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", ErrMissingOrMalformed
	}

	return username, password, nil
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Verifier == nil {
		panic("AUTH: Basic middleware configuration: Verifier is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.Realm == "" {
		cfg.Realm = "subscriber"
	}

	if cfg.Charset == "" {
		cfg.Charset = "UTF-8"
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.ErrorHandler == nil {
		realm, charset := cfg.Realm, cfg.Charset
		cfg.ErrorHandler = func(c router.Context, err error) error {
			SetChallenge(c, realm, charset)
			return c.Status(router.StatusUnauthorized).SendString(err.Error())
		}
	}

	return cfg
}
