package subscribers

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-subscribers/middleware/basicware"
)

// RouteAuthorizer is the HTTP glue: it authenticates Basic credentials
// into a principal and converts service errors into wire responses. Both
// missing credentials and insufficient authority answer 401 with the
// challenge header; the two failure kinds share one status on purpose.
type RouteAuthorizer struct {
	verifier     CredentialVerifier
	cfg          Config
	Logger       Logger
	ErrorHandler router.ErrorHandler
}

func NewRouteAuthorizer(verifier CredentialVerifier, cfg Config) *RouteAuthorizer {
	a := &RouteAuthorizer{
		verifier: verifier,
		cfg:      cfg,
		Logger:   defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a
}

func (a *RouteAuthorizer) WithLogger(l Logger) *RouteAuthorizer {
	a.Logger = l
	return a
}

// Protected returns the Basic auth middleware for this service's realm.
func (a *RouteAuthorizer) Protected() router.MiddlewareFunc {
	return basicware.New(basicware.Config{
		Verifier:     a.verifierAdapter(),
		Realm:        a.cfg.GetRealm(),
		ContextKey:   a.cfg.GetContextKey(),
		ErrorHandler: a.ErrorHandler,
		ContextEnricher: func(c context.Context, principal any) context.Context {
			if user, ok := principal.(*User); ok {
				return WithContext(c, user)
			}
			return c
		},
	})
}

// Principal returns the authenticated user stored by the middleware.
func (a *RouteAuthorizer) Principal(c router.Context) (*User, bool) {
	return FromRouterContext(c, a.cfg.GetContextKey())
}

func (a *RouteAuthorizer) verifierAdapter() basicware.Verifier {
	return basicware.VerifierFunc(func(ctx context.Context, username, password string) (any, error) {
		return a.verifier.VerifyIdentity(ctx, username, password)
	})
}

// defaultErrHandler maps the error taxonomy onto the wire: auth failures
// get 401 plus the challenge header, the rest follow their rich error
// code, and anything unclassified is a 500.
func (a *RouteAuthorizer) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		if err == basicware.ErrMissingOrMalformed {
			richErr = errors.Wrap(err, errors.CategoryAuth, "missing or malformed credentials").
				WithCode(errors.CodeUnauthorized)
		} else {
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}
	}

	a.Logger.Debug(
		"request error",
		"error", richErr.Message,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
	)

	if richErr.Category == errors.CategoryAuth || richErr.Category == errors.CategoryAuthz {
		basicware.SetChallenge(c, a.cfg.GetRealm(), "UTF-8")
		return c.JSON(router.StatusUnauthorized, map[string]string{
			"error": richErr.Message,
		})
	}

	status := richErr.Code
	if status == 0 {
		status = router.StatusInternalServerError
	}

	return c.JSON(status, map[string]string{
		"error": richErr.Message,
	})
}
