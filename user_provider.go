package subscribers

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserProvider verifies Basic credentials against stored operator accounts.
type UserProvider struct {
	store  Users
	logger Logger
}

// decoyHash keeps the unknown username path as expensive as a real
// password comparison.
var decoyHash = RandomPasswordHash()

// NewUserProvider will create a new UserProvider
func NewUserProvider(store Users) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the account, compare the password against the
// stored hash, and return the live record as the request principal. Unknown
// usernames and wrong passwords produce the same error.
func (u *UserProvider) VerifyIdentity(ctx context.Context, username, password string) (*User, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) || IsNotFound(err) {
			_ = ComparePasswordAndHash(password, decoyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		u.logger.Debug("password comparison failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

var _ CredentialVerifier = (*UserProvider)(nil)
