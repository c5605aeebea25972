package subscribers

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

const (
	// PasswordMinLength and PasswordMaxLength bound cleartext passwords
	// on account creation.
	PasswordMinLength = 8
	PasswordMaxLength = 30
)

// CreateUserMessage carries the inputs for a new operator account.
type CreateUserMessage struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	// Authority is optional; nil means DefaultAuthority.
	Authority *int16 `json:"authority,omitempty"`
}

// UserPatch carries the partial update for an operator account. Nil fields
// are left untouched.
type UserPatch struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	Authority *int16  `json:"authority,omitempty"`
}

// UserService implements operator account CRUD plus the privilege rules:
// nobody can mint, raise, touch, or remove an account above their own
// authority. Comparisons always run against the live records at call time;
// a concurrent downgrade of the requester between authentication and the
// action is an accepted staleness window.
type UserService struct {
	repo   RepositoryManager
	logger Logger
}

// NewUserService will create a new UserService
func NewUserService(repo RepositoryManager) *UserService {
	return &UserService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *UserService) WithLogger(l Logger) *UserService {
	s.logger = l
	return s
}

// Create provisions a new account and returns its safe projection.
func (s *UserService) Create(ctx context.Context, requester *User, msg CreateUserMessage) (*UserResponse, error) {
	if !CanPerform(requester, ActionCreateUser) {
		return nil, ErrInsufficientAuthority
	}

	if msg.Username == "" {
		return nil, validationError("username must not be empty", "empty_username")
	}

	if msg.Password != msg.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if len(msg.Password) < PasswordMinLength || len(msg.Password) > PasswordMaxLength {
		return nil, validationError("password length must be between 8 and 30 characters", "invalid_password_length")
	}

	authority := DefaultAuthority
	if msg.Authority != nil {
		if *msg.Authority > requester.Authority {
			return nil, ErrAuthorityExceeded
		}
		authority = *msg.Authority
	}

	if _, err := s.repo.Users().GetByUsername(ctx, msg.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !IsNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username")
	}

	user := &User{}

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(msg.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.Username = msg.Username
		user.PasswordHash = hash
		user.Authority = authority

		if user, err = s.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user creation transaction failed")
	}

	return user.Sanitize(), nil
}

// List returns every account as safe projections. Order is implementation
// defined.
func (s *UserService) List(ctx context.Context, requester *User) ([]*UserResponse, error) {
	if !CanPerform(requester, ActionReadUser) {
		return nil, ErrInsufficientAuthority
	}

	users, err := s.repo.Users().List(ctx)
	if err != nil {
		return nil, err
	}

	return SanitizeUsers(users), nil
}

// Get returns a single account by id.
func (s *UserService) Get(ctx context.Context, requester *User, id int64) (*UserResponse, error) {
	if !CanPerform(requester, ActionReadUser) {
		return nil, ErrInsufficientAuthority
	}

	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// Update applies a partial patch to an account. An empty or no-op patch is
// a validation failure, never a silent success.
func (s *UserService) Update(ctx context.Context, requester *User, id int64, patch UserPatch) (*UserResponse, error) {
	if !CanPerform(requester, ActionUpdateUser) {
		return nil, ErrInsufficientAuthority
	}

	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The target's CURRENT authority protects it, including the
	// self-targeting edge where a requester patches their own record.
	if user.Authority > requester.Authority {
		return nil, ErrProtectedUser
	}

	changed := false

	if patch.Username != nil && *patch.Username != user.Username {
		other, err := s.repo.Users().GetByUsername(ctx, *patch.Username)
		if err == nil && other.ID != user.ID {
			return nil, ErrUsernameTaken
		}
		if err != nil && !IsNotFound(err) {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username")
		}

		user.Username = *patch.Username
		changed = true
	}

	if patch.Authority != nil && *patch.Authority != user.Authority {
		if *patch.Authority > requester.Authority {
			return nil, ErrAuthorityExceeded
		}

		user.Authority = *patch.Authority
		changed = true
	}

	if patch.Password != nil {
		// Re-submitting the current password is not a change.
		if err := ComparePasswordAndHash(*patch.Password, user.PasswordHash); err != nil {
			hash, err := HashPassword(*patch.Password)
			if err != nil {
				return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
			}

			user.PasswordHash = hash
			changed = true
		}
	}

	if !changed {
		return nil, ErrNothingToUpdate
	}

	if user, err = s.repo.Users().Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// Delete removes an account permanently and returns its safe projection.
func (s *UserService) Delete(ctx context.Context, requester *User, id int64) (*UserResponse, error) {
	if !CanPerform(requester, ActionDeleteUser) {
		return nil, ErrInsufficientAuthority
	}

	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Authority > requester.Authority {
		return nil, ErrProtectedUser
	}

	if _, err := s.repo.Users().Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}
