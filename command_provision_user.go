package subscribers

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ProvisionUserMessage seeds an operator account out-of-band, bypassing the
// request-time authority gate. It exists for first-boot provisioning: the
// account that will create every other account has to come from somewhere.
type ProvisionUserMessage struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Authority int16  `json:"authority"`
}

func (e ProvisionUserMessage) Type() string { return "user.provision" }

type ProvisionUserHandler struct {
	repo RepositoryManager
}

func NewProvisionUserHandler(repo RepositoryManager) *ProvisionUserHandler {
	return &ProvisionUserHandler{repo: repo}
}

func (h *ProvisionUserHandler) Execute(ctx context.Context, event ProvisionUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user provisioning",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ProvisionUserHandler) execute(ctx context.Context, event ProvisionUserMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if event.Username == "" {
		return validationError("username must not be empty", "empty_username")
	}

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Idempotent: an existing account with the username wins.
		if _, err := h.repo.Users().GetByUsernameTx(ctx, tx, event.Username); err == nil {
			return nil
		} else if !IsNotFound(err) {
			return err
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		authority := event.Authority
		if authority == 0 {
			authority = MaxAuthority()
		}

		user := &User{
			Username:     event.Username,
			PasswordHash: hash,
			Authority:    authority,
		}

		if _, err := h.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "user provisioning transaction failed")
	}

	return nil
}
