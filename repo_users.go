package subscribers

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the persistence boundary for operator accounts.
type Users interface {
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListTx(ctx context.Context, tx bun.IDB) ([]*User, error)
	Update(ctx context.Context, record *User) (*User, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
}

type userRepo struct {
	db *bun.DB
}

var _ Users = (*userRepo)(nil)

// NewUsersRepository returns a bun backed Users repository.
func NewUsersRepository(db *bun.DB) Users {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *userRepo) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	_, err := tx.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}

	return record, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *userRepo) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to select user")
	}

	return record, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.GetByUsernameTx(ctx, r.db, username)
}

func (r *userRepo) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to select user by username")
	}

	return record, nil
}

func (r *userRepo) List(ctx context.Context) ([]*User, error) {
	return r.ListTx(ctx, r.db)
}

func (r *userRepo) ListTx(ctx context.Context, tx bun.IDB) ([]*User, error) {
	records := []*User{}

	if err := tx.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}

	return records, nil
}

func (r *userRepo) Update(ctx context.Context, record *User) (*User, error) {
	return r.UpdateTx(ctx, r.db, record)
}

func (r *userRepo) UpdateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := tx.NewUpdate().
		Model(record).
		Column("username", "password_hash", "authority", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrUserNotFound
	}

	return record, nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) (*User, error) {
	return r.DeleteTx(ctx, r.db, id)
}

func (r *userRepo) DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	record, err := r.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.NewDelete().Model(record).WherePK().Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	return record, nil
}
