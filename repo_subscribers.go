package subscribers

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Subscribers is the persistence boundary for mailing list records. The
// services only ever see this interface; storage stays substitutable.
type Subscribers interface {
	Create(ctx context.Context, record *Subscriber) (*Subscriber, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Subscriber) (*Subscriber, error)
	GetByID(ctx context.Context, id int64) (*Subscriber, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Subscriber, error)
	List(ctx context.Context) ([]*Subscriber, error)
	ListTx(ctx context.Context, tx bun.IDB) ([]*Subscriber, error)
	Update(ctx context.Context, record *Subscriber) (*Subscriber, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *Subscriber) (*Subscriber, error)
	Delete(ctx context.Context, id int64) (*Subscriber, error)
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*Subscriber, error)
}

type subscriberRepo struct {
	db *bun.DB
}

var _ Subscribers = (*subscriberRepo)(nil)

// NewSubscribersRepository returns a bun backed Subscribers repository.
func NewSubscribersRepository(db *bun.DB) Subscribers {
	return &subscriberRepo{db: db}
}

func (r *subscriberRepo) Create(ctx context.Context, record *Subscriber) (*Subscriber, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *subscriberRepo) CreateTx(ctx context.Context, tx bun.IDB, record *Subscriber) (*Subscriber, error) {
	_, err := tx.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert subscriber")
	}

	return record, nil
}

func (r *subscriberRepo) GetByID(ctx context.Context, id int64) (*Subscriber, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *subscriberRepo) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Subscriber, error) {
	record := &Subscriber{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to select subscriber")
	}

	return record, nil
}

func (r *subscriberRepo) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	return r.GetByEmailTx(ctx, r.db, email)
}

func (r *subscriberRepo) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Subscriber, error) {
	record := &Subscriber{}

	// Exact string match: case handling is left to the storage collation.
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to select subscriber by email")
	}

	return record, nil
}

func (r *subscriberRepo) List(ctx context.Context) ([]*Subscriber, error) {
	return r.ListTx(ctx, r.db)
}

func (r *subscriberRepo) ListTx(ctx context.Context, tx bun.IDB) ([]*Subscriber, error) {
	records := []*Subscriber{}

	if err := tx.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list subscribers")
	}

	return records, nil
}

func (r *subscriberRepo) Update(ctx context.Context, record *Subscriber) (*Subscriber, error) {
	return r.UpdateTx(ctx, r.db, record)
}

func (r *subscriberRepo) UpdateTx(ctx context.Context, tx bun.IDB, record *Subscriber) (*Subscriber, error) {
	now := time.Now()
	record.UpdatedAt = &now

	res, err := tx.NewUpdate().
		Model(record).
		Column("email", "real_name", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update subscriber")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrSubscriberNotFound
	}

	return record, nil
}

func (r *subscriberRepo) Delete(ctx context.Context, id int64) (*Subscriber, error) {
	return r.DeleteTx(ctx, r.db, id)
}

func (r *subscriberRepo) DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*Subscriber, error) {
	record, err := r.GetByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.NewDelete().Model(record).WherePK().Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete subscriber")
	}

	return record, nil
}
