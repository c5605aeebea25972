package subscribers

import (
	"context"
	"net/mail"

	goerrors "github.com/goliatone/go-errors"
)

// SubscriberService implements subscriber CRUD with the email uniqueness
// invariant. Creation is public; every other operation takes the
// authenticated requester and is gated by the authority table.
type SubscriberService struct {
	repo   RepositoryManager
	logger Logger
}

// NewSubscriberService will create a new SubscriberService
func NewSubscriberService(repo RepositoryManager) *SubscriberService {
	return &SubscriberService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *SubscriberService) WithLogger(l Logger) *SubscriberService {
	s.logger = l
	return s
}

// Create signs up a new subscriber. No authentication required.
//
// The existence check and the insert are not atomic; the unique index in
// the schema is the backstop for concurrent signups racing on one email.
func (s *SubscriberService) Create(ctx context.Context, email, name string) (*Subscriber, error) {
	if !isEmail(email) {
		return nil, validationError("invalid email address", "invalid_email")
	}

	if _, err := s.repo.Subscribers().GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !IsNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check subscriber email")
	}

	record := &Subscriber{
		Email: email,
		Name:  name,
	}

	return s.repo.Subscribers().Create(ctx, record)
}

// List returns every subscriber. Order is implementation defined.
func (s *SubscriberService) List(ctx context.Context, requester *User) ([]*Subscriber, error) {
	if !CanPerform(requester, ActionReadSubscriber) {
		return nil, ErrInsufficientAuthority
	}

	return s.repo.Subscribers().List(ctx)
}

// Get returns a single subscriber by id.
func (s *SubscriberService) Get(ctx context.Context, requester *User, id int64) (*Subscriber, error) {
	if !CanPerform(requester, ActionReadSubscriber) {
		return nil, ErrInsufficientAuthority
	}

	return s.repo.Subscribers().GetByID(ctx, id)
}

// Update replaces a subscriber's email and name.
//
// The conflict check matches ANY existing record with the new email,
// including the target itself: re-submitting a record's current email is
// rejected. Clients are expected to send the changed email only.
func (s *SubscriberService) Update(ctx context.Context, requester *User, id int64, email, name string) (*Subscriber, error) {
	if !CanPerform(requester, ActionUpdateSubscriber) {
		return nil, ErrInsufficientAuthority
	}

	record, err := s.repo.Subscribers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isEmail(email) {
		return nil, validationError("invalid email address", "invalid_email")
	}

	if _, err := s.repo.Subscribers().GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !IsNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check subscriber email")
	}

	record.Email = email
	record.Name = name

	return s.repo.Subscribers().Update(ctx, record)
}

// Delete removes a subscriber permanently and returns the removed record.
func (s *SubscriberService) Delete(ctx context.Context, requester *User, id int64) (*Subscriber, error) {
	if !CanPerform(requester, ActionDeleteSubscriber) {
		return nil, ErrInsufficientAuthority
	}

	return s.repo.Subscribers().Delete(ctx, id)
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
