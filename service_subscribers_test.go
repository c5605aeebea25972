package subscribers_test

import (
	"context"
	"testing"

	subscribers "github.com/goliatone/go-subscribers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSubscriberService(subs *MockSubscribers) *subscribers.SubscriberService {
	return subscribers.NewSubscriberService(stubRepoManager{
		subs:  subs,
		users: new(MockUsers),
	})
}

func TestSubscriberCreate(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)

	subs.On("GetByEmail", mock.Anything, "person@example.com").
		Return(nil, subscribers.ErrSubscriberNotFound)
	subs.On("Create", mock.Anything, mock.AnythingOfType("*subscribers.Subscriber")).
		Return(&subscribers.Subscriber{ID: 1, Email: "person@example.com", Name: "Person"}, nil)

	record, err := service.Create(context.Background(), "person@example.com", "Person")

	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "person@example.com", record.Email)
	subs.AssertExpectations(t)
}

func TestSubscriberCreateInvalidEmail(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)

	_, err := service.Create(context.Background(), "not-an-email", "Person")

	require.Error(t, err)
	subs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubscriberCreateDuplicateEmail(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)

	subs.On("GetByEmail", mock.Anything, "person@example.com").
		Return(&subscribers.Subscriber{ID: 1, Email: "person@example.com"}, nil)

	_, err := service.Create(context.Background(), "person@example.com", "Person")

	require.ErrorIs(t, err, subscribers.ErrEmailTaken)
	subs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubscriberListRequiresAuthority(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)

	tests := []struct {
		name      string
		requester *subscribers.User
		wantErr   bool
	}{
		{"anonymous", nil, true},
		{"below the bar", &subscribers.User{Authority: 49}, true},
		{"at the bar", &subscribers.User{Authority: 50}, false},
	}

	subs.On("List", mock.Anything).Return([]*subscribers.Subscriber{}, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.List(context.Background(), tt.requester)
			if tt.wantErr {
				assert.ErrorIs(t, err, subscribers.ErrInsufficientAuthority)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubscriberGet(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)
	reader := &subscribers.User{Authority: 50}

	subs.On("GetByID", mock.Anything, int64(7)).
		Return(&subscribers.Subscriber{ID: 7, Email: "person@example.com"}, nil)

	record, err := service.Get(context.Background(), reader, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)
}

func TestSubscriberGetNotFound(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)
	reader := &subscribers.User{Authority: 50}

	subs.On("GetByID", mock.Anything, int64(404)).
		Return(nil, subscribers.ErrSubscriberNotFound)

	_, err := service.Get(context.Background(), reader, 404)

	require.ErrorIs(t, err, subscribers.ErrSubscriberNotFound)
	assert.True(t, subscribers.IsNotFound(err))
}

func TestSubscriberUpdate(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)
	editor := &subscribers.User{Authority: 51}

	subs.On("GetByID", mock.Anything, int64(7)).
		Return(&subscribers.Subscriber{ID: 7, Email: "old@example.com", Name: "Old"}, nil)
	subs.On("GetByEmail", mock.Anything, "new@example.com").
		Return(nil, subscribers.ErrSubscriberNotFound)
	subs.On("Update", mock.Anything, mock.MatchedBy(func(s *subscribers.Subscriber) bool {
		return s.ID == 7 && s.Email == "new@example.com" && s.Name == "New"
	})).Return(&subscribers.Subscriber{ID: 7, Email: "new@example.com", Name: "New"}, nil)

	record, err := service.Update(context.Background(), editor, 7, "new@example.com", "New")

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", record.Email)
	subs.AssertExpectations(t)
}

func TestSubscriberUpdateRequiresOwnTier(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)

	// Reading subscribers is not enough to update them.
	reader := &subscribers.User{Authority: 50}

	_, err := service.Update(context.Background(), reader, 7, "new@example.com", "New")

	require.ErrorIs(t, err, subscribers.ErrInsufficientAuthority)
}

// The conflict check during update matches any record holding the new
// email, including the record being updated. Re-submitting the current
// email is therefore rejected. The check below pins that behavior.
func TestSubscriberUpdateKeepingOwnEmailConflicts(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)
	editor := &subscribers.User{Authority: 51}

	current := &subscribers.Subscriber{ID: 7, Email: "same@example.com", Name: "Old"}

	subs.On("GetByID", mock.Anything, int64(7)).Return(current, nil)
	subs.On("GetByEmail", mock.Anything, "same@example.com").Return(current, nil)

	_, err := service.Update(context.Background(), editor, 7, "same@example.com", "New")

	require.ErrorIs(t, err, subscribers.ErrEmailTaken)
	subs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubscriberDelete(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)
	remover := &subscribers.User{Authority: 52}

	subs.On("Delete", mock.Anything, int64(7)).
		Return(&subscribers.Subscriber{ID: 7, Email: "person@example.com"}, nil)

	record, err := service.Delete(context.Background(), remover, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)
}

func TestSubscriberDeleteRequiresOwnTier(t *testing.T) {
	subs := new(MockSubscribers)
	service := newSubscriberService(subs)

	editor := &subscribers.User{Authority: 51}

	_, err := service.Delete(context.Background(), editor, 7)

	require.ErrorIs(t, err, subscribers.ErrInsufficientAuthority)
	subs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
