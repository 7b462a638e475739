package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"secret-pages-service/internal/mocks"
	"secret-pages-service/internal/models"
	"secret-pages-service/internal/repositories"
)

func newServiceWithMocks() (*Service, *mocks.ProfileRepositoryMock, *mocks.SecretMessageRepositoryMock, *mocks.FriendshipRepositoryMock) {
	profiles := new(mocks.ProfileRepositoryMock)
	messages := new(mocks.SecretMessageRepositoryMock)
	friendships := new(mocks.FriendshipRepositoryMock)
	return NewService(profiles, messages, friendships), profiles, messages, friendships
}

func strPtr(s string) *string { return &s }

func TestListFriendsSymmetry(t *testing.T) {
	edge := models.Friendship{ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipAccepted}

	for user, friend := range map[string]string{"alice": "bob", "bob": "alice"} {
		svc, profiles, messages, friendships := newServiceWithMocks()

		friendships.On("ListAcceptedFor", mock.Anything, user).Return([]models.Friendship{edge}, nil).Once()
		profiles.On("ListByIDs", mock.Anything, []string{friend}).Return([]models.Profile{{ID: friend, Email: friend + "@x.com"}}, nil).Once()
		messages.On("ListByUserIDs", mock.Anything, []string{friend}).Return([]models.SecretMessage{}, nil).Once()

		friends, err := svc.ListFriendsAndMessages(context.Background(), user)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, friend, friends[0].ID)

		friendships.AssertExpectations(t)
		profiles.AssertExpectations(t)
		messages.AssertExpectations(t)
	}
}

func TestListFriendsEmptyShortCircuit(t *testing.T) {
	svc, profiles, messages, friendships := newServiceWithMocks()

	friendships.On("ListAcceptedFor", mock.Anything, "alice").Return([]models.Friendship{}, nil).Once()

	friends, err := svc.ListFriendsAndMessages(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, friends)

	// No accepted edges means no follow-up queries at all.
	profiles.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
	messages.AssertNotCalled(t, "ListByUserIDs", mock.Anything, mock.Anything)
}

func TestListFriendsMessageNullability(t *testing.T) {
	svc, profiles, messages, friendships := newServiceWithMocks()

	friendships.On("ListAcceptedFor", mock.Anything, "alice").Return([]models.Friendship{
		{ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipAccepted},
	}, nil).Once()
	profiles.On("ListByIDs", mock.Anything, []string{"bob"}).Return([]models.Profile{{ID: "bob", Email: "bob@x.com"}}, nil).Once()
	messages.On("ListByUserIDs", mock.Anything, []string{"bob"}).Return([]models.SecretMessage{}, nil).Once()

	friends, err := svc.ListFriendsAndMessages(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].ID)
	assert.Equal(t, "bob@x.com", friends[0].Email)
	assert.Nil(t, friends[0].Message)
}

func TestListFriendsWithMessage(t *testing.T) {
	svc, profiles, messages, friendships := newServiceWithMocks()

	friendships.On("ListAcceptedFor", mock.Anything, "alice").Return([]models.Friendship{
		{ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipAccepted},
	}, nil).Once()
	profiles.On("ListByIDs", mock.Anything, []string{"bob"}).Return([]models.Profile{{ID: "bob", Email: "bob@x.com"}}, nil).Once()
	messages.On("ListByUserIDs", mock.Anything, []string{"bob"}).Return([]models.SecretMessage{{UserID: "bob", Message: "hi"}}, nil).Once()

	friends, err := svc.ListFriendsAndMessages(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.NotNil(t, friends[0].Message)
	assert.Equal(t, "hi", *friends[0].Message)
}

func TestListFriendsStoreError(t *testing.T) {
	svc, _, _, friendships := newServiceWithMocks()

	friendships.On("ListAcceptedFor", mock.Anything, "alice").Return(([]models.Friendship)(nil), assert.AnError).Once()

	_, err := svc.ListFriendsAndMessages(context.Background(), "alice")
	require.Error(t, err)
}

func TestListIncomingRequests(t *testing.T) {
	svc, profiles, _, friendships := newServiceWithMocks()

	friendships.On("ListPendingFor", mock.Anything, "bob").Return([]models.Friendship{
		{ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipPending},
	}, nil).Once()
	profiles.On("ListByIDs", mock.Anything, []string{"alice"}).Return([]models.Profile{{ID: "alice", Email: "alice@x.com"}}, nil).Once()

	requests, err := svc.ListIncomingRequests(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "alice", requests[0].ID)
	assert.Equal(t, "alice@x.com", requests[0].Email)
}

func TestListIncomingRequestsEmptyShortCircuit(t *testing.T) {
	svc, profiles, _, friendships := newServiceWithMocks()

	friendships.On("ListPendingFor", mock.Anything, "bob").Return([]models.Friendship{}, nil).Once()

	requests, err := svc.ListIncomingRequests(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, requests)
	profiles.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
}

func TestSendFriendRequestSuccess(t *testing.T) {
	svc, profiles, _, friendships := newServiceWithMocks()

	profiles.On("GetByEmail", mock.Anything, "bob@x.com").Return(models.Profile{ID: "bob", Email: "bob@x.com"}, nil).Once()
	friendships.On("ExistsBetween", mock.Anything, "alice", "bob").Return(false, nil).Once()
	friendships.On("Create", mock.Anything, "alice", "bob").Return(models.Friendship{
		ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipPending,
	}, nil).Once()

	edge, err := svc.SendFriendRequest(context.Background(), "alice", "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, edge.Status)
	assert.Equal(t, "alice", edge.RequesterID)
	assert.Equal(t, "bob", edge.ReceiverID)

	friendships.AssertExpectations(t)
}

func TestSendFriendRequestTrimsEmail(t *testing.T) {
	svc, profiles, _, friendships := newServiceWithMocks()

	profiles.On("GetByEmail", mock.Anything, "bob@x.com").Return(models.Profile{ID: "bob"}, nil).Once()
	friendships.On("ExistsBetween", mock.Anything, "alice", "bob").Return(false, nil).Once()
	friendships.On("Create", mock.Anything, "alice", "bob").Return(models.Friendship{ID: 1}, nil).Once()

	_, err := svc.SendFriendRequest(context.Background(), "alice", "  bob@x.com  ")
	require.NoError(t, err)
	profiles.AssertExpectations(t)
}

func TestSendFriendRequestEmptyEmail(t *testing.T) {
	svc, profiles, _, _ := newServiceWithMocks()

	_, err := svc.SendFriendRequest(context.Background(), "alice", "   ")
	require.ErrorIs(t, err, ErrEmptyEmail)
	profiles.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestSendFriendRequestUnknownEmail(t *testing.T) {
	svc, profiles, _, friendships := newServiceWithMocks()

	profiles.On("GetByEmail", mock.Anything, "ghost@x.com").Return(models.Profile{}, repositories.ErrProfileNotFound).Once()

	_, err := svc.SendFriendRequest(context.Background(), "alice", "ghost@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
	friendships.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	svc, profiles, _, friendships := newServiceWithMocks()

	profiles.On("GetByEmail", mock.Anything, "alice@x.com").Return(models.Profile{ID: "alice", Email: "alice@x.com"}, nil).Once()

	_, err := svc.SendFriendRequest(context.Background(), "alice", "alice@x.com")
	require.ErrorIs(t, err, ErrSelfRequest)
	friendships.AssertNotCalled(t, "ExistsBetween", mock.Anything, mock.Anything, mock.Anything)
	friendships.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendFriendRequestDuplicate(t *testing.T) {
	// An existing edge blocks a new request from either direction,
	// regardless of status.
	for _, caller := range []string{"alice", "bob"} {
		svc, profiles, _, friendships := newServiceWithMocks()
		target := "bob"
		if caller == "bob" {
			target = "alice"
		}

		profiles.On("GetByEmail", mock.Anything, target+"@x.com").Return(models.Profile{ID: target}, nil).Once()
		friendships.On("ExistsBetween", mock.Anything, caller, target).Return(true, nil).Once()

		_, err := svc.SendFriendRequest(context.Background(), caller, target+"@x.com")
		require.ErrorIs(t, err, ErrDuplicateRequest)
		friendships.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSendFriendRequestRaceLoserGetsDuplicate(t *testing.T) {
	svc, profiles, _, friendships := newServiceWithMocks()

	profiles.On("GetByEmail", mock.Anything, "bob@x.com").Return(models.Profile{ID: "bob"}, nil).Once()
	friendships.On("ExistsBetween", mock.Anything, "alice", "bob").Return(false, nil).Once()
	friendships.On("Create", mock.Anything, "alice", "bob").Return(models.Friendship{}, repositories.ErrDuplicateFriendship).Once()

	_, err := svc.SendFriendRequest(context.Background(), "alice", "bob@x.com")
	require.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestAcceptFriendRequest(t *testing.T) {
	svc, _, _, friendships := newServiceWithMocks()

	friendships.On("Accept", mock.Anything, "alice", "bob").Return(nil).Once()

	err := svc.AcceptFriendRequest(context.Background(), "bob", "alice")
	require.NoError(t, err)
	friendships.AssertExpectations(t)
}

func TestAcceptFriendRequestIsSilentlyIdempotent(t *testing.T) {
	// Accepting an already-accepted or nonexistent request succeeds
	// without error; the update simply matches zero rows.
	svc, _, _, friendships := newServiceWithMocks()

	friendships.On("Accept", mock.Anything, "alice", "bob").Return(nil).Twice()

	require.NoError(t, svc.AcceptFriendRequest(context.Background(), "bob", "alice"))
	require.NoError(t, svc.AcceptFriendRequest(context.Background(), "bob", "alice"))
}

func TestAcceptFriendRequestStoreError(t *testing.T) {
	svc, _, _, friendships := newServiceWithMocks()

	friendships.On("Accept", mock.Anything, "alice", "bob").Return(assert.AnError).Once()

	err := svc.AcceptFriendRequest(context.Background(), "bob", "alice")
	require.Error(t, err)
}

func TestRequestThenAcceptThenMessageFlow(t *testing.T) {
	// Full flow: request, accept, then the requester sees
	// the receiver first without a message and later with one.
	svc, profiles, messages, friendships := newServiceWithMocks()

	profiles.On("GetByEmail", mock.Anything, "bob@x.com").Return(models.Profile{ID: "bob", Email: "bob@x.com"}, nil).Once()
	friendships.On("ExistsBetween", mock.Anything, "alice", "bob").Return(false, nil).Once()
	friendships.On("Create", mock.Anything, "alice", "bob").Return(models.Friendship{
		ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipPending,
	}, nil).Once()

	_, err := svc.SendFriendRequest(context.Background(), "alice", "bob@x.com")
	require.NoError(t, err)

	friendships.On("ListPendingFor", mock.Anything, "bob").Return([]models.Friendship{
		{ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipPending},
	}, nil).Once()
	profiles.On("ListByIDs", mock.Anything, []string{"alice"}).Return([]models.Profile{{ID: "alice", Email: "alice@x.com"}}, nil).Once()

	requests, err := svc.ListIncomingRequests(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "alice", requests[0].ID)

	friendships.On("Accept", mock.Anything, "alice", "bob").Return(nil).Once()
	require.NoError(t, svc.AcceptFriendRequest(context.Background(), "bob", "alice"))

	accepted := models.Friendship{ID: 1, RequesterID: "alice", ReceiverID: "bob", Status: models.FriendshipAccepted}
	friendships.On("ListAcceptedFor", mock.Anything, "alice").Return([]models.Friendship{accepted}, nil).Twice()
	profiles.On("ListByIDs", mock.Anything, []string{"bob"}).Return([]models.Profile{{ID: "bob", Email: "bob@x.com"}}, nil).Twice()
	messages.On("ListByUserIDs", mock.Anything, []string{"bob"}).Return([]models.SecretMessage{}, nil).Once()

	friends, err := svc.ListFriendsAndMessages(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Nil(t, friends[0].Message)

	messages.On("ListByUserIDs", mock.Anything, []string{"bob"}).Return([]models.SecretMessage{{UserID: "bob", Message: "hi"}}, nil).Once()

	friends, err = svc.ListFriendsAndMessages(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, strPtr("hi"), friends[0].Message)
}
