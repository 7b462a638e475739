package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"secret-pages-service/internal/models"
	"secret-pages-service/internal/repositories"
)

var (
	ErrEmptyEmail       = errors.New("email is required")
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfRequest      = errors.New("cannot add yourself as a friend")
	ErrDuplicateRequest = errors.New("friend request already exists or you are already friends")
)

// Service computes friend lists with shared messages and mutates the
// friendship graph. It depends only on the repository contracts, never
// on a concrete store client.
type Service struct {
	profiles    repositories.ProfileRepository
	messages    repositories.SecretMessageRepository
	friendships repositories.FriendshipRepository
}

// NewService constructs the service.
func NewService(profiles repositories.ProfileRepository, messages repositories.SecretMessageRepository, friendships repositories.FriendshipRepository) *Service {
	return &Service{profiles: profiles, messages: messages, friendships: friendships}
}

// ListFriendsAndMessages returns every accepted friend of the user with
// the friend's shared message attached. A friend who has not published
// a message appears with Message nil; that is not an error. Output
// order follows the store's profile order.
func (s *Service) ListFriendsAndMessages(ctx context.Context, currentUserID string) ([]models.Friend, error) {
	edges, err := s.friendships.ListAcceptedFor(ctx, currentUserID)
	if err != nil {
		return nil, fmt.Errorf("list accepted friendships: %w", err)
	}

	friendIDs := make([]string, 0, len(edges))
	for _, edge := range edges {
		friendIDs = append(friendIDs, edge.OtherParty(currentUserID))
	}

	// Querying with an empty id set is wasteful at best; skip both
	// follow-up queries entirely.
	if len(friendIDs) == 0 {
		return []models.Friend{}, nil
	}

	profiles, err := s.profiles.ListByIDs(ctx, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("load friend profiles: %w", err)
	}
	msgs, err := s.messages.ListByUserIDs(ctx, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("load friend messages: %w", err)
	}

	messageByUser := make(map[string]string, len(msgs))
	for _, m := range msgs {
		messageByUser[m.UserID] = m.Message
	}

	friends := make([]models.Friend, 0, len(profiles))
	for _, p := range profiles {
		friend := models.Friend{ID: p.ID, Email: p.Email}
		if text, ok := messageByUser[p.ID]; ok {
			friend.Message = &text
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

// ListIncomingRequests returns the profiles of users with a pending
// request toward the current user.
func (s *Service) ListIncomingRequests(ctx context.Context, currentUserID string) ([]models.Profile, error) {
	pending, err := s.friendships.ListPendingFor(ctx, currentUserID)
	if err != nil {
		return nil, fmt.Errorf("list pending friendships: %w", err)
	}

	if len(pending) == 0 {
		return []models.Profile{}, nil
	}

	requesterIDs := make([]string, 0, len(pending))
	for _, edge := range pending {
		requesterIDs = append(requesterIDs, edge.RequesterID)
	}

	profiles, err := s.profiles.ListByIDs(ctx, requesterIDs)
	if err != nil {
		return nil, fmt.Errorf("load requester profiles: %w", err)
	}
	return profiles, nil
}

// SendFriendRequest resolves the target email and inserts a pending
// edge. Requests to unknown users, to oneself, and duplicates of an
// existing edge (any status, either direction) are rejected.
func (s *Service) SendFriendRequest(ctx context.Context, currentUserID, targetEmail string) (models.Friendship, error) {
	targetEmail = strings.TrimSpace(targetEmail)
	if targetEmail == "" {
		return models.Friendship{}, ErrEmptyEmail
	}

	target, err := s.profiles.GetByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return models.Friendship{}, ErrUserNotFound
		}
		return models.Friendship{}, fmt.Errorf("resolve target email: %w", err)
	}

	if target.ID == currentUserID {
		return models.Friendship{}, ErrSelfRequest
	}

	exists, err := s.friendships.ExistsBetween(ctx, currentUserID, target.ID)
	if err != nil {
		return models.Friendship{}, fmt.Errorf("check existing friendship: %w", err)
	}
	if exists {
		return models.Friendship{}, ErrDuplicateRequest
	}

	edge, err := s.friendships.Create(ctx, currentUserID, target.ID)
	if err != nil {
		// A concurrent request for the same pair can slip past the
		// existence check; the pair-unique index catches it here.
		if errors.Is(err, repositories.ErrDuplicateFriendship) {
			return models.Friendship{}, ErrDuplicateRequest
		}
		return models.Friendship{}, fmt.Errorf("create friendship: %w", err)
	}
	return edge, nil
}

// AcceptFriendRequest marks the request from requesterID toward the
// current user as accepted. Matching the source behavior, accepting an
// already-accepted or nonexistent request succeeds without effect.
func (s *Service) AcceptFriendRequest(ctx context.Context, currentUserID, requesterID string) error {
	if err := s.friendships.Accept(ctx, requesterID, currentUserID); err != nil {
		return fmt.Errorf("accept friendship: %w", err)
	}
	return nil
}
