package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"secret-pages-service/internal/models"
)

var ErrDuplicateFriendship = errors.New("friendship already exists")

// FriendshipRepository abstracts the friendship graph.
type FriendshipRepository interface {
	Create(ctx context.Context, requesterID, receiverID string) (models.Friendship, error)
	ExistsBetween(ctx context.Context, userA, userB string) (bool, error)
	ListAcceptedFor(ctx context.Context, userID string) ([]models.Friendship, error)
	ListPendingFor(ctx context.Context, receiverID string) ([]models.Friendship, error)
	Accept(ctx context.Context, requesterID, receiverID string) error
}

// FriendshipRepo is a sqlx implementation of FriendshipRepository.
type FriendshipRepo struct {
	db *sqlx.DB
}

// NewFriendshipRepo constructs a FriendshipRepo.
func NewFriendshipRepo(db *sqlx.DB) *FriendshipRepo {
	return &FriendshipRepo{db: db}
}

// Create inserts a pending edge. The unique index over the unordered
// pair turns a concurrent double-insert into ErrDuplicateFriendship.
func (r *FriendshipRepo) Create(ctx context.Context, requesterID, receiverID string) (models.Friendship, error) {
	var f models.Friendship
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO friendships (requester_id, receiver_id, status) VALUES ($1, $2, $3)
         RETURNING id, requester_id, receiver_id, status, created_at`,
		requesterID, receiverID, models.FriendshipPending).
		Scan(&f.ID, &f.RequesterID, &f.ReceiverID, &f.Status, &f.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Friendship{}, ErrDuplicateFriendship
		}
		return models.Friendship{}, err
	}
	return f, nil
}

// ExistsBetween reports whether any edge exists between the two users,
// in either direction and regardless of status.
func (r *FriendshipRepo) ExistsBetween(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM friendships
         WHERE (requester_id=$1 AND receiver_id=$2) OR (requester_id=$2 AND receiver_id=$1))`,
		userA, userB)
	return exists, err
}

// ListAcceptedFor returns accepted edges where the user appears on
// either end.
func (r *FriendshipRepo) ListAcceptedFor(ctx context.Context, userID string) ([]models.Friendship, error) {
	var rows []models.Friendship
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, requester_id, receiver_id, status, created_at FROM friendships
         WHERE status=$1 AND (requester_id=$2 OR receiver_id=$2)
         ORDER BY created_at`,
		models.FriendshipAccepted, userID)
	return rows, err
}

// ListPendingFor returns pending edges pointed at the receiver.
func (r *FriendshipRepo) ListPendingFor(ctx context.Context, receiverID string) ([]models.Friendship, error) {
	var rows []models.Friendship
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, requester_id, receiver_id, status, created_at FROM friendships
         WHERE receiver_id=$1 AND status=$2
         ORDER BY created_at`,
		receiverID, models.FriendshipPending)
	return rows, err
}

// Accept marks the edge accepted. The update intentionally does not
// filter on status and does not inspect the affected row count, so
// accepting an already-accepted or nonexistent edge is a silent no-op.
func (r *FriendshipRepo) Accept(ctx context.Context, requesterID, receiverID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE friendships SET status=$1 WHERE requester_id=$2 AND receiver_id=$3`,
		models.FriendshipAccepted, requesterID, receiverID)
	return err
}
