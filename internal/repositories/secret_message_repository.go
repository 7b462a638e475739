package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"secret-pages-service/internal/models"
)

var ErrSecretMessageNotFound = errors.New("secret message not found")

// SecretMessageRepository abstracts secret message persistence.
type SecretMessageRepository interface {
	Upsert(ctx context.Context, userID, message string) (models.SecretMessage, error)
	GetByUserID(ctx context.Context, userID string) (models.SecretMessage, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]models.SecretMessage, error)
}

// SecretMessageRepo is a sqlx implementation of SecretMessageRepository.
type SecretMessageRepo struct {
	db *sqlx.DB
}

// NewSecretMessageRepo constructs a SecretMessageRepo.
func NewSecretMessageRepo(db *sqlx.DB) *SecretMessageRepo {
	return &SecretMessageRepo{db: db}
}

// Upsert stores the user's single message, replacing any previous one.
func (r *SecretMessageRepo) Upsert(ctx context.Context, userID, message string) (models.SecretMessage, error) {
	var msg models.SecretMessage
	err := r.db.QueryRowxContext(ctx, `INSERT INTO secret_messages (user_id, message, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE SET message = EXCLUDED.message, updated_at = NOW()
        RETURNING user_id, message, updated_at`, userID, message).
		Scan(&msg.UserID, &msg.Message, &msg.UpdatedAt)
	return msg, err
}

// GetByUserID fetches the user's message.
func (r *SecretMessageRepo) GetByUserID(ctx context.Context, userID string) (models.SecretMessage, error) {
	var msg models.SecretMessage
	err := r.db.GetContext(ctx, &msg, `SELECT user_id, message, updated_at FROM secret_messages WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SecretMessage{}, ErrSecretMessageNotFound
	}
	return msg, err
}

// ListByUserIDs fetches the messages for the given user ids. Users
// without a message simply have no row in the result.
func (r *SecretMessageRepo) ListByUserIDs(ctx context.Context, userIDs []string) ([]models.SecretMessage, error) {
	query, args, err := sqlx.In(`SELECT user_id, message, updated_at FROM secret_messages WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var msgs []models.SecretMessage
	err = r.db.SelectContext(ctx, &msgs, query, args...)
	return msgs, err
}
