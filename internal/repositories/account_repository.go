package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"secret-pages-service/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// uniqueViolation is the Postgres error code for unique constraint hits.
const uniqueViolation = "23505"

// AccountRepository abstracts account persistence.
type AccountRepository interface {
	Create(ctx context.Context, account models.Account) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	GetByID(ctx context.Context, id string) (models.Account, error)
	Delete(ctx context.Context, id string) error
}

// AccountRepo is a sqlx implementation of AccountRepository.
type AccountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo constructs an AccountRepo.
func NewAccountRepo(db *sqlx.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create inserts a new account.
func (r *AccountRepo) Create(ctx context.Context, account models.Account) (models.Account, error) {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO accounts (id, email, password_hash) VALUES ($1, $2, $3) RETURNING id, email, password_hash, created_at`,
		account.ID, account.Email, account.PasswordHash).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Account{}, ErrEmailTaken
		}
		return models.Account{}, err
	}
	return account, nil
}

// GetByEmail fetches an account by email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `SELECT id, email, password_hash, created_at FROM accounts WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	return account, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `SELECT id, email, password_hash, created_at FROM accounts WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	return account, err
}

// Delete removes the account together with its profile, secret message
// and friendship rows in one transaction.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM friendships WHERE requester_id=$1 OR receiver_id=$1`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM secret_messages WHERE user_id=$1`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM profiles WHERE id=$1`, id); err != nil {
		return err
	}

	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM accounts WHERE id=$1`, id); err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		err = ErrAccountNotFound
		return err
	}

	return tx.Commit()
}
