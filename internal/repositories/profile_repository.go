package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"secret-pages-service/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository abstracts profile persistence.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile models.Profile) error
	GetByEmail(ctx context.Context, email string) (models.Profile, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Profile, error)
}

// ProfileRepo is a sqlx implementation of ProfileRepository.
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo constructs a ProfileRepo.
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Upsert creates or replaces the profile row for the account.
func (r *ProfileRepo) Upsert(ctx context.Context, profile models.Profile) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO profiles (id, email) VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email`, profile.ID, profile.Email)
	return err
}

// GetByEmail resolves an email to a profile.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (models.Profile, error) {
	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT id, email FROM profiles WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	return profile, err
}

// ListByIDs fetches the profiles for the given ids. Callers must not
// pass an empty slice; the empty case is short-circuited upstream.
func (r *ProfileRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	query, args, err := sqlx.In(`SELECT id, email FROM profiles WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var profiles []models.Profile
	err = r.db.SelectContext(ctx, &profiles, query, args...)
	return profiles, err
}
