package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type User struct {
	UserID             int64      `db:"user_id"`
	Language           string     `db:"language"`
	LastSubmissionTime *time.Time `db:"last_submission_time"`
	CreatedAt          time.Time  `db:"created_at"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// GetByID returns nil without error when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*User, error) {
	var user User

	err := r.db.GetContext(ctx, &user, `
	    SELECT * FROM users
		WHERE user_id = $1
	`, userID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("UserRepository.GetByID: %w", err)
	}

	return &user, nil
}

// GetOrCreate lazily registers the user on first contact. The language only
// applies to newly created rows.
func (r *UserRepository) GetOrCreate(ctx context.Context, userID int64, language string) (*User, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	var created User

	err = r.db.GetContext(ctx, &created, `
	    INSERT INTO users (user_id, language)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING *
	`, userID, language)

	if err != nil {
		return nil, fmt.Errorf("UserRepository.GetOrCreate: %w", err)
	}

	return &created, nil
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	_, err := r.db.ExecContext(ctx, `
	    UPDATE users
		SET language = $1
		WHERE user_id = $2
	`, language, userID)

	if err != nil {
		return fmt.Errorf("UserRepository.UpdateLanguage: %w", err)
	}

	return nil
}

// Language returns the stored preference, falling back to def for unknown
// users.
func (r *UserRepository) Language(ctx context.Context, userID int64, def string) string {
	user, err := r.GetByID(ctx, userID)
	if err != nil || user == nil || user.Language == "" {
		return def
	}

	return user.Language
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("UserRepository.CountAll: %w", err)
	}

	return count, nil
}
