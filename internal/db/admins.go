package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrAdminExists is returned by Add when the handle is already authorized,
// either as the primary admin or as a stored row.
var ErrAdminExists = errors.New("admin already exists")

type Admin struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	AddedBy   int64     `db:"added_by"`
	CreatedAt time.Time `db:"created_at"`
}

// AdminRepository answers authorization questions. The primary admin comes
// from config and is never stored as a row.
type AdminRepository struct {
	db        *sqlx.DB
	primaryID int64
}

func NewAdminRepository(db *sqlx.DB, primaryID int64) *AdminRepository {
	return &AdminRepository{
		db:        db,
		primaryID: primaryID,
	}
}

func (r *AdminRepository) PrimaryID() int64 {
	return r.primaryID
}

func (r *AdminRepository) IsPrimary(userID int64) bool {
	return userID == r.primaryID
}

func (r *AdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if userID == r.primaryID {
		return true, nil
	}

	var exists bool

	err := r.db.GetContext(ctx, &exists, `
	    SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)
	`, userID)

	if err != nil {
		return false, fmt.Errorf("AdminRepository.IsAdmin: %w", err)
	}

	return exists, nil
}

// Add authorizes a new admin. ON CONFLICT DO NOTHING keeps concurrent
// duplicate calls down to exactly one row.
func (r *AdminRepository) Add(ctx context.Context, userID, addedBy int64) (*Admin, error) {
	if userID == r.primaryID {
		return nil, ErrAdminExists
	}

	var admin Admin

	err := r.db.GetContext(ctx, &admin, `
	    INSERT INTO admins (user_id, added_by)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING *
	`, userID, addedBy)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminExists
		}

		return nil, fmt.Errorf("AdminRepository.Add: %w", err)
	}

	return &admin, nil
}

// Remove deletes an added admin. Returns false without mutation for the
// primary admin or an unknown handle.
func (r *AdminRepository) Remove(ctx context.Context, userID int64) (bool, error) {
	if userID == r.primaryID {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `
	    DELETE FROM admins
		WHERE user_id = $1
	`, userID)

	if err != nil {
		return false, fmt.Errorf("AdminRepository.Remove: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("AdminRepository.Remove: %w", err)
	}

	return affected > 0, nil
}

// ListAdded returns the stored admins, newest first. The primary admin is
// not included.
func (r *AdminRepository) ListAdded(ctx context.Context) ([]Admin, error) {
	var admins []Admin

	err := r.db.SelectContext(ctx, &admins, `
	    SELECT * FROM admins
		ORDER BY created_at DESC
	`)

	if err != nil {
		return nil, fmt.Errorf("AdminRepository.ListAdded: %w", err)
	}

	return admins, nil
}

// AllHandles returns every authorized handle with the primary admin first.
func (r *AdminRepository) AllHandles(ctx context.Context) ([]int64, error) {
	admins, err := r.ListAdded(ctx)
	if err != nil {
		return nil, fmt.Errorf("AdminRepository.AllHandles: %w", err)
	}

	handles := make([]int64, 0, len(admins)+1)
	handles = append(handles, r.primaryID)
	for _, admin := range admins {
		handles = append(handles, admin.UserID)
	}

	return handles, nil
}
