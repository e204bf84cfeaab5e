package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ErrAlreadyProcessed is returned when a status transition targets an
// application that has already left the pending state.
var ErrAlreadyProcessed = errors.New("application already processed")

type Application struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	Contact   string    `db:"contact"`
	Purpose   string    `db:"purpose"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Stats struct {
	Total    int64 `db:"total"`
	Pending  int64 `db:"pending"`
	Approved int64 `db:"approved"`
	Rejected int64 `db:"rejected"`
}

type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

// Create inserts a pending application and stamps the owner's
// last_submission_time in the same transaction.
func (r *ApplicationRepository) Create(ctx context.Context, userID int64, name, contact, purpose string) (*Application, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ApplicationRepository.Create: %w", err)
	}
	defer tx.Rollback()

	var app Application

	err = tx.GetContext(ctx, &app, `
	    INSERT INTO applications (user_id, name, contact, purpose, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING *
	`, userID, name, contact, purpose)

	if err != nil {
		return nil, fmt.Errorf("ApplicationRepository.Create: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	    UPDATE users
		SET last_submission_time = CURRENT_TIMESTAMP
		WHERE user_id = $1
	`, userID)

	if err != nil {
		return nil, fmt.Errorf("ApplicationRepository.Create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ApplicationRepository.Create: %w", err)
	}

	return &app, nil
}

// GetByID returns nil without error when the application does not exist.
func (r *ApplicationRepository) GetByID(ctx context.Context, appID int64) (*Application, error) {
	var app Application

	err := r.db.GetContext(ctx, &app, `
	    SELECT * FROM applications
		WHERE id = $1
	`, appID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("ApplicationRepository.GetByID: %w", err)
	}

	return &app, nil
}

func (r *ApplicationRepository) ListPending(ctx context.Context, limit int) ([]Application, error) {
	var apps []Application

	err := r.db.SelectContext(ctx, &apps, `
	    SELECT * FROM applications
		WHERE status = 'pending'
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("ApplicationRepository.ListPending: %w", err)
	}

	return apps, nil
}

func (r *ApplicationRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64

	err := r.db.GetContext(ctx, &count, `
	    SELECT COUNT(*) FROM applications
		WHERE status = 'pending'
	`)

	if err != nil {
		return 0, fmt.Errorf("ApplicationRepository.CountPending: %w", err)
	}

	return count, nil
}

// UpdateStatusIfPending performs the pending -> terminal transition as a
// single conditional UPDATE. Two admins racing on the same application get
// exactly one success; the loser sees ErrAlreadyProcessed.
func (r *ApplicationRepository) UpdateStatusIfPending(ctx context.Context, appID int64, status string) error {
	res, err := r.db.ExecContext(ctx, `
	    UPDATE applications
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = 'pending'
	`, status, appID)

	if err != nil {
		return fmt.Errorf("ApplicationRepository.UpdateStatusIfPending: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ApplicationRepository.UpdateStatusIfPending: %w", err)
	}

	if affected == 0 {
		return ErrAlreadyProcessed
	}

	return nil
}

func (r *ApplicationRepository) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	err := r.db.GetContext(ctx, &stats, `
	    SELECT
		    COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected
		FROM applications
	`)

	if err != nil {
		return nil, fmt.Errorf("ApplicationRepository.GetStats: %w", err)
	}

	return &stats, nil
}
