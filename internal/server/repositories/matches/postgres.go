package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/dbx"
	"github.com/bridgehq/bridge/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.MatchRequest) (*models.MatchRequest, error) {

	query :=
		`INSERT INTO match_requests (id, from_id, to_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		req.ID, req.FromID, req.ToID, req.Status).Scan(&req.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return req, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	query :=
		`SELECT id, from_id, to_id, status, created_at FROM match_requests
		 WHERE id = $1
		 `

	req := &models.MatchRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.FromID, &req.ToID, &req.Status, &req.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return req, nil
}

func (r *PostgresRepository) HasPendingFrom(ctx context.Context, fromID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		     SELECT 1 FROM match_requests
		     WHERE from_id = $1 AND status = 'pending')
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, fromID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) ListPendingTo(ctx context.Context, toID string) ([]*models.MatchRequest, error) {
	query :=
		`SELECT id, from_id, to_id, status, created_at FROM match_requests
		 WHERE to_id = $1 AND status = 'pending'
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, toID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.MatchRequest
	for rows.Next() {
		req := &models.MatchRequest{}
		if err := rows.Scan(&req.ID, &req.FromID, &req.ToID, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE match_requests SET status = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
