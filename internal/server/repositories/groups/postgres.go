package groups

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

func (r *PostgresRepository) Create(ctx context.Context, group *models.Group) (*models.Group, error) {

	query :=
		`INSERT INTO groups (id)
		 VALUES ($1)
		 RETURNING created_at
		 `

	if err := r.db.QueryRowContext(ctx, query, group.ID).Scan(&group.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, groupID, userID string) error {
	query :=
		`INSERT INTO group_members (group_id, user_id, status)
		 VALUES ($1, $2, 'active')
		 ON CONFLICT (group_id, user_id) DO UPDATE SET status = 'active', joined_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ActiveGroupByUser(ctx context.Context, userID string) (*models.Group, error) {
	query :=
		`SELECT g.id, g.created_at FROM groups g
		 JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.user_id = $1 AND gm.status = 'active'
		 ORDER BY gm.joined_at DESC
		 LIMIT 1
		 `

	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *PostgresRepository) ActiveMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	query :=
		`SELECT gm.group_id, gm.user_id, u.first_name, gm.status, gm.joined_at
		 FROM group_members gm
		 JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id = $1 AND gm.status = 'active'
		 ORDER BY gm.joined_at
		 `

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.GroupMember
	for rows.Next() {
		m := &models.GroupMember{}
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.FirstName, &m.Status, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ActiveMemberCount(ctx context.Context, groupID string) (int, error) {
	query :=
		`SELECT count(*) FROM group_members
		 WHERE group_id = $1 AND status = 'active'
		 `

	var n int
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) IsActiveMember(ctx context.Context, groupID, userID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		     SELECT 1 FROM group_members
		     WHERE group_id = $1 AND user_id = $2 AND status = 'active')
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) MarkLeft(ctx context.Context, groupID, userID string) error {
	query :=
		`UPDATE group_members SET status = 'left'
		 WHERE group_id = $1 AND user_id = $2 AND status = 'active'
		 `

	res, err := r.db.ExecContext(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotGroupMember
	}
	return nil
}
