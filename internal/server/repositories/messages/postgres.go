package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/bridgehq/bridge/internal/dbx"
	"github.com/bridgehq/bridge/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {

	query :=
		`INSERT INTO messages (id, group_id, sender_id, message_text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		msg.ID, msg.GroupID, msg.SenderID, msg.Text).Scan(&msg.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string, since time.Time) ([]*models.Message, error) {
	query :=
		`SELECT m.id, m.group_id, m.sender_id, u.first_name, m.message_text, m.created_at
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.group_id = $1 AND m.created_at > $2
		 ORDER BY m.created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, groupID, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.SenderName, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
