package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/dbx"
	"github.com/bridgehq/bridge/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password_hash, email_verified, verification_code,
	 first_name, surname, age, profession,
	 goals, interests, personality, gender_preference, age_pref_min, age_pref_max,
	 statement, bio, location, max_distance, created_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	goals, interests, personality, genders, err := encodeProfileFields(user)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (id, email, password_hash, email_verified, verification_code,
		     first_name, surname, age, profession,
		     goals, interests, personality, gender_preference, age_pref_min, age_pref_max,
		     statement, bio, location, max_distance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Verified, user.VerificationCode,
		user.FirstName, user.Surname,
		user.Age, user.Profession, goals, interests, personality, genders,
		user.AgePrefMin, user.AgePrefMax, user.Statement, user.Bio,
		user.Location, user.MaxDistance).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListUngrouped(ctx context.Context, excludeID string) ([]*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users u
		 WHERE u.id <> $1
		   AND NOT EXISTS (
		       SELECT 1 FROM group_members gm
		       WHERE gm.user_id = u.id AND gm.status = 'active')
		 ORDER BY u.created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, excludeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) SetVerified(ctx context.Context, email string) error {
	query := `UPDATE users SET email_verified = TRUE, verification_code = '' WHERE email = $1`
	return r.execOne(ctx, query, email)
}

func (r *PostgresRepository) SetVerificationCode(ctx context.Context, email, code string) error {
	query := `UPDATE users SET verification_code = $2 WHERE email = $1`
	return r.execOne(ctx, query, email, code)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(scan func(dest ...any) error) (*models.User, error) {
	user := &models.User{}
	var goals, interests, personality, genders []byte

	err := scan(&user.ID, &user.Email, &user.PasswordHash, &user.Verified,
		&user.VerificationCode, &user.FirstName,
		&user.Surname, &user.Age, &user.Profession, &goals, &interests,
		&personality, &genders, &user.AgePrefMin, &user.AgePrefMax,
		&user.Statement, &user.Bio, &user.Location, &user.MaxDistance,
		&user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(goals, &user.Goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	if err := json.Unmarshal(interests, &user.Interests); err != nil {
		return nil, fmt.Errorf("decode interests: %w", err)
	}
	if err := json.Unmarshal(personality, &user.Personality); err != nil {
		return nil, fmt.Errorf("decode personality: %w", err)
	}
	if err := json.Unmarshal(genders, &user.GenderPreference); err != nil {
		return nil, fmt.Errorf("decode gender preference: %w", err)
	}
	return user, nil
}

func encodeProfileFields(user *models.User) (goals, interests, personality, genders []byte, err error) {
	if goals, err = json.Marshal(sliceOrEmpty(user.Goals)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode goals: %w", err)
	}
	if interests, err = json.Marshal(sliceOrEmpty(user.Interests)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode interests: %w", err)
	}
	if personality, err = json.Marshal(user.Personality); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode personality: %w", err)
	}
	if genders, err = json.Marshal(sliceOrEmpty(user.GenderPreference)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode gender preference: %w", err)
	}
	return goals, interests, personality, genders, nil
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
