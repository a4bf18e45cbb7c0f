package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"resume-builder/resume/model"
)

// PGRepo stores resumes in the resumes table with the data as jsonb.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	data, err := json.Marshal(res.Data)
	if err != nil {
		return fmt.Errorf("encode resume data: %w", err)
	}
	const query = `
INSERT INTO resumes (id, user_id, title, template, thumbnail, data, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		res.Title,
		res.Template,
		nullableString(res.Thumbnail),
		data,
		res.CreatedAt,
		res.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, userID, id string) (Resume, error) {
	if !validUUID(userID) || !validUUID(id) {
		return Resume{}, ErrNotFound
	}
	const query = `
SELECT id, user_id, title, template, thumbnail, data, created_at, updated_at
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return res, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if !validUUID(userID) {
		return []Resume{}, nil
	}
	const query = `
SELECT id, user_id, title, template, thumbnail, data, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	if !validUUID(res.UserID) || !validUUID(res.ID) {
		return ErrNotFound
	}
	data, err := json.Marshal(res.Data)
	if err != nil {
		return fmt.Errorf("encode resume data: %w", err)
	}
	const query = `
UPDATE resumes
SET title = $3, template = $4, thumbnail = $5, data = $6, updated_at = $7
WHERE id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		res.Title,
		res.Template,
		nullableString(res.Thumbnail),
		data,
		res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	if !validUUID(userID) || !validUUID(id) {
		return ErrNotFound
	}
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var thumbnail sql.NullString
	var data []byte
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&res.Template,
		&thumbnail,
		&data,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if thumbnail.Valid {
		res.Thumbnail = thumbnail.String
	}
	if len(data) > 0 {
		parsed, err := model.Parse(data)
		if err != nil {
			return Resume{}, fmt.Errorf("decode resume %s data: %w", res.ID, err)
		}
		res.Data = parsed
	}
	return res, nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// validUUID guards uuid columns against ids that could never match.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
