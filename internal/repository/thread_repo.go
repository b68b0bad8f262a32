package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ai-chat-backend/internal/models"
)

type ThreadRepo struct {
	pool *pgxpool.Pool
}

func NewThreadRepo(pool *pgxpool.Pool) *ThreadRepo {
	return &ThreadRepo{pool: pool}
}

func (r *ThreadRepo) Create(ctx context.Context, t *models.Thread) error {
	t.ID = uuid.New()

	query := `INSERT INTO threads (id, email, device_type, application_id)
		VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		t.ID, t.Email, t.DeviceType, t.ApplicationID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *ThreadRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Thread, error) {
	t := &models.Thread{}
	query := `SELECT id, email, device_type, application_id, is_deleted, created_at, updated_at
		FROM threads WHERE id = $1 AND is_deleted = FALSE`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Email, &t.DeviceType, &t.ApplicationID, &t.IsDeleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByEmail returns thread summaries for one email/application pair, newest
// first. The summary title is the first question asked on the thread.
func (r *ThreadRepo) ListByEmail(ctx context.Context, email, applicationName string, skip, limit int) ([]models.ThreadSummary, int, error) {
	where := `FROM threads t
		JOIN applications a ON a.id = t.application_id
		WHERE t.email = $1 AND a.name = $2 AND t.is_deleted = FALSE`

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+where, email, applicationName).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT t.id,
		COALESCE(
			(SELECT c.question FROM chats c WHERE c.thread_id = t.id ORDER BY c.created_at ASC LIMIT 1),
			'Untitled Thread'
		) AS title ` + where + `
		ORDER BY t.created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, email, applicationName, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []models.ThreadSummary
	for rows.Next() {
		var s models.ThreadSummary
		if err := rows.Scan(&s.ID, &s.Title); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}

	return summaries, total, rows.Err()
}

// SoftDelete flags a thread deleted. Returns false when the thread does not
// exist or was already deleted.
func (r *ThreadRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE threads SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE",
		id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
