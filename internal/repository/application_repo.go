package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ai-chat-backend/internal/models"
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	a.ID = uuid.New()

	query := `INSERT INTO applications (id, name)
		VALUES ($1, $2) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query, a.ID, a.Name).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *ApplicationRepo) GetByName(ctx context.Context, name string) (*models.Application, error) {
	a := &models.Application{}
	query := `SELECT id, name, created_at, updated_at FROM applications WHERE name = $1`

	err := r.pool.QueryRow(ctx, query, name).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
