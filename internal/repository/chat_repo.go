package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ai-chat-backend/internal/models"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

// Save persists one completed exchange. The response column stores the merged
// transcript verbatim.
func (r *ChatRepo) Save(ctx context.Context, threadID uuid.UUID, question string, response json.RawMessage) (uuid.UUID, error) {
	id := uuid.New()

	query := `INSERT INTO chats (id, thread_id, question, response)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.pool.Exec(ctx, query, id, threadID, question, response); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ListByThread returns a thread's exchanges oldest first.
func (r *ChatRepo) ListByThread(ctx context.Context, threadID uuid.UUID) ([]models.Chat, error) {
	query := `SELECT id, thread_id, question, response, created_at, updated_at
		FROM chats WHERE thread_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var c models.Chat
		if err := rows.Scan(&c.ID, &c.ThreadID, &c.Question, &c.Response, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}

	return chats, rows.Err()
}
