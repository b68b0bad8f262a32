package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ai-chat-backend/internal/models"
)

type threadRepository interface {
	Create(ctx context.Context, t *models.Thread) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Thread, error)
	ListByEmail(ctx context.Context, email, applicationName string, skip, limit int) ([]models.ThreadSummary, int, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
}

type chatRepository interface {
	ListByThread(ctx context.Context, threadID uuid.UUID) ([]models.Chat, error)
}

type applicationRepository interface {
	GetByName(ctx context.Context, name string) (*models.Application, error)
}

// ThreadService owns thread identity: deciding which conversation an
// exchange belongs to, and the thread listing/detail/delete operations.
type ThreadService struct {
	threadRepo threadRepository
	chatRepo   chatRepository
	appRepo    applicationRepository
}

func NewThreadService(threadRepo threadRepository, chatRepo chatRepository, appRepo applicationRepository) *ThreadService {
	return &ThreadService{threadRepo: threadRepo, chatRepo: chatRepo, appRepo: appRepo}
}

// Resolve returns the thread an exchange belongs to. A supplied thread id is
// trusted as-is with no existence check: the store owns validity, and the
// extra round trip is not worth it. Without one, the named application is
// resolved first (failing fast before any upstream call) and a fresh thread
// is created.
func (s *ThreadService) Resolve(ctx context.Context, req models.ChatRequest) (uuid.UUID, bool, error) {
	if req.ThreadID != nil {
		return *req.ThreadID, false, nil
	}

	app, err := s.appRepo.GetByName(ctx, req.Application)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, &NotFoundError{Message: "Application not found"}
		}
		return uuid.Nil, false, fmt.Errorf("failed to resolve application: %w", err)
	}

	thread := &models.Thread{
		Email:         req.Email,
		DeviceType:    req.DeviceType,
		ApplicationID: &app.ID,
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to create thread: %w", err)
	}

	return thread.ID, true, nil
}

func (s *ThreadService) List(ctx context.Context, email, application string, skip, limit int) (models.ThreadListResponse, error) {
	summaries, total, err := s.threadRepo.ListByEmail(ctx, email, application, skip, limit)
	if err != nil {
		return models.ThreadListResponse{}, fmt.Errorf("failed to list threads: %w", err)
	}
	if summaries == nil {
		summaries = []models.ThreadSummary{}
	}
	return models.ThreadListResponse{Data: summaries, Total: total}, nil
}

// GetDetail renders a thread's exchanges as role/content messages. Each chat
// row becomes a user message from the question plus an assistant message
// from the decoded answer record.
func (s *ThreadService) GetDetail(ctx context.Context, id uuid.UUID) (*models.ThreadDetail, error) {
	thread, err := s.threadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Thread not found"}
		}
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}

	chats, err := s.chatRepo.ListByThread(ctx, thread.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread chats: %w", err)
	}

	title := "Untitled Thread"
	if len(chats) > 0 {
		title = chats[0].Question
	}

	messages := make([]models.Message, 0, len(chats)*2)
	for _, chat := range chats {
		messages = append(messages, models.Message{
			ID:      chat.ID,
			Role:    "user",
			Content: chat.Question,
		})

		record := models.DecodeAnswerRecord(chat.Response)
		messages = append(messages, models.Message{
			ID:            chat.ID,
			Role:          "assistant",
			Content:       record.Answer,
			SearchResults: record.SearchResults,
		})
	}

	return &models.ThreadDetail{ID: thread.ID, Title: title, Messages: messages}, nil
}

func (s *ThreadService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.threadRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if !deleted {
		return &NotFoundError{Message: "Thread not found or already deleted"}
	}
	return nil
}
