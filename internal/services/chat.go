package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/stream"
)

type upstreamStreamer interface {
	Stream(ctx context.Context, req models.UpstreamRequest) (io.ReadCloser, error)
}

type chatStore interface {
	Save(ctx context.Context, threadID uuid.UUID, question string, response json.RawMessage) (uuid.UUID, error)
	ListByThread(ctx context.Context, threadID uuid.UUID) ([]models.Chat, error)
}

type threadResolver interface {
	Resolve(ctx context.Context, req models.ChatRequest) (uuid.UUID, bool, error)
}

type historyStore interface {
	Get(ctx context.Context, threadID uuid.UUID) ([]models.UpstreamMessage, bool)
	Set(ctx context.Context, threadID uuid.UUID, turns []models.UpstreamMessage)
	Invalidate(ctx context.Context, threadID uuid.UUID)
}

// FrameWriter delivers one wire frame to the downstream client. WriteFrame
// returns an error once the client is gone.
type FrameWriter interface {
	WriteFrame(frame []byte) error
}

// ChatService relays one exchange: it opens the upstream stream, forwards
// each decoded frame to the caller as it arrives, and once the stream closes
// merges the buffered events and persists the transcript against the
// resolved thread.
type ChatService struct {
	upstream       upstreamStreamer
	threads        threadResolver
	chats          chatStore
	history        historyStore
	maxQueryLength int
	logger         zerolog.Logger
}

func NewChatService(
	upstream upstreamStreamer,
	threads threadResolver,
	chats chatStore,
	history historyStore,
	maxQueryLength int,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		upstream:       upstream,
		threads:        threads,
		chats:          chats,
		history:        history,
		maxQueryLength: maxQueryLength,
		logger:         logger,
	}
}

// StreamChat drives a whole exchange. Errors returned before the first frame
// map to a clean error status; once streaming has started the stream simply
// ends early on failure (frames already forwarded are never retracted) and
// the transcript is not persisted.
//
// Policy: a client disconnect mid-stream also skips persistence, since the
// transcript would be known-incomplete.
func (s *ChatService) StreamChat(ctx context.Context, req models.ChatRequest, sink FrameWriter) error {
	if err := s.validate(req); err != nil {
		return err
	}

	threadID, created, err := s.threads.Resolve(ctx, req)
	if err != nil {
		return err
	}

	body, err := s.upstream.Stream(ctx, models.UpstreamRequest{Messages: s.buildTurns(ctx, req)})
	if err != nil {
		return err
	}
	defer body.Close()

	// The thread id goes out before any answer content, so the client can
	// address follow-up questions even if the stream dies mid-answer.
	idFrame := fmt.Sprintf("data: {\"thread_id\": \"%s\"}\n\n", threadID)
	if err := sink.WriteFrame([]byte(idFrame)); err != nil {
		s.logger.Warn().Err(err).Str("thread_id", threadID.String()).Msg("client gone before stream start")
		return nil
	}

	if created {
		s.logger.Info().Str("thread_id", threadID.String()).Str("application", req.Application).Msg("thread created")
	}

	decoder := stream.NewDecoder()
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		frame, err := decoder.DecodeLine(scanner.Text())
		if err != nil {
			// Frames already forwarded stand, but a transcript mixing JSON
			// and non-JSON content cannot be merged. Skip persistence.
			s.logger.Error().Err(err).Str("thread_id", threadID.String()).Msg("stream corrupted, skipping persistence")
			return nil
		}
		if frame == nil {
			continue
		}
		if err := sink.WriteFrame(frame); err != nil {
			s.logger.Warn().Err(err).Str("thread_id", threadID.String()).Msg("client disconnected mid-stream")
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Warn().Err(err).Str("thread_id", threadID.String()).Msg("upstream stream ended abnormally")
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}

	merged := stream.Merge(decoder.Events())
	if len(merged) == 0 {
		// Upstream produced no usable content; nothing to persist.
		return nil
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		s.logger.Error().Err(err).Str("thread_id", threadID.String()).Msg("failed to encode transcript")
		return nil
	}

	// Best-effort at-most-once: the client already has the answer, so a
	// failed write is logged rather than surfaced.
	if _, err := s.chats.Save(ctx, threadID, req.Query, raw); err != nil {
		s.logger.Error().Err(err).Str("thread_id", threadID.String()).Msg("failed to persist chat")
		return nil
	}
	s.history.Invalidate(ctx, threadID)

	return nil
}

func (s *ChatService) validate(req models.ChatRequest) error {
	if req.Email == "" {
		return &ValidationError{Message: "Email is required"}
	}
	if req.Query == "" {
		return &ValidationError{Message: "Query is required"}
	}
	if req.Application == "" {
		return &ValidationError{Message: "Application is required"}
	}
	if !req.DeviceType.Valid() {
		return &ValidationError{Message: "Invalid device type"}
	}
	if utf8.RuneCountInString(req.Query) > s.maxQueryLength {
		return &ValidationError{Message: fmt.Sprintf("Query cannot exceed %d characters", s.maxQueryLength)}
	}
	return nil
}

// buildTurns assembles the upstream message list: prior turns of a resumed
// thread first, then the current question.
func (s *ChatService) buildTurns(ctx context.Context, req models.ChatRequest) []models.UpstreamMessage {
	var turns []models.UpstreamMessage

	if req.ThreadID != nil {
		cached, ok := s.history.Get(ctx, *req.ThreadID)
		if ok {
			turns = cached
		} else {
			chats, err := s.chats.ListByThread(ctx, *req.ThreadID)
			if err != nil {
				s.logger.Warn().Err(err).Str("thread_id", req.ThreadID.String()).Msg("failed to load thread history")
			} else {
				for _, chat := range chats {
					turns = append(turns, models.UpstreamMessage{Role: "user", Content: chat.Question})
					if record := models.DecodeAnswerRecord(chat.Response); record.Answer != "" {
						turns = append(turns, models.UpstreamMessage{Role: "assistant", Content: record.Answer})
					}
				}
				s.history.Set(ctx, *req.ThreadID, turns)
			}
		}
	}

	return append(turns, models.UpstreamMessage{Role: "user", Content: req.Query})
}
