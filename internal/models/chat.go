package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ai-chat-backend/internal/stream"
)

// SearchResult mirrors the citation shape stored in chat responses.
type SearchResult = stream.SearchResult

// ChatRequest is the body of POST /chats.
type ChatRequest struct {
	Email       string     `json:"email"`
	Query       string     `json:"query"`
	Application string     `json:"application"`
	DeviceType  DeviceType `json:"device_type"`
	ThreadID    *uuid.UUID `json:"thread_id"`
}

// Chat is one persisted exchange. Response holds the merged transcript (or,
// for rows written before event streaming, a legacy answer object) verbatim.
type Chat struct {
	ID        uuid.UUID       `json:"id"`
	ThreadID  uuid.UUID       `json:"thread_id"`
	Question  string          `json:"question"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AnswerKind discriminates the two response column shapes.
type AnswerKind int

const (
	// AnswerEvents is the current shape: a merged event sequence.
	AnswerEvents AnswerKind = iota
	// AnswerLegacy is the historical shape: {"answer": ..., "search_results": [...]}.
	AnswerLegacy
)

// AnswerRecord is the decoded response column, classified exactly once at
// read time so callers never branch on raw JSON shape.
type AnswerRecord struct {
	Kind          AnswerKind
	Answer        string
	SearchResults []SearchResult
	Events        []stream.Event
}

type legacyAnswer struct {
	Answer        string         `json:"answer"`
	SearchResults []SearchResult `json:"search_results"`
}

// DecodeAnswerRecord classifies a stored response column. A JSON array is an
// event sequence; a JSON object is a legacy answer; anything else (including
// old rows holding a bare string) is treated as a legacy answer with the
// whole value as its text.
func DecodeAnswerRecord(raw json.RawMessage) AnswerRecord {
	var events []stream.Event
	if err := json.Unmarshal(raw, &events); err == nil {
		rec := AnswerRecord{Kind: AnswerEvents, Events: events}
		for _, ev := range events {
			switch ev.Type {
			case stream.EventToken:
				rec.Answer += ev.Text
			case stream.EventSearchResults:
				rec.SearchResults = append(rec.SearchResults, ev.Results...)
			}
		}
		return rec
	}

	var legacy legacyAnswer
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return AnswerRecord{Kind: AnswerLegacy, Answer: legacy.Answer, SearchResults: legacy.SearchResults}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return AnswerRecord{Kind: AnswerLegacy, Answer: text}
	}
	return AnswerRecord{Kind: AnswerLegacy}
}

// UpstreamMessage is one role/content turn sent to the answering service.
type UpstreamMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UpstreamRequest is the body posted to the answering service.
type UpstreamRequest struct {
	Messages []UpstreamMessage `json:"messages"`
}
