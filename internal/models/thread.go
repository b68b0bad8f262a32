package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceType identifies the client surface a thread was started from.
type DeviceType string

const (
	DeviceWeb       DeviceType = "web"
	DeviceMobileApp DeviceType = "mobile_app"
)

func (d DeviceType) Valid() bool {
	return d == DeviceWeb || d == DeviceMobileApp
}

type Thread struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	DeviceType    DeviceType `json:"device_type"`
	ApplicationID *uuid.UUID `json:"application_id"`
	IsDeleted     bool       `json:"is_deleted"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ThreadSummary is one row of the thread list: the title is the first
// question asked on the thread.
type ThreadSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type ThreadListResponse struct {
	Data  []ThreadSummary `json:"data"`
	Total int             `json:"total"`
}

// Message is one side of an exchange as rendered in a thread detail view.
type Message struct {
	ID            uuid.UUID      `json:"id"`
	Role          string         `json:"role"`
	Content       string         `json:"content"`
	SearchResults []SearchResult `json:"searchResults,omitempty"`
}

type ThreadDetail struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}
