package models

import (
	"time"

	"github.com/google/uuid"
)

// Application is a registered client application; threads belong to one.
type Application struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ApplicationCreateRequest struct {
	Name string `json:"name"`
}
