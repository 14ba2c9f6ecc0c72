package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultRequestID *uuid.UUID
	ExpiresAt       time.Time
}

func (r *IdempotencyRecord) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
