package models

import (
	"time"

	"github.com/google/uuid"
)

// CachedEvaluation is a durable cache row for an evaluation payload.
// UsageCount starts at 1 and is incremented on every durable read.
type CachedEvaluation struct {
	ID             uuid.UUID `json:"id"`
	CacheKey       string    `json:"cache_key"`
	VideoID        string    `json:"video_id"`
	Payload        []byte    `json:"-"`
	UsageCount     int64     `json:"usage_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}
