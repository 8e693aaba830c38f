package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides identity and timestamp bookkeeping for all
// domain entities.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a base entity with a freshly generated ID.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
