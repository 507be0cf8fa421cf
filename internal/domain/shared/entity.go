package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the persistence identity every stored record shares:
// an application-minted uuid key and the audit timestamps. The ID exists
// before the first save, so products, sales and users can be wired into
// cart lines, ledger items and tokens without a database round trip.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity mints the identity for a record about to be created
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
