package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a business owner using the product. The webhook pipeline
// resolves the single account from this table; multi-tenant resolution
// would need an owner in the payload instead.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceSequence backs the per-account invoice number allocator. The row
// is read and incremented under a row lock so concurrent allocations for
// the same account never hand out the same number.
type InvoiceSequence struct {
	AccountID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	NextNumber int64
}
