package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeadlineKindIncomeTax = "income_tax"
	DeadlineKindVATReturn = "vat_return"
)

// TaxDeadline is a statutory filing deadline for one fiscal year. Rows are
// generated lazily on first view of a year and never regenerated; the only
// mutation afterwards is the one-way acknowledgment. The composite unique
// index collapses racing generation attempts into no-ops.
type TaxDeadline struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"uniqueIndex:idx_deadline_key" json:"account_id"`
	Year      int       `gorm:"uniqueIndex:idx_deadline_key" json:"year"`
	Kind      string    `gorm:"uniqueIndex:idx_deadline_key" json:"kind"`
	// Period is 0 for the annual income tax deadline and 1..4 for the
	// quarterly VAT returns.
	Period int `gorm:"uniqueIndex:idx_deadline_key" json:"period"`

	Name           string     `json:"name"`
	DueDate        time.Time  `json:"due_date"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	CreatedAt      time.Time  `json:"created_at"`
}
