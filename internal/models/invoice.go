package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	InvoiceStatusDraft = "draft"

	InvoiceSourceWebhook = "webhook"
	InvoiceSourceManual  = "manual"
)

// DraftInvoice is an invoice record that has been created but not yet sent.
// The number is immutable once issued; status moves through a later workflow.
type DraftInvoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID     uuid.UUID `gorm:"index;uniqueIndex:idx_invoice_account_number;uniqueIndex:idx_invoice_account_idem" json:"account_id"`
	InvoiceNumber string    `gorm:"uniqueIndex:idx_invoice_account_number" json:"invoice_number"`
	Status        string    `gorm:"index" json:"status"`
	Source        string    `gorm:"index" json:"source"`

	ClientName   string    `json:"client_name"`
	InvoiceDate  time.Time `json:"invoice_date"`
	DueDate      time.Time `json:"due_date"`
	PaymentTerms string    `json:"payment_terms"`

	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	VATAmount    decimal.Decimal `gorm:"type:numeric(12,2)" json:"vat_amount"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	VATRate      int             `json:"vat_rate"`
	VATTreatment string          `json:"vat_treatment"`

	Note string `json:"note"`

	// IdempotencyKey deduplicates webhook retries, unique per account when
	// set. Nullable so manual invoices and keyless webhooks are not
	// constrained.
	IdempotencyKey *string `gorm:"uniqueIndex:idx_invoice_account_idem" json:"-"`

	// RawPayload keeps the original webhook body for diagnostics.
	RawPayload datatypes.JSON `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
