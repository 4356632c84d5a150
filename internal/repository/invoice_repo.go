package repository

import (
	"bookkeeping-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a single draft invoice row.
func (r *InvoiceRepository) Create(inv *models.DraftInvoice) error {
	return r.db.Create(inv).Error
}

// FindByIdempotencyKey returns the invoice previously created for the key,
// or nil when the key has not been seen.
func (r *InvoiceRepository) FindByIdempotencyKey(accountID uuid.UUID, key string) (*models.DraftInvoice, error) {
	var invoice models.DraftInvoice
	err := r.db.
		Where("account_id = ? AND idempotency_key = ?", accountID, key).
		First(&invoice).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
