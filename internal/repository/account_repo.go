package repository

import (
	"bookkeeping-backend/internal/models"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// ListAll returns every account. The webhook pipeline uses this as its
// directory lookup; only the single-account case is a success path there.
func (r *AccountRepository) ListAll() ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Order("created_at ASC").Find(&accounts).Error
	return accounts, err
}
