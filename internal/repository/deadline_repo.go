package repository

import (
	"bookkeeping-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeadlineRepository struct {
	db *gorm.DB
}

func NewDeadlineRepository(db *gorm.DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

// CountByAccountYear reports how many deadline rows exist for the year.
func (r *DeadlineRepository) CountByAccountYear(accountID uuid.UUID, year int) (int64, error) {
	var n int64
	err := r.db.Model(&models.TaxDeadline{}).
		Where("account_id = ? AND year = ?", accountID, year).
		Count(&n).Error
	return n, err
}

// InsertIgnoreDuplicates creates the given rows, silently skipping any that
// collide on (account, year, kind, period). Racing first-visits to a year
// both attempt generation; the constraint collapses the loser to a no-op.
func (r *DeadlineRepository) InsertIgnoreDuplicates(deadlines []models.TaxDeadline) error {
	if len(deadlines) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&deadlines).Error
}

// ListByAccountYear returns the year's deadlines ordered by due date.
func (r *DeadlineRepository) ListByAccountYear(accountID uuid.UUID, year int) ([]models.TaxDeadline, error) {
	var deadlines []models.TaxDeadline
	err := r.db.
		Where("account_id = ? AND year = ?", accountID, year).
		Order("due_date ASC").
		Find(&deadlines).Error
	return deadlines, err
}

// GetByID fetches a single deadline scoped to the account.
func (r *DeadlineRepository) GetByID(accountID, id uuid.UUID) (*models.TaxDeadline, error) {
	var d models.TaxDeadline
	err := r.db.First(&d, "id = ? AND account_id = ?", id, accountID).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Save persists acknowledgment changes.
func (r *DeadlineRepository) Save(d *models.TaxDeadline) error {
	return r.db.Save(d).Error
}
