// Package numbering issues invoice numbers that are unique and gapless per
// account. The counter lives in a per-account sequence row that is read and
// incremented inside one transaction under a row lock, so concurrent
// allocations for the same account are serialized by the database.
package numbering

import (
	"fmt"
	"time"

	"bookkeeping-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceStore hands out the next counter value for an account,
// incrementing it as a single atomic step.
type SequenceStore interface {
	Next(accountID uuid.UUID) (int64, error)
}

type Allocator struct {
	store SequenceStore
	now   func() time.Time
}

func NewAllocator(db *gorm.DB) *Allocator {
	return &Allocator{store: &gormSequenceStore{db: db}, now: time.Now}
}

// Allocate returns the next invoice number for the account, e.g. "F2026-0007".
func (a *Allocator) Allocate(accountID uuid.UUID) (string, error) {
	n, err := a.store.Next(accountID)
	if err != nil {
		return "", err
	}
	return formatNumber(a.now().Year(), n), nil
}

func formatNumber(year int, n int64) string {
	return fmt.Sprintf("F%d-%04d", year, n)
}

type gormSequenceStore struct {
	db *gorm.DB
}

func (s *gormSequenceStore) Next(accountID uuid.UUID) (int64, error) {
	var n int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var seq models.InvoiceSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ?", accountID).
			First(&seq).Error
		if err == gorm.ErrRecordNotFound {
			seq = models.InvoiceSequence{AccountID: accountID, NextNumber: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		n = seq.NextNumber

		return tx.Model(&models.InvoiceSequence{}).
			Where("account_id = ?", accountID).
			Update("next_number", seq.NextNumber+1).Error
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
