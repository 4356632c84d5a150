// Package deadlines derives and tracks statutory tax deadlines per fiscal
// year: one annual income tax filing and four quarterly VAT returns. Rows
// are generated lazily on first view of a year and mutated only by the
// one-way acknowledge operation.
package deadlines

import (
	"fmt"
	"time"

	"bookkeeping-backend/internal/logger"
	"bookkeeping-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Status is derived at read time, never persisted.
type Status string

const (
	StatusOverdue      Status = "overdue"
	StatusUpcoming     Status = "upcoming"
	StatusAcknowledged Status = "acknowledged"
)

// DeadlineWithStatus pairs a stored deadline with its live status.
type DeadlineWithStatus struct {
	models.TaxDeadline
	Status    Status `json:"status"`
	DaysUntil int    `json:"days_until"`
}

// Grouped is the presentation partition of a year's deadlines. An
// acknowledged deadline never lands in the overdue bucket, even when its
// due date has passed.
type Grouped struct {
	Overdue      []DeadlineWithStatus `json:"overdue"`
	Upcoming     []DeadlineWithStatus `json:"upcoming"`
	Acknowledged []DeadlineWithStatus `json:"acknowledged"`
}

// Store is the persistence surface the engine needs.
type Store interface {
	CountByAccountYear(accountID uuid.UUID, year int) (int64, error)
	InsertIgnoreDuplicates(deadlines []models.TaxDeadline) error
	ListByAccountYear(accountID uuid.UUID, year int) ([]models.TaxDeadline, error)
	GetByID(accountID, id uuid.UUID) (*models.TaxDeadline, error)
	Save(d *models.TaxDeadline) error
}

type Service struct {
	store Store
	now   func() time.Time
	log   zerolog.Logger
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		log:   logger.WithComponent("deadlines"),
	}
}

// statutoryDeadlines builds the five rows for a fiscal year. Income tax is
// due 1 May of the following year; each VAT return is due on the last day
// of the month following its quarter.
func statutoryDeadlines(accountID uuid.UUID, year int, now time.Time) []models.TaxDeadline {
	rows := []models.TaxDeadline{
		{
			ID:        uuid.New(),
			AccountID: accountID,
			Year:      year,
			Kind:      models.DeadlineKindIncomeTax,
			Period:    0,
			Name:      fmt.Sprintf("Aangifte inkomstenbelasting %d", year),
			DueDate:   time.Date(year+1, time.May, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt: now,
		},
	}

	quarterDue := []time.Time{
		time.Date(year, time.April, 30, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.July, 31, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.October, 31, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
	for q, due := range quarterDue {
		rows = append(rows, models.TaxDeadline{
			ID:        uuid.New(),
			AccountID: accountID,
			Year:      year,
			Kind:      models.DeadlineKindVATReturn,
			Period:    q + 1,
			Name:      fmt.Sprintf("BTW-aangifte Q%d %d", q+1, year),
			DueDate:   due,
			CreatedAt: now,
		})
	}
	return rows
}

// List returns the year's deadlines with computed status, generating them
// first if the year has never been viewed. Generation is idempotent: the
// existence check runs first, and racing generators are collapsed by the
// storage uniqueness constraint.
func (s *Service) List(accountID uuid.UUID, year int) ([]DeadlineWithStatus, error) {
	count, err := s.store.CountByAccountYear(accountID, year)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.store.InsertIgnoreDuplicates(statutoryDeadlines(accountID, year, s.now())); err != nil {
			return nil, err
		}
		s.log.Info().Int("year", year).Str("account_id", accountID.String()).Msg("generated deadlines for fiscal year")
	}

	rows, err := s.store.ListByAccountYear(accountID, year)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	out := make([]DeadlineWithStatus, 0, len(rows))
	for _, row := range rows {
		out = append(out, withStatus(row, today))
	}
	return out, nil
}

// Acknowledge marks a deadline as handled. Not-found only when the id does
// not exist for the account; acknowledging twice is a no-op that keeps the
// first timestamp.
func (s *Service) Acknowledge(accountID, deadlineID uuid.UUID) (*DeadlineWithStatus, error) {
	d, err := s.store.GetByID(accountID, deadlineID)
	if err != nil {
		return nil, err
	}

	if !d.Acknowledged {
		ts := s.now()
		d.Acknowledged = true
		d.AcknowledgedAt = &ts
		if err := s.store.Save(d); err != nil {
			return nil, err
		}
	}

	result := withStatus(*d, dateOnly(s.now()))
	return &result, nil
}

// Group partitions deadlines by status for presentation.
func Group(items []DeadlineWithStatus) Grouped {
	var g Grouped
	for _, item := range items {
		switch item.Status {
		case StatusAcknowledged:
			g.Acknowledged = append(g.Acknowledged, item)
		case StatusOverdue:
			g.Overdue = append(g.Overdue, item)
		default:
			g.Upcoming = append(g.Upcoming, item)
		}
	}
	return g
}

func withStatus(d models.TaxDeadline, today time.Time) DeadlineWithStatus {
	due := dateOnly(d.DueDate)
	status := StatusUpcoming
	switch {
	case d.Acknowledged:
		status = StatusAcknowledged
	case due.Before(today):
		status = StatusOverdue
	}
	return DeadlineWithStatus{
		TaxDeadline: d,
		Status:      status,
		DaysUntil:   int(due.Sub(today).Hours() / 24),
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
