// Package ingestion turns an untrusted webhook notification into a draft
// invoice. The pipeline is strictly sequential: validate, resolve the owning
// account, allocate a number, normalize amount and date, persist. Every step
// up to persistence fails fast with no partial writes; only date parsing
// degrades gracefully.
package ingestion

import (
	"time"

	"bookkeeping-backend/internal/logger"
	"bookkeeping-backend/internal/models"
	"bookkeeping-backend/internal/vat"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

// PaymentTerms is the fixed terms line stamped on every ingested invoice.
const PaymentTerms = "Betaling binnen 14 dagen"

// DueDays is how far past the invoice date the payment falls due.
const DueDays = 14

// DefaultRate applies to every ingested amount; notifications carry no rate.
const DefaultRate = vat.RateStandard

// Directory lists candidate owning accounts. Only the single-candidate case
// is a success path; the payload carries no owner of its own.
type Directory interface {
	ListAll() ([]models.Account, error)
}

// NumberAllocator issues the next invoice number for an account. It must be
// safe under concurrent callers; the pipeline does not serialize calls.
type NumberAllocator interface {
	Allocate(accountID uuid.UUID) (string, error)
}

// InvoiceStore persists draft invoices and answers idempotency lookups.
type InvoiceStore interface {
	Create(inv *models.DraftInvoice) error
	FindByIdempotencyKey(accountID uuid.UUID, key string) (*models.DraftInvoice, error)
}

// Notification is the normalized inbound payload. Amount is optional and
// arrives as free text.
type Notification struct {
	Sender  string
	Subject string
	Date    string
	Amount  string
}

type Service struct {
	directory Directory
	allocator NumberAllocator
	invoices  InvoiceStore
	now       func() time.Time
	log       zerolog.Logger
}

func NewService(directory Directory, allocator NumberAllocator, invoices InvoiceStore) *Service {
	return &Service{
		directory: directory,
		allocator: allocator,
		invoices:  invoices,
		now:       time.Now,
		log:       logger.WithComponent("ingestion"),
	}
}

// Ingest runs the pipeline for one notification. idemKey may be empty;
// when set, a repeated key returns the previously created invoice and the
// replayed flag instead of inserting a duplicate. raw is the original
// request body, kept on the row for diagnostics.
func (s *Service) Ingest(n Notification, idemKey string, raw []byte) (inv *models.DraftInvoice, replayed bool, err error) {
	// Required fields, reported together.
	var missing []string
	if n.Sender == "" {
		missing = append(missing, "sender")
	}
	if n.Subject == "" {
		missing = append(missing, "subject")
	}
	if n.Date == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, false, &ValidationError{Fields: missing}
	}

	account, err := s.resolveOwner()
	if err != nil {
		return nil, false, err
	}

	if idemKey != "" {
		existing, err := s.invoices.FindByIdempotencyKey(account.ID, idemKey)
		if err != nil {
			return nil, false, &DependencyError{Op: "idempotency lookup", Err: err}
		}
		if existing != nil {
			s.log.Info().
				Str("invoice_number", existing.InvoiceNumber).
				Str("idempotency_key", idemKey).
				Msg("replaying previously ingested notification")
			return existing, true, nil
		}
	}

	number, err := s.allocator.Allocate(account.ID)
	if err != nil {
		return nil, false, &DependencyError{Op: "invoice number allocation", Err: err}
	}

	amount := NormalizeAmount(n.Amount)
	breakdown := vat.Split(amount, DefaultRate, vat.TreatmentDomestic)

	invoiceDate, ok := ParseInvoiceDate(n.Date)
	if !ok {
		// Soft failure: fall back to today and continue.
		invoiceDate = s.now()
		s.log.Warn().
			Str("date", n.Date).
			Msg("unparsable invoice date, falling back to current date")
	}

	invoice := &models.DraftInvoice{
		ID:            uuid.New(),
		AccountID:     account.ID,
		InvoiceNumber: number,
		Status:        models.InvoiceStatusDraft,
		Source:        models.InvoiceSourceWebhook,
		ClientName:    n.Sender,
		InvoiceDate:   invoiceDate,
		DueDate:       invoiceDate.AddDate(0, 0, DueDays),
		PaymentTerms:  PaymentTerms,
		Subtotal:      breakdown.Excl.Round(2),
		VATAmount:     breakdown.VAT.Round(2),
		Total:         amount.Round(2),
		VATRate:       int(DefaultRate),
		VATTreatment:  string(vat.TreatmentDomestic),
		Note:          n.Subject,
		RawPayload:    datatypes.JSON(raw),
		CreatedAt:     s.now(),
	}
	if idemKey != "" {
		invoice.IdempotencyKey = &idemKey
	}

	if err := s.invoices.Create(invoice); err != nil {
		return nil, false, &DependencyError{Op: "invoice persistence", Err: err}
	}

	s.log.Info().
		Str("invoice_id", invoice.ID.String()).
		Str("invoice_number", invoice.InvoiceNumber).
		Str("client", invoice.ClientName).
		Msg("draft invoice created from webhook")

	return invoice, false, nil
}

// resolveOwner scans the directory for the single eligible account. Zero or
// ambiguous results are dependency failures; a multi-tenant deployment
// would carry the owner in the payload instead.
func (s *Service) resolveOwner() (*models.Account, error) {
	accounts, err := s.directory.ListAll()
	if err != nil {
		return nil, &DependencyError{Op: "account lookup", Err: err}
	}
	switch len(accounts) {
	case 0:
		return nil, &DependencyError{Op: "account lookup", Err: errNoAccounts}
	case 1:
		return &accounts[0], nil
	default:
		s.log.Warn().Int("count", len(accounts)).Msg("multiple accounts found, webhook owner is ambiguous")
		return nil, &DependencyError{Op: "account lookup", Err: errAmbiguousAccounts}
	}
}
