package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"bookkeeping-backend/internal/models"
	"bookkeeping-backend/internal/services/ingestion"

	"github.com/gin-gonic/gin"
)

const (
	secretHeader      = "X-Webhook-Secret"
	idempotencyHeader = "X-Idempotency-Key"
)

// Ingestor runs the webhook pipeline from validation onward.
type Ingestor interface {
	Ingest(n ingestion.Notification, idemKey string, raw []byte) (*models.DraftInvoice, bool, error)
}

type WebhookHandler struct {
	secret  string
	service Ingestor
}

func NewWebhookHandler(secret string, service Ingestor) *WebhookHandler {
	return &WebhookHandler{secret: secret, service: service}
}

// webhookPayload mirrors the inbound notification. Amount may arrive as a
// string or a number; only sender, subject and date are required.
type webhookPayload struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Amount  any    `json:"amount"`
}

// Receive handles POST /api/webhooks/invoice. Authentication is checked
// before the body is touched; a missing server-side secret is a
// configuration failure, a bad credential an authorization failure.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   ingestion.ErrConfiguration.Error(),
		})
		return
	}

	presented := c.GetHeader(secretHeader)
	if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(h.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   ingestion.ErrUnauthorized.Error(),
		})
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "cannot read request body"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed JSON body"})
		return
	}

	invoice, replayed, err := h.service.Ingest(ingestion.Notification{
		Sender:  payload.Sender,
		Subject: payload.Subject,
		Date:    payload.Date,
		Amount:  amountString(payload.Amount),
	}, c.GetHeader(idempotencyHeader), raw)
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"success":        true,
		"invoice_id":     invoice.ID.String(),
		"invoice_number": invoice.InvoiceNumber,
	})
}

// MethodNotAllowed answers every non-POST hit with the fixed failure body.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"success": false,
		"error":   "method not allowed",
	})
}

func errorResponse(err error) (int, gin.H) {
	switch e := err.(type) {
	case *ingestion.ValidationError:
		return http.StatusBadRequest, gin.H{"success": false, "error": e.Error()}
	case *ingestion.DependencyError:
		return http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal failure",
			"details": e.Error(),
		}
	default:
		return http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()}
	}
}

func amountString(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case float64:
		return strconv.FormatFloat(a, 'f', -1, 64)
	default:
		return ""
	}
}
