package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookkeeping-backend/internal/models"
	"bookkeeping-backend/internal/services/deadlines"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeadlineService is the slice of the deadline engine the handler uses.
type DeadlineService interface {
	List(accountID uuid.UUID, year int) ([]deadlines.DeadlineWithStatus, error)
	Acknowledge(accountID, deadlineID uuid.UUID) (*deadlines.DeadlineWithStatus, error)
}

// AccountDirectory resolves the owning account, same shortcut as ingestion.
type AccountDirectory interface {
	ListAll() ([]models.Account, error)
}

type DeadlineHandler struct {
	service   DeadlineService
	directory AccountDirectory
}

func NewDeadlineHandler(service DeadlineService, directory AccountDirectory) *DeadlineHandler {
	return &DeadlineHandler{service: service, directory: directory}
}

// List handles GET /api/deadlines/:year.
func (h *DeadlineHandler) List(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	account, ok := h.resolveAccount(c)
	if !ok {
		return
	}

	items, err := h.service.List(account.ID, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deadlines": items,
		"grouped":   deadlines.Group(items),
	})
}

// Acknowledge handles POST /api/deadlines/:id/acknowledge.
func (h *DeadlineHandler) Acknowledge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline ID"})
		return
	}

	account, ok := h.resolveAccount(c)
	if !ok {
		return
	}

	deadline, err := h.service.Acknowledge(account.ID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "deadline not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deadline acknowledged", "deadline": deadline})
}

func (h *DeadlineHandler) resolveAccount(c *gin.Context) (*models.Account, bool) {
	accounts, err := h.directory.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if len(accounts) != 1 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot resolve account"})
		return nil, false
	}
	return &accounts[0], true
}
