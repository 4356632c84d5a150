package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookkeeping-backend/internal/models"
	"bookkeeping-backend/internal/services/deadlines"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDeadlineService struct {
	items   []deadlines.DeadlineWithStatus
	acked   *deadlines.DeadlineWithStatus
	ackErr  error
	listErr error
}

func (f *fakeDeadlineService) List(accountID uuid.UUID, year int) ([]deadlines.DeadlineWithStatus, error) {
	return f.items, f.listErr
}

func (f *fakeDeadlineService) Acknowledge(accountID, deadlineID uuid.UUID) (*deadlines.DeadlineWithStatus, error) {
	return f.acked, f.ackErr
}

type fakeAccounts struct {
	accounts []models.Account
}

func (f *fakeAccounts) ListAll() ([]models.Account, error) {
	return f.accounts, nil
}

func newDeadlineRouter(svc DeadlineService, dir AccountDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDeadlineHandler(svc, dir)
	r.GET("/api/deadlines/:year", h.List)
	r.POST("/api/deadlines/:id/acknowledge", h.Acknowledge)
	return r
}

func singleAccount() *fakeAccounts {
	return &fakeAccounts{accounts: []models.Account{{ID: uuid.New(), Name: "Jansen"}}}
}

func TestDeadlineList(t *testing.T) {
	svc := &fakeDeadlineService{items: []deadlines.DeadlineWithStatus{
		{Status: deadlines.StatusOverdue},
		{Status: deadlines.StatusUpcoming},
	}}
	r := newDeadlineRouter(svc, singleAccount())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/deadlines/2025", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"grouped"`)
}

func TestDeadlineListBadYear(t *testing.T) {
	r := newDeadlineRouter(&fakeDeadlineService{}, singleAccount())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/deadlines/later", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeadlineListNoAccount(t *testing.T) {
	r := newDeadlineRouter(&fakeDeadlineService{}, &fakeAccounts{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/deadlines/2025", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeadlineAcknowledge(t *testing.T) {
	svc := &fakeDeadlineService{acked: &deadlines.DeadlineWithStatus{Status: deadlines.StatusAcknowledged}}
	r := newDeadlineRouter(svc, singleAccount())

	url := fmt.Sprintf("/api/deadlines/%s/acknowledge", uuid.New())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "acknowledged")
}

func TestDeadlineAcknowledgeNotFound(t *testing.T) {
	svc := &fakeDeadlineService{ackErr: gorm.ErrRecordNotFound}
	r := newDeadlineRouter(svc, singleAccount())

	url := fmt.Sprintf("/api/deadlines/%s/acknowledge", uuid.New())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeadlineAcknowledgeBadID(t *testing.T) {
	r := newDeadlineRouter(&fakeDeadlineService{}, singleAccount())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/deadlines/not-a-uuid/acknowledge", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
