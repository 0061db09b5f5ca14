package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/service/notification"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
)

type fakeService struct {
	statusCalls    int
	interviewCalls int
	jobCalls       int
	err            error
	batch          notification.BatchResult
}

func (s *fakeService) NotifyStatusChanged(_ context.Context, _ *model.NotifyStatusRequest) error {
	s.statusCalls++
	return s.err
}

func (s *fakeService) NotifyInterviewScheduled(_ context.Context, _ *model.NotifyInterviewRequest) error {
	s.interviewCalls++
	return s.err
}

func (s *fakeService) NotifyJobPosting(_ context.Context, _ uuid.UUID) (notification.BatchResult, error) {
	s.jobCalls++
	return s.batch, s.err
}

func setupRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApplicationStatusMissingFieldsReturns400(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := postJSON(t, r, "/api/v1/notifications/application-status", gin.H{"status": "accepted"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.statusCalls, "service must not be called on invalid input")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestApplicationStatusSuccess(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := postJSON(t, r, "/api/v1/notifications/application-status", gin.H{
		"application_id": uuid.New().String(),
		"status":         "accepted",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.statusCalls)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
}

func TestApplicationStatusNotFound(t *testing.T) {
	svc := &fakeService{err: apperrors.NotFound("application", nil)}
	r := setupRouter(svc)

	w := postJSON(t, r, "/api/v1/notifications/application-status", gin.H{
		"application_id": uuid.New().String(),
		"status":         "accepted",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInterviewScheduledMissingDetailsReturns400(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := postJSON(t, r, "/api/v1/notifications/interview-scheduled", gin.H{
		"application_id": uuid.New().String(),
		"interview":      gin.H{"date": "2026-09-15"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.interviewCalls)
}

func TestJobPostingReturnsCounts(t *testing.T) {
	svc := &fakeService{
		batch: notification.BatchResult{Outcomes: []notification.Outcome{
			{Recipient: notification.Recipient{Email: "a@x.com"}},
			{Recipient: notification.Recipient{Email: "b@x.com"}, Err: assert.AnError},
		}},
	}
	r := setupRouter(svc)

	w := postJSON(t, r, "/api/v1/notifications/job-posting", gin.H{"job_id": uuid.New().String()})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			RecipientCount int `json:"recipient_count"`
			DeliveredCount int `json:"delivered_count"`
			FailedCount    int `json:"failed_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.RecipientCount)
	assert.Equal(t, 1, resp.Data.DeliveredCount)
	assert.Equal(t, 1, resp.Data.FailedCount)
}
