package settings

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

	"github.com/resumehub/notify-api/internal/middleware"
	"github.com/resumehub/notify-api/internal/model"
)

type fakeService struct {
	rows map[uuid.UUID]*model.NotificationSettings
}

func (s *fakeService) Get(_ context.Context, userID uuid.UUID) (*model.NotificationSettings, error) {
	if row, ok := s.rows[userID]; ok {
		return row, nil
	}
	return model.DefaultNotificationSettings(userID), nil
}

func (s *fakeService) Update(_ context.Context, userID uuid.UUID, req *model.UpdateNotificationSettingsRequest) (*model.NotificationSettings, error) {
	row := &model.NotificationSettings{
		UserID:             userID,
		Newsletters:        *req.Newsletters,
		JobPostings:        *req.JobPostings,
		ApplicationUpdates: *req.ApplicationUpdates,
		DocumentSharing:    *req.DocumentSharing,
		Reminders:          *req.Reminders,
	}
	s.rows[userID] = row
	return row, nil
}

func setupRouter(svc *fakeService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID.String())
	})
	NewHandler(svc).RegisterRoutes(group)
	return r
}

func TestGetReturnsDefaults(t *testing.T) {
	userID := uuid.New()
	r := setupRouter(&fakeService{rows: map[uuid.UUID]*model.NotificationSettings{}}, userID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user/notification-settings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                        `json:"success"`
		Data    *model.NotificationSettings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Newsletters)
	assert.True(t, resp.Data.Reminders)
}

func TestUpdateMissingFlagReturns400(t *testing.T) {
	userID := uuid.New()
	svc := &fakeService{rows: map[uuid.UUID]*model.NotificationSettings{}}
	r := setupRouter(svc, userID)

	// reminders is absent: a partial body must not flip flags silently
	body := []byte(`{"newsletters":true,"job_postings":true,"application_updates":true,"document_sharing":true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/user/notification-settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.rows)
}

func TestUpdatePersists(t *testing.T) {
	userID := uuid.New()
	svc := &fakeService{rows: map[uuid.UUID]*model.NotificationSettings{}}
	r := setupRouter(svc, userID)

	body := []byte(`{"newsletters":false,"job_postings":true,"application_updates":true,"document_sharing":true,"reminders":false}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/user/notification-settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	stored := svc.rows[userID]
	require.NotNil(t, stored)
	assert.False(t, stored.Newsletters)
	assert.False(t, stored.Reminders)
	assert.True(t, stored.JobPostings)
}

func TestUpdateViaPostAlias(t *testing.T) {
	userID := uuid.New()
	svc := &fakeService{rows: map[uuid.UUID]*model.NotificationSettings{}}
	r := setupRouter(svc, userID)

	body := []byte(`{"newsletters":false,"job_postings":false,"application_updates":true,"document_sharing":true,"reminders":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/notification-settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.rows[userID])
	assert.False(t, svc.rows[userID].JobPostings)
}

func TestMissingUserContextReturns401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(&fakeService{rows: map[uuid.UUID]*model.NotificationSettings{}}).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user/notification-settings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
