package application

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resumehub/notify-api/internal/middleware"
	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/service/application"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/httputil"
)

// Handler exposes the admin status-update endpoint
type Handler struct {
	service application.Service
}

func NewHandler(service application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/job-applications/:id/status", h.UpdateStatus)
	r.GET("/job-applications/:id/activity", h.Activity)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid application ID", err))
		return
	}

	actorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated(nil))
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	app, err := h.service.UpdateStatus(c.Request.Context(), actorID, applicationID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"application": app})
}

func (h *Handler) Activity(c *gin.Context) {
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid application ID", err))
		return
	}

	entries, err := h.service.Activity(c.Request.Context(), applicationID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"activity": entries})
}
