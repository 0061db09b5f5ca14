package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/service/notification"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/httputil"
)

// Handler exposes the direct notification-trigger endpoints.
// All routes here are registered behind admin authorization.
type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	n := r.Group("/notifications")
	{
		n.POST("/application-status", h.ApplicationStatus)
		n.POST("/interview-scheduled", h.InterviewScheduled)
		n.POST("/job-posting", h.JobPosting)
	}
}

func (h *Handler) ApplicationStatus(c *gin.Context) {
	var req model.NotifyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.NotifyStatusChanged(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) InterviewScheduled(c *gin.Context) {
	var req model.NotifyInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.NotifyInterviewScheduled(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) JobPosting(c *gin.Context) {
	var req model.NotifyJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	result, err := h.service.NotifyJobPosting(c.Request.Context(), req.JobID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"recipient_count": result.Attempted(),
		"delivered_count": result.Delivered(),
		"failed_count":    result.Failed(),
	})
}
