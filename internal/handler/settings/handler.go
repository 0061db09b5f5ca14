package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/resumehub/notify-api/internal/middleware"
	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/service/settings"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/httputil"
)

// Handler exposes the per-user notification settings endpoints
type Handler struct {
	service settings.Service
}

func NewHandler(service settings.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/user/notification-settings", h.Get)
	r.PUT("/user/notification-settings", h.Update)
	// Kept for clients that still update via POST
	r.POST("/user/notification-settings", h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated(nil))
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) Update(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated(nil))
		return
	}

	var req model.UpdateNotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, result)
}
