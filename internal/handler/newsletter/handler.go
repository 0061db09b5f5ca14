package newsletter

import (
	"github.com/gin-gonic/gin"

	"github.com/resumehub/notify-api/internal/model"
	"github.com/resumehub/notify-api/internal/service/newsletter"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
	"github.com/resumehub/notify-api/pkg/httputil"
)

type Handler struct {
	service newsletter.Service
}

func NewHandler(service newsletter.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the admin-only send endpoint
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/newsletters/send", h.Send)
}

// RegisterPublicRoutes registers the tokenized unsubscribe endpoint,
// reachable without a session
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/newsletters/unsubscribe/:token", h.Unsubscribe)
}

func (h *Handler) Send(c *gin.Context) {
	var req model.SendNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	result, err := h.service.Send(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if req.IsTest {
		httputil.RespondWithSuccess(c, gin.H{"message": "test newsletter sent to " + req.TestEmail})
		return
	}

	// A real send creates the newsletter record
	httputil.RespondWithCreated(c, result)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("token is required", nil))
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), token); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "you have been unsubscribed from newsletters"})
}
