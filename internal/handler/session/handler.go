package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/sitehub-api/internal/handler"
	"github.com/jwalitptl/sitehub-api/internal/middleware"
	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/service/activity"
)

// Ender tears down a viewer session.
type Ender interface {
	End(viewer model.Viewer) bool
}

type Handler struct {
	sessions  Ender
	publisher activity.Publisher
}

func NewHandler(sessions Ender, publisher activity.Publisher) *Handler {
	return &Handler{sessions: sessions, publisher: publisher}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.DELETE("/session", h.End)
}

func (h *Handler) End(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	ended := h.sessions.End(viewer)
	if ended && h.publisher != nil {
		event := activity.For(viewer, model.ActivitySessionEnded)
		if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
			log.Warn().Err(err).Str("user_id", viewer.UserID).Msg("failed to publish session end")
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"ended": ended}))
}
