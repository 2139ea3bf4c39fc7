package activity

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/sitehub-api/internal/handler"
	"github.com/jwalitptl/sitehub-api/internal/middleware"
	"github.com/jwalitptl/sitehub-api/internal/model"
)

// Recent lists a user's latest activity.
type Recent interface {
	Recent(userID string) []model.ActivityEvent
}

type Handler struct {
	feed Recent
}

func NewHandler(feed Recent) *Handler {
	return &Handler{feed: feed}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/activity", h.List)
}

func (h *Handler) List(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.feed.Recent(viewer.UserID)))
}
