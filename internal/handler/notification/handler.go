package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/sitehub-api/internal/handler"
	"github.com/jwalitptl/sitehub-api/internal/middleware"
	"github.com/jwalitptl/sitehub-api/internal/model"
	notificationService "github.com/jwalitptl/sitehub-api/internal/service/notification"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

type Handler struct {
	service notificationService.Service
}

func NewHandler(service notificationService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/badge", h.Badge)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.DELETE("/:id", h.Remove)
	}
}

func (h *Handler) List(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	var filter notificationService.Filter
	if raw := c.Query("unread"); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			handler.RespondError(c, apperrors.BadRequest("invalid unread flag", err))
			return
		}
		filter.UnreadOnly = unread
	}
	if raw := c.Query("category"); raw != "" {
		category, err := model.ParseNotificationCategory(raw)
		if err != nil {
			handler.RespondError(c, apperrors.BadRequest(err.Error(), err))
			return
		}
		filter.Category = category
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.List(c.Request.Context(), viewer, filter)))
}

func (h *Handler) Badge(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Badge(c.Request.Context(), viewer)))
}

func (h *Handler) MarkRead(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	view, err := h.service.MarkRead(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.MarkAllRead(c.Request.Context(), viewer)))
}

// Remove is idempotent, an unknown id still answers 200.
func (h *Handler) Remove(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Remove(c.Request.Context(), viewer, c.Param("id"))))
}
