package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/sitehub-api/internal/handler"
	"github.com/jwalitptl/sitehub-api/internal/middleware"
	chatService "github.com/jwalitptl/sitehub-api/internal/service/chat"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

type Handler struct {
	service chatService.Service
}

func NewHandler(service chatService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/projects/:id/chat")
	{
		chat.GET("", h.Thread)
		chat.GET("/unread", h.Unread)
		chat.POST("/messages", h.Send)
		chat.POST("/read", h.MarkRead)
	}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) Thread(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	thread, err := h.service.Thread(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(thread))
}

func (h *Handler) Unread(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	b, err := h.service.Unread(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(b))
}

func (h *Handler) Send(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest("message content is required", err))
		return
	}

	res, err := h.service.Send(c.Request.Context(), viewer, c.Param("id"), req.Content)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(res))
}

func (h *Handler) MarkRead(c *gin.Context) {
	viewer, _ := middleware.ViewerFrom(c)

	thread, err := h.service.MarkRead(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(thread))
}
