package form

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/sitehub-api/internal/handler"
	"github.com/jwalitptl/sitehub-api/internal/middleware"
	"github.com/jwalitptl/sitehub-api/internal/service/submission"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

type Handler struct {
	service submission.Service
}

func NewHandler(service submission.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	forms := r.Group("/forms")
	{
		forms.POST("/expenses", h.SubmitExpense)
		forms.POST("/contracts", h.SubmitContract)
		forms.POST("/minutes", h.SubmitMinute)
	}
}

func (h *Handler) SubmitExpense(c *gin.Context) {
	var f submission.ExpenseForm
	h.submit(c, &f, func() submission.Form { return f })
}

func (h *Handler) SubmitContract(c *gin.Context) {
	var f submission.ContractForm
	h.submit(c, &f, func() submission.Form { return f })
}

func (h *Handler) SubmitMinute(c *gin.Context) {
	var f submission.MinuteForm
	h.submit(c, &f, func() submission.Form { return f })
}

// submit decodes into dst and hands the decoded form to the service.
// Field validation belongs to the service, so binding only decodes.
func (h *Handler) submit(c *gin.Context, dst interface{}, form func() submission.Form) {
	if err := c.ShouldBindJSON(dst); err != nil {
		handler.RespondError(c, apperrors.BadRequest("malformed form body", err))
		return
	}

	viewer, _ := middleware.ViewerFrom(c)
	receipt, err := h.service.Submit(c.Request.Context(), viewer, form())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, handler.NewSuccessResponse(receipt))
}
