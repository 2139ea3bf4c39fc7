package project

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/sitehub-api/internal/export"
	"github.com/jwalitptl/sitehub-api/internal/handler"
	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/service/dashboard"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.GET("/:id/summary", h.Summary)
		projects.GET("/:id/expenses", h.ListExpenses)
		projects.GET("/:id/expenses/export", h.ExportExpenses)
		projects.GET("/:id/contracts", h.ListContracts)
		projects.GET("/:id/minutes", h.ListMinutes)
	}
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(projects))
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.service.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(project))
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

func (h *Handler) ListExpenses(c *gin.Context) {
	filter, err := expenseFilter(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	expenses, err := h.service.ListExpenses(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(expenses))
}

func (h *Handler) ExportExpenses(c *gin.Context) {
	filter, err := expenseFilter(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	ctx := c.Request.Context()
	project, err := h.service.GetProject(ctx, c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	expenses, err := h.service.ListExpenses(ctx, project.ID, filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteExpenses(&buf, project, expenses); err != nil {
		handler.RespondError(c, apperrors.Internal("failed to export expenses", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ExpenseFilename(project)))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) ListContracts(c *gin.Context) {
	var status model.ContractStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := model.ParseContractStatus(raw)
		if err != nil {
			handler.RespondError(c, apperrors.BadRequest(err.Error(), err))
			return
		}
		status = parsed
	}

	contracts, err := h.service.ListContracts(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(contracts))
}

func (h *Handler) ListMinutes(c *gin.Context) {
	minutes, err := h.service.ListMinutes(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(minutes))
}

func expenseFilter(c *gin.Context) (model.ExpenseFilter, error) {
	var filter model.ExpenseFilter
	if raw := c.Query("category"); raw != "" {
		category, err := model.ParseExpenseCategory(raw)
		if err != nil {
			return filter, apperrors.BadRequest(err.Error(), err)
		}
		filter.Category = category
	}
	if raw := c.Query("status"); raw != "" {
		status, err := model.ParseExpenseStatus(raw)
		if err != nil {
			return filter, apperrors.BadRequest(err.Error(), err)
		}
		filter.Status = status
	}
	return filter, nil
}
