package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError answers with the status carried by err and records err on
// the context for the error middleware. Internal details are not exposed.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := apperrors.HTTPStatus(err)
	appErr, ok := apperrors.As(err)
	if !ok || status >= http.StatusInternalServerError {
		message := "internal server error"
		if ok {
			message = appErr.Message
		}
		c.AbortWithStatusJSON(status, NewErrorResponse(message))
		return
	}

	resp := NewErrorResponse(appErr.Message)
	resp.Errors = appErr.Fields
	c.AbortWithStatusJSON(status, resp)
}
