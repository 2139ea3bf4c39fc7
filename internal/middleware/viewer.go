package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/sitehub-api/internal/model"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
	ContextViewer  = "viewer"
)

// Viewer reads the caller identity from the X-User-* headers. The values
// are trusted as given; a missing id or an unknown role is rejected.
func Viewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			abortBadViewer(c, HeaderUserID+" header is required")
			return
		}

		role, err := model.ParseRole(c.GetHeader(HeaderUserRole))
		if err != nil {
			abortBadViewer(c, err.Error())
			return
		}

		name := strings.TrimSpace(c.GetHeader(HeaderUserName))
		if name == "" {
			name = userID
		}

		c.Set(ContextViewer, model.Viewer{UserID: userID, Name: name, Role: role})
		c.Next()
	}
}

// ViewerFrom returns the viewer set by the Viewer middleware.
func ViewerFrom(c *gin.Context) (model.Viewer, bool) {
	v, ok := c.Get(ContextViewer)
	if !ok {
		return model.Viewer{}, false
	}
	viewer, ok := v.(model.Viewer)
	return viewer, ok
}

func abortBadViewer(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: msg,
		TraceID: c.GetString(ContextRequestID),
	})
}
