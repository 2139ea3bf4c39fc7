package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SizeLimitConfig represents size limit configuration
type SizeLimitConfig struct {
	MaxBodySize   int64 // in bytes
	MaxHeaderSize int   // in bytes
}

func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodySize:   256 << 10, // 256KB
		MaxHeaderSize: 1 << 14,   // 16KB
	}
}

// SizeLimit rejects oversized requests and caps body reads at MaxBodySize
// when no Content-Length was sent.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.MaxBodySize > 0 && c.Request.ContentLength > config.MaxBodySize {
			abortTooLarge(c, fmt.Sprintf("body size exceeds %d bytes", config.MaxBodySize))
			return
		}

		if config.MaxHeaderSize > 0 {
			headerSize := 0
			for name, values := range c.Request.Header {
				headerSize += len(name)
				for _, value := range values {
					headerSize += len(value)
				}
			}
			if headerSize > config.MaxHeaderSize {
				abortTooLarge(c, fmt.Sprintf("header size exceeds %d bytes", config.MaxHeaderSize))
				return
			}
		}

		if config.MaxBodySize > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxBodySize)
		}
		c.Next()
	}
}

func abortTooLarge(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Code:    http.StatusRequestEntityTooLarge,
		Message: msg,
		TraceID: c.GetString(ContextRequestID),
	})
}
