package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp wraps data in a success envelope.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: CodeOK,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error sends 400 with the error text. A nil data becomes an empty object.
func Error(c *gin.Context, err error, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: CodeBadRequest,
		Message:   err.Error(),
		Data:      data,
	})
}

// InternalError sends 500 without leaking err to the client.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

// Unavailable sends 503, used by readiness probes.
func Unavailable(c *gin.Context, data any) {
	c.JSON(http.StatusServiceUnavailable, Resp{
		ErrorCode: CodeUnavailable,
		Message:   "Service Unavailable",
		Data:      data,
	})
}

func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Resp{
		ErrorCode: CodeUnauthorized,
		Message:   "Unauthorized",
	})
}

func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, Resp{
		ErrorCode: CodeForbidden,
		Message:   "Forbidden",
	})
}

func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{
		ErrorCode: CodeTooManyRequests,
		Message:   "Too Many Requests",
	})
}
