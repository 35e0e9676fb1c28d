package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/movie-roulette/internal/pkg/errors"
)

// ErrorBody is the JSON body of every failed API call
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes data as the response body with status 200
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusOK, data)
}

// Error writes an {"error": message} body
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// HandleError maps err to its HTTP status and message.
// Server-side failures only expose their code message; upstream details stay
// in the log through c.Error. A configuration error shows its details as-is.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := apperrors.ExtractCode(err)
	httpStatus := apperrors.GetHTTPStatus(code)

	message := apperrors.GetMessage(code)
	switch {
	case code == apperrors.ErrConfiguration:
		if details := apperrors.GetDetails(err); details != "" {
			message = details
		}
	case !apperrors.IsServerError(code):
		message = apperrors.FormatError(code, apperrors.GetDetails(err))
	}

	_ = c.Error(err)
	Error(c, httpStatus, message)
}

// ErrorWithCode writes the response for a bare error code
func ErrorWithCode(c *gin.Context, code int, details ...string) {
	Error(c, apperrors.GetHTTPStatus(code), apperrors.FormatError(code, details...))
}
