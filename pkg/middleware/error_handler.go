package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/logging"
)

// APIErrorResponse is the standard error response body
type APIErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"requestId,omitempty"`
}

// APIError holds error details for API responses
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ErrorHandler middleware converts errors attached to the context into responses
func ErrorHandler(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := errors.FromError(err)

		if appErr.HTTPStatus >= 500 {
			logger.WithContext(c.Request.Context()).WithError(err).Error("Request error",
				"code", appErr.Code,
				"path", c.Request.URL.Path,
			)
		}

		respondWithError(c, appErr)
	}
}

// AbortWithAppError aborts the request with an AppError response
func AbortWithAppError(c *gin.Context, appErr *errors.AppError) {
	c.Abort()
	respondWithError(c, appErr)
}

func respondWithError(c *gin.Context, appErr *errors.AppError) {
	if c.Writer.Written() {
		return
	}

	requestID, _ := c.Get("requestID")
	requestIDStr, _ := requestID.(string)

	c.JSON(appErr.HTTPStatus, APIErrorResponse{
		Error: APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
		RequestID: requestIDStr,
	})
}

// ErrorResponder provides helpers for handlers to respond with errors
type ErrorResponder struct {
	logger *logging.Logger
}

// NewErrorResponder creates a new ErrorResponder
func NewErrorResponder(logger *logging.Logger) *ErrorResponder {
	return &ErrorResponder{logger: logger}
}

// Respond converts any error to an AppError response
func (r *ErrorResponder) Respond(c *gin.Context, err error) {
	appErr := errors.MapDomainError(err)

	if appErr.HTTPStatus >= 500 {
		r.logger.WithContext(c.Request.Context()).WithError(err).Error("Handler error",
			"code", appErr.Code,
			"path", c.Request.URL.Path,
		)
	}

	respondWithError(c, appErr)
}

// BadRequest responds with a validation error
func (r *ErrorResponder) BadRequest(c *gin.Context, message string) {
	respondWithError(c, errors.ErrValidation(message))
}
