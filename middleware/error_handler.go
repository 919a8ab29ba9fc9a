package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivela-brasil/intake-backend/errors"
	"github.com/nivela-brasil/intake-backend/logger"
	"github.com/nivela-brasil/intake-backend/types"
)

// ErrorHandler converts errors attached to the gin context into the JSON error
// envelope. Validation and duplicate-email errors keep their detail for the
// client; everything else is sanitized to a generic message and logged with the
// raw cause server-side. Every code path ends in an HTTP response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, string(appError.Type))

			response := types.ErrorResponse{
				Type:    string(appError.Type),
				Code:    appError.Code,
				Message: appError.Message,
				Fields:  appError.Fields,
			}
			// Detail is only safe on client-fault errors; server faults keep
			// theirs in the logs.
			if statusCode < 500 {
				response.Details = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		// Gin binding errors (malformed JSON bodies) are client faults.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Type:    string(errors.ValidationError),
				Code:    errors.CodeValidationFailed,
				Message: "Failed to parse request body",
			})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Type:    string(errors.ServerError),
			Code:    errors.CodeInternalError,
			Message: "Internal Server Error",
		})
	}
}
