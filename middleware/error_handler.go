package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/NomadCrew/pett-server/errors"
	"github.com/NomadCrew/pett-server/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body rendered for failed requests.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code"`
}

// ErrorHandler renders the last error attached to the context.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appError *errors.AppError
		if ae, ok := err.(*errors.AppError); ok {
			appError = ae
		} else {
			appError = errors.Wrap(err, errors.ServerError, "Internal Server Error")
		}

		renderError(c, err, appError)
	}
}

// RecoveryHandler turns a panic in a later handler into a 500 response in
// the same JSON shape as ErrorHandler.
func RecoveryHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		appError := errors.InternalServerError("Internal Server Error")
		appError.Detail = fmt.Sprint(recovered)
		renderError(c, appError, appError)
		c.Abort()
	})
}

func renderError(c *gin.Context, err error, appError *errors.AppError) {
	statusCode := appError.GetHTTPStatus()
	logger.LogHTTPError(c, err, statusCode, string(appError.Type)+" error")

	response := ErrorResponse{
		Type:    string(appError.Type),
		Message: appError.Message,
		Code:    strconv.Itoa(statusCode),
	}
	// Details of server errors are only exposed while debugging.
	if appError.Detail != "" && (statusCode < http.StatusInternalServerError || gin.IsDebugging()) {
		response.Details = appError.Detail
	}

	c.JSON(statusCode, response)
}

// NotFoundHandler turns unmatched requests into a not-found error.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(errors.RouteNotFound(c.Request.Method, c.Request.URL.Path))
	}
}
