package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Error string `json:"error"`
}

// internalErrorMessage is the only message a 500 response ever carries
const internalErrorMessage = "Internal server error"

// JSONResponse sends a 200 response with the payload as the body
func JSONResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorBody{Error: message})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message)
}

// ConflictResponse sends a 409 Conflict response
func ConflictResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusConflict, message)
}

// InternalServerErrorResponse logs the cause and sends a generic 500 response
func InternalServerErrorResponse(c echo.Context, logger *zap.Logger, operation string, err error) error {
	logger.Error(operation,
		zap.Error(err),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
	)
	return ErrorResponse(c, http.StatusInternalServerError, internalErrorMessage)
}

// NewHTTPErrorHandler renders errors that escape handlers and middleware as
// {"error": "..."}; anything that is not an *echo.HTTPError becomes a 500
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := internalErrorMessage

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok && code < http.StatusInternalServerError {
				message = msg
			}
			if httpErr.Internal != nil || code >= http.StatusInternalServerError {
				logger.Error("request failed", zap.Int("status", code), zap.Error(err))
			}
		} else {
			logger.Error("unhandled error", zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorBody{Error: message})
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}
