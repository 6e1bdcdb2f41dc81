package errcodes

import (
	"fmt"
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Payload is the JSON body of every error response.
type Payload struct {
	Error PayloadError `json:"error"`
}

type PayloadError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// Handle is an Echo error handler that uses HTTP errors accordingly, and any
// generic error will be interpreted as an internal server error.
func (h *Handler) Handle(err error, c echo.Context) {
	log := logger.FromEchoContext(c)

	if errutils.IsIgnorableErr(err) {
		log.Err(err).Warn("broken pipe")
		return
	}
	if c.Response().Committed {
		log.Err(err).Warn("error after response was written")
		return
	}

	payload := Generate(err)

	if payload.Error.StatusCode == http.StatusInternalServerError {
		log.Err(err).Error("server error")
	}

	if err := c.JSON(payload.Error.StatusCode, payload); err != nil {
		log.Err(errors.WithStack(err)).Error("error handler json error")
	}
}

// Generate builds the response payload for err.
func Generate(err error) Payload {
	p := PayloadError{StatusCode: http.StatusInternalServerError}

	// Echo errors
	var he *echo.HTTPError
	if errors.As(err, &he) {
		p.StatusCode = he.Code
		p.Message = fmt.Sprint(he.Message)
		p.Code = strcase.ToSnake(p.Message)
	}

	// Custom errors
	var e *Error
	if errors.As(err, &e) {
		p.StatusCode = e.HTTPCode
		p.Code = e.Code
		p.Message = e.Message
	}

	// Internal server errors that aren't Echo errors or custom errors
	if p.StatusCode == http.StatusInternalServerError && p.Message == "" {
		p.Code = "internal_server_error"
		p.Message = "Internal Server Error"
	}

	return Payload{Error: p}
}
