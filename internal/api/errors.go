package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, b)
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, ErrorBody{Error: ErrorDetail{Message: msg, Type: errType}})
}

// writeKindError maps conversion error kinds to HTTP statuses.
func writeKindError(c *echo.Context, err error) error {
	switch {
	case rbsp.IsFormat(err):
		return writeError(c, http.StatusBadRequest, "format_error", err.Error())
	case rbsp.IsData(err):
		return writeError(c, http.StatusUnprocessableEntity, "data_error", err.Error())
	default:
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
}
