package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mnes"
	"github.com/dmitrymomot/mnes/internal"
	"github.com/dmitrymomot/mnes/middlewares"
	"github.com/dmitrymomot/mnes/pkg/job"
	"github.com/dmitrymomot/mnes/pkg/storage"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler renders handler errors as ErrorBody JSON. Encoder validation
// errors map to 400, oversized bodies to 413, disabled export to 503,
// timeouts to 504, and anything unrecognized to 500 with a generic message.
func ErrorHandler(c internal.Context, err error) error {
	httpErr := toHTTPError(err)
	if httpErr.RequestID == "" {
		httpErr.RequestID = middlewares.GetRequestID(c)
	}

	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Int("status", httpErr.Code), slog.Any("error", err))
	}

	return c.JSON(httpErr.Code, ErrorBody{Error: ErrorDetail{
		Code:      httpErr.ErrorCode,
		Message:   httpErr.Message,
		RequestID: httpErr.RequestID,
	}})
}

// NotFound answers unknown routes in the API error shape.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound("route not found", internal.WithErrorCode("not_found"))
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(c internal.Context) error {
	return internal.ErrMethodNotAllowed("method not allowed", internal.WithErrorCode("method_not_allowed"))
}

func toHTTPError(err error) *internal.HTTPError {
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		if httpErr.ErrorCode == "" {
			httpErr.ErrorCode = codeFromStatus(httpErr.Code)
		}
		return httpErr
	}

	var (
		maxBytes *http.MaxBytesError
		syntax   *json.SyntaxError
		typeErr  *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, mnes.ErrEmptyInput):
		return badRequest(err, "empty_input", "name is empty after normalization")
	case errors.Is(err, mnes.ErrInputTooLong):
		return badRequest(err, "input_too_long", err.Error())
	case errors.Is(err, mnes.ErrInvalidCharacter):
		return badRequest(err, "invalid_character", err.Error())
	case errors.Is(err, mnes.ErrUnsupportedFormat):
		return badRequest(err, "unsupported_format", err.Error())
	case errors.As(err, &maxBytes):
		return internal.ErrRequestTooLarge("request body too large",
			internal.WithErrorCode("body_too_large"), internal.WithError(err))
	case errors.Is(err, internal.ErrEmptyBody), errors.As(err, &syntax), errors.As(err, &typeErr):
		return badRequest(err, "invalid_body", "request body must be a JSON object")
	case errors.Is(err, internal.ErrBindJSON):
		return badRequest(err, "invalid_body", err.Error())
	case errors.Is(err, job.ErrNotConfigured), errors.Is(err, job.ErrUnknownTask), errors.Is(err, storage.ErrNotConfigured):
		return internal.ErrServiceUnavailable("history export is not enabled",
			internal.WithErrorCode("export_disabled"), internal.WithError(err))
	case middlewares.IsTimeoutError(err), errors.Is(err, context.DeadlineExceeded):
		return internal.NewHTTPError(http.StatusGatewayTimeout, "request timed out",
			internal.WithErrorCode("timeout"), internal.WithError(err))
	default:
		return internal.ErrInternal("internal server error",
			internal.WithErrorCode("internal"), internal.WithError(err))
	}
}

func badRequest(err error, code, message string) *internal.HTTPError {
	return internal.ErrBadRequest(message, internal.WithErrorCode(code), internal.WithError(err))
}

func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusServiceUnavailable:
		return "unavailable"
	default:
		if status >= http.StatusInternalServerError {
			return "internal"
		}
		return "error"
	}
}
