package footballdata

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// APIError is a non-2xx provider response with its payload kept unmodified.
type APIError struct {
	StatusCode int
	ErrorCode  int
	ErrorField int
	Message    string
	Body       []byte
}

func newAPIError(status int, body []byte) *APIError {
	out := &APIError{StatusCode: status, Body: body}
	var payload errorPayload
	if err := sonic.Unmarshal(body, &payload); err == nil {
		out.ErrorCode = payload.ErrorCode
		out.ErrorField = payload.Error
		out.Message = payload.Message
	}
	return out
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("football-data status=%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("football-data status=%d body=%s", e.StatusCode, abbreviateBody(e.Body))
}

func (e *APIError) HTTPStatus() int          { return e.StatusCode }
func (e *APIError) ProviderErrorCode() int   { return e.ErrorCode }
func (e *APIError) ProviderErrorStatus() int { return e.ErrorField }
