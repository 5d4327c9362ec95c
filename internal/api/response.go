// ABOUTME: JSON response helpers shared by every API handler.
// ABOUTME: Errors use a {"error": {"message", "code"}} envelope.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps an APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error codes returned by the API.
const (
	CodeBadRequest = "bad_request"
	CodeNotFound   = "not_found"
)

// RespondError writes an error envelope with the given status.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
