// Package response writes every JSON body the API returns. Failures always
// use the envelope {"error":{"message","code"}}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

const internalMessage = "internal server error"

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// Error writes err with the status its kind maps to and records it on the
// context for the request logger. Messages of 5xx errors stay in the logs.
func Error(c *gin.Context, err error) {
	status, code := apierr.StatusOf(err)
	_ = c.Error(err)
	msg := internalMessage
	if status < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// Abort is Error for middleware: the rest of the chain is skipped.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
