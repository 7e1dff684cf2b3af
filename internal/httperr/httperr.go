package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`

	// Violazioni di validazione (solo 400).
	Details []string `json:"details,omitempty"`

	// Conflitti di agenda (solo 409).
	Conflicts any `json:"conflicts,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

// BadRequestDetails enumera tutte le violazioni raccolte dal validatore.
func BadRequestDetails(c *gin.Context, code, message string, details []string) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// Conflict allega l'elenco dei conflitti così il client può proporre
// orari alternativi.
func Conflict(c *gin.Context, code, message string, conflicts any) {
	c.JSON(http.StatusConflict, HTTPError{
		Code:      code,
		Message:   message,
		Conflicts: conflicts,
	})
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

// Gone: il token di claim esisteva ma è scaduto. Distinto dal 404.
func Gone(c *gin.Context, code, message string) {
	Write(c, http.StatusGone, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}
