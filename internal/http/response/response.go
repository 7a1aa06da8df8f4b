package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

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

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// StatusFor maps an aggregate error code to its HTTP status.
func StatusFor(code aggregates.ErrorCode) int {
	switch code {
	case aggregates.CodeNotFound:
		return http.StatusNotFound
	case aggregates.CodeValidation:
		return http.StatusBadRequest
	case aggregates.CodeConstraintViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeFor returns the wire code err is reported under.
func CodeFor(err error) string {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	if code := aggregates.CodeOf(err); code != "" {
		return string(code)
	}
	return string(aggregates.CodeInternal)
}

// RespondDomainError writes err with the status its kind maps to. Handler
// errors built with apierr keep their explicit status and code.
func RespondDomainError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	code := CodeFor(err)
	RespondError(c, StatusFor(aggregates.ErrorCode(code)), code, err)
}
