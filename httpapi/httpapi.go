// Package httpapi defines the error taxonomy shared by all controllers and the
// single response envelope every endpoint emits.
package httpapi

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindInvalidTransition
	KindPersistence
)

// Error carries a machine-checkable kind plus a user-readable message.
type Error struct {
	Kind    Kind
	Message string
	// cause is logged server-side, never serialized
	cause error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: KindAuthorization, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error       { return &Error{Kind: KindConflict, Message: msg} }

func InvalidTransition(msg string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: msg}
}

// Persistence wraps a store-layer failure. The wrapped error is logged on
// response but the client only ever sees the generic message.
func Persistence(cause error) *Error {
	return &Error{Kind: KindPersistence, Message: "internal server error", cause: cause}
}

func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// OK writes the success envelope.
func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Fail writes the failure envelope. Unknown error values are treated as
// persistence failures so internal detail never leaks to the client.
func Fail(c *gin.Context, err error) {
	apiErr, ok := err.(*Error)
	if !ok {
		apiErr = Persistence(err)
	}
	if apiErr.Kind == KindPersistence && apiErr.cause != nil {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, apiErr.cause)
	}
	c.AbortWithStatusJSON(statusFor(apiErr.Kind), gin.H{"success": false, "message": apiErr.Message})
}
