package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiError is the typed rejection carried through middleware and handlers.
// Code values are part of the public API contract and must not change.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

// The fixed error taxonomy. Status mapping: 400 input validation, 401 missing
// or expired credential, 403 invalid/forbidden credential, 500 unexpected.
var (
	errNoToken = &apiError{http.StatusUnauthorized, "NO_TOKEN",
		"Access token required. Please provide a valid token."}
	errTokenExpired = &apiError{http.StatusUnauthorized, "TOKEN_EXPIRED",
		"Token has expired. Please login again."}
	errInvalidToken = &apiError{http.StatusForbidden, "INVALID_TOKEN",
		"Invalid or malformed token."}
	errNoRefreshToken = &apiError{http.StatusUnauthorized, "NO_REFRESH_TOKEN",
		"Refresh token required."}
	errInvalidRefreshToken = &apiError{http.StatusForbidden, "INVALID_REFRESH_TOKEN",
		"Invalid refresh token."}
	errNotAuthenticated = &apiError{http.StatusUnauthorized, "NOT_AUTHENTICATED",
		"User not authenticated."}
	errInsufficientPermissions = &apiError{http.StatusForbidden, "INSUFFICIENT_PERMISSIONS",
		"Admin access required. You do not have permission to perform this action."}
	errNotOwner = &apiError{http.StatusForbidden, "NOT_OWNER",
		"You do not have permission to access this resource."}
	errMissingCredentials = &apiError{http.StatusBadRequest, "MISSING_CREDENTIALS",
		"Email and password are required."}
	errInvalidEmail = &apiError{http.StatusBadRequest, "INVALID_EMAIL",
		"Invalid email format."}
	errWeakPassword = &apiError{http.StatusBadRequest, "WEAK_PASSWORD",
		"Password must be at least 6 characters long."}
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondErr writes the failure envelope for a typed apiError.
func respondErr(c *gin.Context, err *apiError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"message": err.Message,
		"error":   err.Code,
	})
}

// abortErr is respondErr for middleware: it also stops the handler chain.
func abortErr(c *gin.Context, err *apiError) {
	respondErr(c, err)
	c.Abort()
}

// respondFail maps an arbitrary fault onto the envelope with a custom message
// and the fault text as the machine code slot (original API behavior for 500s).
func respondFail(c *gin.Context, status int, message string, err error) {
	body := gin.H{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
