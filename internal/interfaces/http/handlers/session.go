// internal/interfaces/http/handlers/session.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/ogtriplek/tyre-storefront/internal/interfaces/http/middleware"
)

// requestError aborts a session update and is reported to the client as is
type requestError struct {
	status  int
	message string
	details string
}

func (e *requestError) Error() string { return e.message }

func notFound(message, details string) error {
	return &requestError{status: http.StatusNotFound, message: message, details: details}
}

// withSession runs fn against the caller's page session. On failure the
// response has been written and false is returned.
func withSession(c *gin.Context, store storefront.Store, fn func(*storefront.Session) error) bool {
	id, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not initialised",
		})
		return false
	}

	err := store.Update(c.Request.Context(), id, fn)
	if err == nil {
		return true
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		body := gin.H{"error": reqErr.message}
		if reqErr.details != "" {
			body["details"] = reqErr.details
		}
		c.JSON(reqErr.status, body)
		return false
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Failed to update session",
	})
	return false
}
