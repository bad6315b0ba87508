package api

import (
	"alcyxob/gym-buddy/internal/controller"
	"alcyxob/gym-buddy/internal/service"
	"alcyxob/gym-buddy/internal/workout"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Constants for context keys
const (
	ContextRequestIDKey = "requestID"
	RequestIDHeader     = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when it sends one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// statusForError maps service and controller errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, workout.ErrUnknownField),
		errors.Is(err, workout.ErrSetOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, workout.ErrUnknownExercise):
		return http.StatusNotFound
	case errors.Is(err, controller.ErrInvalidTransition),
		errors.Is(err, service.ErrSessionInProgress),
		errors.Is(err, service.ErrNoActiveSession),
		errors.Is(err, workout.ErrEmptyRoutine),
		errors.Is(err, workout.ErrDuplicateExercise):
		return http.StatusConflict
	case errors.Is(err, controller.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError answers with the mapped status. Internal errors are
// logged and replaced by a generic message.
func abortWithServiceError(c *gin.Context, err error, failMessage string) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: [%s] %s: %v", c.GetString(ContextRequestIDKey), failMessage, err)
		abortWithError(c, code, failMessage)
		return
	}
	abortWithError(c, code, err.Error())
}
