package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mannar-express/service-seats/internal/domain/seat"
)

// Body is the envelope every API response is wrapped in.
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a 200 response with a message and payload.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Message: message, Data: data})
}

// List writes a 200 response carrying only a payload.
func List(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Message: message})
}

// Error maps a domain error to its HTTP status. Conflicts share the 400 status
// with validation failures, as the API's consumers expect.
func Error(c *gin.Context, message string, err error) {
	var validationErr *seat.ValidationError
	var notFoundErr *seat.NotFoundError
	var conflictErr *seat.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, Body{Success: false, Message: validationErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, Body{Success: false, Message: conflictErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, Body{Success: false, Message: "Seat not found"})
	default:
		c.JSON(http.StatusInternalServerError, Body{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
	}
}
