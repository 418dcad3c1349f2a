package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of non-validation error responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrors is a field-keyed error map mirroring the rejected input.
// Errors not tied to a single field go under "non_field_errors".
type ValidationErrors map[string][]string

// NonFieldErrors wraps a record-level validation message.
func NonFieldErrors(messages ...string) ValidationErrors {
	return ValidationErrors{"non_field_errors": messages}
}

// BadRequest returns a 400 with the field-keyed error map as the body.
func BadRequest(c *gin.Context, errs ValidationErrors) {
	c.JSON(http.StatusBadRequest, errs)
}

// NotFound returns a 404 error body.
func NotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not found"
	}
	c.JSON(http.StatusNotFound, ErrorResponse{Detail: detail})
}

// Unauthorized returns a 401 error body.
func Unauthorized(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Authentication credentials were not provided"
	}
	c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: detail})
}

// InternalServerError returns a 500 error body.
func InternalServerError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: detail})
}
