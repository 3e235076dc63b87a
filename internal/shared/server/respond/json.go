package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status. Every body reflects one
// session's state, so shared caches are told not to keep it.
func JSON(c *gin.Context, status int, payload any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, payload)
}

// OK writes a 200 response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 response for a newly saved journal entry or library item.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}
