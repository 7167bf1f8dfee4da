package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers HTTP 200 with this envelope; failures are carried
// in the body, not the status code. Unrouted paths are the only exception.
type response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	UserData any    `json:"userData,omitempty"`
}

func ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, response{Success: true, Message: message})
}

func fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, response{Success: false, Message: message})
}
