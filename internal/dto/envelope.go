package dto

import "github.com/gin-gonic/gin"

// Envelope is the uniform response wrapper for every API endpoint. A
// request either fully succeeds with complete data or fully fails; no
// partial-success form exists.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Respond writes a success envelope.
func Respond(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// RespondMessage writes a success envelope carrying only a message.
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, Message: message})
}

// RespondError writes a failure envelope.
func RespondError(c *gin.Context, status int, errMsg string) {
	c.JSON(status, Envelope{Success: false, Error: errMsg})
}
