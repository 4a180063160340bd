package utils

import (
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Error string `json:"error"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

func MessageResponse(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

func JSONResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
