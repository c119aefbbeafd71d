package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/ecotrack/errors"
)

// JSON writes the uniform response envelope used by every handler.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		var e *apiError.Error
		if apiErr, ok := err.(*apiError.Error); ok {
			e = apiErr
		} else {
			e = apiError.New(err.Error(), status)
		}
		errMessage = e.Message
	}

	responsedata := gin.H{
		"message":   message,
		"data":      data,
		"errors":    errMessage,
		"status":    http.StatusText(status),
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	}
	c.JSON(status, responsedata)
}
