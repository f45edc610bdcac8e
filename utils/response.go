package utils

import (
	"github.com/gin-gonic/gin"

	"nhatro-backend/internal/apperr"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{"success": false, "error": gin.H{"code": errCode, "message": message}})
}

// JSONAppError maps a service error to its fixed HTTP status and code.
func JSONAppError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	message := err.Error()
	if kind == apperr.KindInternal {
		// Do not leak store internals to clients.
		message = "internal error"
	}
	JSONError(c, apperr.HTTPStatus(kind), string(kind), message)
}
