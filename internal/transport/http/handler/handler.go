// Package handler contains the gin handlers and their request/response DTOs.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses the :id route parameter; a malformed id behaves like a
// missing resource.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "resource not found"})
		return 0, false
	}
	return uint(id), true
}
