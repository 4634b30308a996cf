package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// idParam parses the :id path segment; on failure it writes the 400 response
// itself so handlers can just bail out.
func idParam(ctx *gin.Context, resource string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + resource + " ID"})
		return 0, false
	}
	return id, true
}

// internalError is the uniform response for unexpected storage failures.
// Detail goes to the log, never to the client.
func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "An internal error occurred"})
}
