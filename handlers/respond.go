package handlers

import (
	"net/http"
	"strconv"

	"github.com/Everilll/CateringKita/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps a business error to its HTTP status. Unknown errors are
// masked as a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Terjadi kesalahan pada server"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// paramID parses the :id path parameter, writing a 400 on failure.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID tidak valid"})
		return 0, false
	}
	return uint(id), true
}
