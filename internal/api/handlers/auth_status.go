package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comexhub/comex-go/pkg/response"
	"github.com/comexhub/comex-go/pkg/utils"
)

// AuthStatusHandler reports the caller's resolved identity.
func AuthStatusHandler(c *gin.Context) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, claims)
}
