package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comexhub/comex-go/pkg/types"
)

var ErrNoClaims = errors.New("user claims not found in context")

// GetClaims reads the resolved identity set by the JWT middleware.
var GetClaims = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, ErrNoClaims
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// ParseIDParam parses a numeric URL parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// FormatID renders a numeric id for audit resource keys.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
