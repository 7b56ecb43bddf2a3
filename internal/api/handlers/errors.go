package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comexhub/comex-go/internal/application"
	"github.com/comexhub/comex-go/internal/approval"
	"github.com/comexhub/comex-go/pkg/response"
)

// respondError maps engine and storage errors onto distinct status codes
// and messages so the UI can render each case differently.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, approval.ErrUnknownFormType):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Unknown form type"})
	case errors.Is(err, approval.ErrRemarksRequired):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "A remark is required when rejecting a form"})
	case errors.Is(err, approval.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Your role is not authorized to act on this form at this time"})
	case errors.Is(err, approval.ErrAlreadyApproved):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: "This role has already approved the form"})
	case errors.Is(err, approval.ErrConcurrentModification):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: "The form changed while processing your decision; please reload and try again"})
	case errors.Is(err, application.ErrNotOwner):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Only the owner may update this form"})
	case errors.Is(err, application.ErrFormFinalized):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: "A fully approved form can no longer be updated"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}
}
