package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comexhub/comex-go/internal/application"
	"github.com/comexhub/comex-go/internal/domain/form"
	"github.com/comexhub/comex-go/pkg/response"
	"github.com/comexhub/comex-go/pkg/utils"
)

type FormHandler struct {
	service *application.FormService
	remarks *application.RemarkService
	audits  *application.AuditService
}

func NewFormHandler(service *application.FormService, remarks *application.RemarkService, audits *application.AuditService) *FormHandler {
	return &FormHandler{service: service, remarks: remarks, audits: audits}
}

func (h *FormHandler) SubmitForm(c *gin.Context) {
	var input form.CreateFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	detail, err := h.service.SubmitForm(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "submit", "form", detail.Form.FormType.String()+"/"+utils.FormatID(detail.Form.ID),
		nil, detail.Form, "form submitted", h.service.Repos.Audit)
	c.JSON(http.StatusOK, detail)
}

func (h *FormHandler) GetMyForms(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	forms, err := h.service.ListMyForms(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

// GetInbox lists forms awaiting the caller's reviewer role.
func (h *FormHandler) GetInbox(c *gin.Context) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	forms, err := h.service.ListInbox(claims.ReviewerRole)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

func (h *FormHandler) GetForm(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	detail, err := h.service.GetForm(c.Param("form_type"), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *FormHandler) UpdateForm(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	var input form.UpdateFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	detail, err := h.service.UpdateForm(c.Param("form_type"), id, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "revise", "form", c.Param("form_type")+"/"+c.Param("id"),
		nil, detail.Form, "form revised by owner", h.service.Repos.Audit)
	c.JSON(http.StatusOK, detail)
}

func (h *FormHandler) Approve(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	claims, err := utils.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	res, err := h.service.Approve(c.Param("form_type"), id, claims.ReviewerRole, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "approve", "form", c.Param("form_type")+"/"+c.Param("id"),
		nil, res.Status, res.Message, h.service.Repos.Audit)
	c.JSON(http.StatusOK, res)
}

func (h *FormHandler) Reject(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	var input form.RejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	claims, err := utils.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	res, err := h.service.Reject(c.Param("form_type"), id, claims.ReviewerRole, claims.UserID, input.Remark)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "reject", "form", c.Param("form_type")+"/"+c.Param("id"),
		nil, res.Status, res.Message, h.service.Repos.Audit)
	c.JSON(http.StatusOK, res)
}

func (h *FormHandler) ListRemarks(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	entries, err := h.remarks.ListByForm(c.Param("form_type"), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
