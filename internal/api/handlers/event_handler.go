package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comexhub/comex-go/internal/application"
	"github.com/comexhub/comex-go/internal/domain/event"
	"github.com/comexhub/comex-go/pkg/response"
	"github.com/comexhub/comex-go/pkg/utils"
)

type EventHandler struct {
	service *application.EventService
	forms   *application.FormService
}

func NewEventHandler(service *application.EventService, forms *application.FormService) *EventHandler {
	return &EventHandler{service: service, forms: forms}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var input event.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	e, err := h.service.CreateEvent(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	events, err := h.service.ListEvents()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEventByID(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	e, err := h.service.GetEventByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	var input event.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	e, err := h.service.UpdateEvent(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	if err := h.service.DeleteEvent(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Event deleted"})
}

// ListEventForms returns every form filed under an event, with status.
func (h *EventHandler) ListEventForms(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	forms, err := h.forms.ListByEvent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}
