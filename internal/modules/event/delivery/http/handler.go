package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/event/dto"
	event "github.com/atulpawar07/sp-cricket-hub/internal/modules/event/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/request"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
	"github.com/atulpawar07/sp-cricket-hub/pkg/validator"
)

type EventHandler struct {
	eventService event.EventService
}

func NewEventHandler(eventService event.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	var filter dto.EventFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Data(c, http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.eventService.CreateEvent(c.Request.Context(), sess, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.eventService.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}

func (h *EventHandler) UploadEventImage(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	file, err := request.FormImage(c, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	res, err := h.eventService.UploadEventImage(c.Request.Context(), id, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
