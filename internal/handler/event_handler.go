package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/service"
	"github.com/alisettar/Attend/pkg/response"
)

// EventHandler handles event management HTTP requests
type EventHandler struct {
	eventService      service.EventService
	attendanceService service.AttendanceService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService, attendanceService service.AttendanceService) *EventHandler {
	return &EventHandler{
		eventService:      eventService,
		attendanceService: attendanceService,
	}
}

// Create handles event creation
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.eventService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving an event by ID
// GET /api/v1/events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	result, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving events
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	events, total, err := h.eventService.List(c.Request.Context(), &query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(events, query.Page, query.Limit, total))
}

// Update handles updating an event
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.eventService.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles removing an event
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// Attendances handles listing an event's attendances
// GET /api/v1/events/:id/attendances
func (h *EventHandler) Attendances(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	var query dto.ListAttendancesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, total, err := h.attendanceService.ListByEvent(c.Request.Context(), id, &query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(result, query.Page, query.Limit, total))
}

// Stats handles event attendance statistics
// GET /api/v1/events/:id/stats
func (h *EventHandler) Stats(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Event ID is required"))
		return
	}

	result, err := h.attendanceService.EventStats(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
