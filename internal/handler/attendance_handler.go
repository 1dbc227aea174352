package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/internal/dto"
	"github.com/alisettar/Attend/internal/service"
	"github.com/alisettar/Attend/pkg/response"
)

// AttendanceHandler handles registration and check-in HTTP requests
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Register handles registering a participant for an event
// POST /api/v1/attendances
func (h *AttendanceHandler) Register(c *gin.Context) {
	var req dto.RegisterAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.attendanceService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// CheckInByQRCode handles a QR scan at the door
// POST /api/v1/attendances/checkin
func (h *AttendanceHandler) CheckInByQRCode(c *gin.Context) {
	var req dto.CheckInByQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.attendanceService.CheckInByQRCode(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// CheckIn handles checking in an attendance by ID
// POST /api/v1/attendances/:id/checkin
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Attendance ID is required"))
		return
	}

	result, err := h.attendanceService.CheckIn(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Cancel handles cancelling a registration
// POST /api/v1/attendances/:id/cancel
func (h *AttendanceHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Attendance ID is required"))
		return
	}

	result, err := h.attendanceService.Cancel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// GetByID handles retrieving an attendance by ID
// GET /api/v1/attendances/:id
func (h *AttendanceHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Attendance ID is required"))
		return
	}

	result, err := h.attendanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles removing an attendance record
// DELETE /api/v1/attendances/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Attendance ID is required"))
		return
	}

	if err := h.attendanceService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// ListByUser handles listing a participant's attendances
// GET /api/v1/users/:id/attendances
func (h *AttendanceHandler) ListByUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("User ID is required"))
		return
	}

	var query dto.ListAttendancesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, total, err := h.attendanceService.ListByUser(c.Request.Context(), id, &query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(result, query.Page, query.Limit, total))
}
