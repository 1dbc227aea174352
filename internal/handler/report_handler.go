package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/internal/service"
	"github.com/alisettar/Attend/pkg/response"
)

// ReportHandler handles statistics HTTP requests
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles tenant-wide statistics
// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	result, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
