package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/school-admin-api/internal/service"
	"github.com/campuskit/school-admin-api/pkg/response"
)

// ReportHandler serves downloadable exports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// StudentRosterCSV godoc
// @Summary Download the student roster as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} byte
// @Router /reports/students.csv [get]
func (h *ReportHandler) StudentRosterCSV(c *gin.Context) {
	payload, err := h.reports.StudentRosterCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="students.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// ReportCardPDF godoc
// @Summary Download a student's report card as PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path int true "Student ID"
// @Success 200 {file} byte
// @Router /reports/students/{id}/report-card [get]
func (h *ReportHandler) ReportCardPDF(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.reports.ReportCardPDF(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="report-card.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
