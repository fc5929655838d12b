package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/report"
	"github.com/seekers-automation/mes-hr-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
	ExportHolidays(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportAttendance implements ReportHandler. Format "csv" switches the
// output from a spreadsheet to plain text.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		response.BadRequest(w, "Query parameter 'month' is required (YYYY-MM)", nil)
		return
	}

	var userID *string
	if v := r.URL.Query().Get("user_id"); v != "" {
		userID = &v
	}

	var export report.Export
	var err error
	if r.URL.Query().Get("format") == "csv" {
		export, err = h.reportService.AttendanceMonthCSV(r.Context(), monthStr, userID)
	} else {
		export, err = h.reportService.AttendanceMonthXLSX(r.Context(), monthStr, userID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeExport(w, export)
}

// ExportHolidays implements ReportHandler.
func (h *reportHandlerImpl) ExportHolidays(w http.ResponseWriter, r *http.Request) {
	var year *int
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = &y
	}

	var export report.Export
	var err error
	if r.URL.Query().Get("format") == "csv" {
		export, err = h.reportService.HolidaysCSV(r.Context(), year)
	} else {
		export, err = h.reportService.HolidaysXLSX(r.Context(), year)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeExport(w, export)
}

func writeExport(w http.ResponseWriter, export report.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename)
	if _, err := w.Write(export.Data); err != nil {
		slog.Error("Failed to write export", "filename", export.Filename, "error", err)
	}
}
