package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/attendance"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/holiday"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/report"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv"
)

var attendanceHeader = []interface{}{
	"Date", "Employee", "Email", "Status", "Check In", "Check Out",
	"Customer", "Work Location", "Assigned By", "Outside Office",
}

type ReportServiceImpl struct {
	attendanceRepo attendance.Repository
	holidayRepo    holiday.Repository
}

func NewReportService(attendanceRepo attendance.Repository, holidayRepo holiday.Repository) report.Service {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
	}
}

// AttendanceMonthXLSX implements report.Service. Only persisted records
// are exported; placeholder rows never reach the ledger.
func (s *ReportServiceImpl) AttendanceMonthXLSX(ctx context.Context, monthStr string, userID *string) (report.Export, error) {
	records, err := s.monthRecords(ctx, monthStr, userID)
	if err != nil {
		return report.Export{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &attendanceHeader); err != nil {
		return report.Export{}, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range records {
		row := attendanceCells(rec)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return report.Export{}, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to build workbook: %w", err)
	}

	return report.Export{
		Filename:    fmt.Sprintf("attendance_%s.xlsx", monthStr),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

// AttendanceMonthCSV implements report.Service.
func (s *ReportServiceImpl) AttendanceMonthCSV(ctx context.Context, monthStr string, userID *string) (report.Export, error) {
	records, err := s.monthRecords(ctx, monthStr, userID)
	if err != nil {
		return report.Export{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(attendanceHeader))
	for i, h := range attendanceHeader {
		header[i] = h.(string)
	}
	if err := w.Write(header); err != nil {
		return report.Export{}, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		cells := attendanceCells(rec)
		row := make([]string, len(cells))
		for i, c := range cells {
			switch v := c.(type) {
			case string:
				row[i] = v
			case bool:
				row[i] = strconv.FormatBool(v)
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(row); err != nil {
			return report.Export{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return report.Export{}, fmt.Errorf("failed to flush csv: %w", err)
	}

	return report.Export{
		Filename:    fmt.Sprintf("attendance_%s.csv", monthStr),
		ContentType: csvContentType,
		Data:        buf.Bytes(),
	}, nil
}

// HolidaysXLSX implements report.Service.
func (s *ReportServiceImpl) HolidaysXLSX(ctx context.Context, year *int) (report.Export, error) {
	holidays, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return report.Export{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Holidays"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"Date", "Name", "Description"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return report.Export{}, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, h := range holidays {
		desc := ""
		if h.Description != nil {
			desc = *h.Description
		}
		row := []interface{}{h.Date.Format("2006-01-02"), h.Name, desc}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return report.Export{}, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to build workbook: %w", err)
	}

	name := "holidays.xlsx"
	if year != nil {
		name = fmt.Sprintf("holidays_%d.xlsx", *year)
	}

	return report.Export{
		Filename:    name,
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

// HolidaysCSV implements report.Service.
func (s *ReportServiceImpl) HolidaysCSV(ctx context.Context, year *int) (report.Export, error) {
	holidays, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return report.Export{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Name", "Description"}); err != nil {
		return report.Export{}, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, h := range holidays {
		desc := ""
		if h.Description != nil {
			desc = *h.Description
		}
		if err := w.Write([]string{h.Date.Format("2006-01-02"), h.Name, desc}); err != nil {
			return report.Export{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return report.Export{}, fmt.Errorf("failed to flush csv: %w", err)
	}

	name := "holidays.csv"
	if year != nil {
		name = fmt.Sprintf("holidays_%d.csv", *year)
	}

	return report.Export{
		Filename:    name,
		ContentType: csvContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *ReportServiceImpl) monthRecords(ctx context.Context, monthStr string, userID *string) ([]attendance.Attendance, error) {
	month, ok := validator.IsValidMonth(monthStr)
	if !ok {
		return nil, attendance.ErrInvalidMonthFilter
	}

	return s.attendanceRepo.ListByMonth(ctx, month.Year(), month.Month(), userID)
}

func attendanceCells(rec attendance.Attendance) []interface{} {
	return []interface{}{
		rec.Date.Format("2006-01-02"),
		deref(rec.UserName),
		deref(rec.UserEmail),
		string(rec.Status),
		deref(rec.CheckInTime),
		deref(rec.CheckOutTime),
		deref(rec.Customer),
		deref(rec.WorkLocation),
		deref(rec.AssignedBy),
		rec.OutsideOffice,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
