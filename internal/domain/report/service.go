package report

import "context"

// Export is a generated file ready to stream to the client.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service generates attendance and holiday exports
type Service interface {
	// AttendanceMonthXLSX exports a month of persisted records as a
	// spreadsheet, optionally filtered to one user.
	AttendanceMonthXLSX(ctx context.Context, monthStr string, userID *string) (Export, error)

	// AttendanceMonthCSV is the plain-text counterpart.
	AttendanceMonthCSV(ctx context.Context, monthStr string, userID *string) (Export, error)

	// HolidaysXLSX exports the holiday calendar.
	HolidaysXLSX(ctx context.Context, year *int) (Export, error)

	// HolidaysCSV is the plain-text counterpart.
	HolidaysCSV(ctx context.Context, year *int) (Export, error)
}
