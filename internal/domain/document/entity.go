package document

import "time"

type Document struct {
	ID          string
	UserID      string
	Name        string
	Path        string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
}
