package document

import "time"

// DocumentResponse represents an uploaded document in API responses
type DocumentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	UploadedAt  string `json:"uploaded_at"`
}

func NewDocumentResponse(d Document, url string) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Name:        d.Name,
		URL:         url,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedAt:  d.UploadedAt.Format(time.RFC3339),
	}
}
