package document

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNotDocumentOwner = errors.New("not allowed to access this document")
)
