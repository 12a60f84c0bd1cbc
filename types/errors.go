package types

import "errors"

// Error taxonomy for the ingestion pipeline and the query operations.
// Handlers map these to HTTP status codes with errors.Is; infrastructure
// errors are wrapped around the matching sentinel so the cause survives.
var (
	ErrUnsupportedFormat = errors.New("unsupported file type: only PDF content is accepted")
	ErrConversionFailed  = errors.New("failed to convert PDF pages to images")
	ErrExtractionFailed  = errors.New("failed to extract document structure")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrSectionNotFound   = errors.New("section not found")
	ErrDocumentExists    = errors.New("document already registered")
)
