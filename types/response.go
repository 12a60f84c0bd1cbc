package types

// DataResponse is the envelope every handler writes.
type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Message    string `json:"message"`
}

type AnswerResponse struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

type SummaryResponse struct {
	DocumentID   string `json:"document_id"`
	SectionTitle string `json:"section_title,omitempty"`
	Summary      string `json:"summary"`
}

type ExtractionResponse struct {
	DocumentID    string                 `json:"document_id"`
	Query         string                 `json:"query"`
	ExtractedData map[string]interface{} `json:"extracted_data"`
}

type ArxivSearchResponse struct {
	Query  string       `json:"query"`
	Papers []ArxivPaper `json:"papers"`
}
