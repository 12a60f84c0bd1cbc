package types

type QuestionRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

type SummarizeRequest struct {
	DocumentID   string `json:"document_id"`
	SectionTitle string `json:"section_title,omitempty"`
	Granularity  string `json:"granularity,omitempty"`
}

type ExtractionRequest struct {
	DocumentID string `json:"document_id"`
	Query      string `json:"query"`
}

type ArxivSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}
