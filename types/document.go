package types

import (
	"bytes"
	"encoding/json"
)

// ProcessedDocument is the in-memory record produced by the ingestion
// pipeline. Once registered in the store it is treated as read-only.
type ProcessedDocument struct {
	ID            string           `json:"id"`
	Filename      string           `json:"filename"`
	ExtractedText string           `json:"extracted_text"`
	Metadata      DocumentMetadata `json:"metadata"`
}

// DocumentMetadata mirrors the JSON schema the extraction instruction asks
// the model for. Fields absent from the model's response stay at their zero
// values.
type DocumentMetadata struct {
	Title      string       `json:"title"`
	Abstract   string       `json:"abstract"`
	Sections   []Section    `json:"sections"`
	References []JSONString `json:"references"`
}

// Section is one document section. Title is the lookup key for section-level
// summarization; lookups are case-insensitive and duplicate titles are
// allowed.
type Section struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Tables  []JSONString `json:"tables,omitempty"`
	Figures []JSONString `json:"figures,omitempty"`
}

// JSONString decodes any JSON value to its textual form: strings are taken
// verbatim, everything else keeps its compact JSON encoding. Models return
// references and table/figure descriptions as either plain strings or
// objects, and both must survive decoding.
type JSONString string

func (j *JSONString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*j = JSONString(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*j = JSONString(buf.String())
	return nil
}

// ArxivPaper is one normalized result from the arXiv search API.
type ArxivPaper struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Summary   string   `json:"summary"`
	URL       string   `json:"url"`
	Published string   `json:"published"`
}
