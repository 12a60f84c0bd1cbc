package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"docqa-be/store"
	"docqa-be/types"
	"docqa-be/utils"
)

// NoContentSentinel is returned by Summarize when there is nothing to send
// to the model.
const NoContentSentinel = "No content found to summarize."

const extractStructurePrompt = `Analyze the following PDF document pages.
Extract the following information:
- Title: the main title of the paper.
- Abstract: the abstract of the paper.
- Sections: a list of sections, where each section has:
  - "title": the section title.
  - "content": a summary of the section's text.
  - "tables": descriptions of tables present in the section, if any.
  - "figures": descriptions of figures present in the section, if any.
- References: a list of references.

Output the extracted information as a JSON object with the following schema:
{
  "title": "...",
  "abstract": "...",
  "sections": [
    {"title": "...", "content": "...", "tables": [...], "figures": [...]}
  ],
  "references": [...]
}

If any element is not found, use an empty string or empty list as appropriate.
Ensure high accuracy, especially for tables and key results.`

const answerPromptTemplate = `You are an AI assistant specialized in analyzing documents.
Based on the following document content, answer the user's question.
If the answer is not explicitly stated in the document, state that you cannot find the information.

Document Content (structured JSON):
%s

User's Question: %s

Answer:`

const summaryPromptTemplate = `Summarize the following content.
Granularity: %s.

Content:
%s

Summary:`

const extractDataPromptTemplate = `From the following document content, extract specific evaluation results or key data points related to the query: "%s".
Focus on numerical values, metrics, and their descriptions.
Output the extracted information as a JSON object with relevant key-value pairs.
For example, if the query is "accuracy and F1-score", the output could be:
{"accuracy": "95.2%%", "f1_score": "0.89"}
If the query is "key findings", it could be:
{"finding_1": "...", "finding_2": "..."}
If no relevant information is found, return an empty JSON object: {}.

Document Content (structured JSON):
%s

Extraction Query: %s

Extracted Results (JSON):`

// ExtractionResult carries the key/value pairs produced by ExtractData.
// Degraded is set when the model's raw response could not be parsed as JSON
// and the error-indicator object was substituted.
type ExtractionResult struct {
	Data     map[string]interface{}
	Degraded bool
}

// DocumentService runs the ingestion pipeline and the query operations over
// the document store.
type DocumentService struct {
	aiService AIService
	renderer  PDFRenderer
	store     *store.DocumentStore
	uploadDir string
	timeout   time.Duration
}

// NewDocumentService wires the pipeline's collaborators. uploadDir may be
// empty to disable raw-upload archival; timeout zero disables call budgets.
func NewDocumentService(
	aiService AIService,
	renderer PDFRenderer,
	docStore *store.DocumentStore,
	uploadDir string,
	timeout time.Duration,
) *DocumentService {
	return &DocumentService{
		aiService: aiService,
		renderer:  renderer,
		store:     docStore,
		uploadDir: uploadDir,
		timeout:   timeout,
	}
}

// ProcessDocument runs the full ingestion pipeline: content-based type
// validation, page rasterization, structured extraction by the vision model,
// and registration in the store. Nothing is registered until every step has
// succeeded, so failures need no rollback.
func (s *DocumentService) ProcessDocument(ctx context.Context, content []byte, filename string) (*types.ProcessedDocument, error) {
	kind := mimetype.Detect(content)
	if !kind.Is("application/pdf") {
		return nil, fmt.Errorf("%w (got %s)", types.ErrUnsupportedFormat, kind.String())
	}

	docID := uuid.NewString()

	pages, err := s.renderer.RenderPages(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConversionFailed, err)
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	raw, err := s.aiService.GenerateVisionJSON(callCtx, extractStructurePrompt, pages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrExtractionFailed, err)
	}

	metadata, extractedText, err := decodeMetadata([]byte(raw))
	if err != nil {
		return nil, err
	}
	if extractedText == "" {
		extractedText = s.renderer.ExtractPlainText(content)
	}

	doc := &types.ProcessedDocument{
		ID:            docID,
		Filename:      filename,
		ExtractedText: extractedText,
		Metadata:      metadata,
	}
	if err := s.store.Put(doc); err != nil {
		return nil, err
	}

	if s.uploadDir != "" {
		if _, err := utils.SaveWithTimestamp(content, filename, s.uploadDir); err != nil {
			log.Printf("Warning: failed to archive upload %s: %v", filename, err)
		}
	}

	return doc, nil
}

// decodeMetadata parses the model's extraction response. A response that is
// not a JSON object at all fails with ErrExtractionFailed; inside an object,
// fields that are missing or of an unexpected shape fall back to empty
// values so partial extractions keep their value. The second return value is
// the optional text_content field.
func decodeMetadata(raw []byte) (types.DocumentMetadata, string, error) {
	var payload struct {
		types.DocumentMetadata
		TextContent string `json:"text_content"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return types.DocumentMetadata{}, "", fmt.Errorf("%w: response is not a JSON object: %v", types.ErrExtractionFailed, err)
		}
		// Object-shaped but some field has the wrong type; salvage the
		// fields that do decode.
		payload.Title = ""
		payload.Abstract = ""
		payload.Sections = nil
		payload.References = nil
		payload.TextContent = ""
		if v, ok := fields["title"]; ok {
			_ = json.Unmarshal(v, &payload.Title)
		}
		if v, ok := fields["abstract"]; ok {
			_ = json.Unmarshal(v, &payload.Abstract)
		}
		if v, ok := fields["sections"]; ok {
			_ = json.Unmarshal(v, &payload.Sections)
		}
		if v, ok := fields["references"]; ok {
			_ = json.Unmarshal(v, &payload.References)
		}
		if v, ok := fields["text_content"]; ok {
			_ = json.Unmarshal(v, &payload.TextContent)
		}
	}

	metadata := payload.DocumentMetadata
	if metadata.Sections == nil {
		metadata.Sections = []types.Section{}
	}
	if metadata.References == nil {
		metadata.References = []types.JSONString{}
	}
	return metadata, payload.TextContent, nil
}

// Answer answers a free-text question against the full structured metadata
// of the document. The whole metadata is always sent; there is no retrieval
// or chunking.
func (s *DocumentService) Answer(ctx context.Context, documentID, question string) (string, error) {
	doc, err := s.store.Get(documentID)
	if err != nil {
		return "", err
	}

	content, err := json.MarshalIndent(doc.Metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize document metadata: %w", err)
	}
	prompt := fmt.Sprintf(answerPromptTemplate, content, question)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	answer, err := s.aiService.GenerateText(callCtx, prompt, 0.2)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Summarize summarizes one section (first case-insensitive title match) or,
// with an empty sectionTitle, the abstract plus every section in document
// order. Granularity is passed through to the model verbatim. Empty content
// short-circuits to NoContentSentinel without a model call.
func (s *DocumentService) Summarize(ctx context.Context, documentID, sectionTitle, granularity string) (string, error) {
	doc, err := s.store.Get(documentID)
	if err != nil {
		return "", err
	}
	if granularity == "" {
		granularity = "overview"
	}

	var contentToSummarize string
	if sectionTitle != "" {
		section, ok := findSection(doc.Metadata.Sections, sectionTitle)
		if !ok {
			return "", fmt.Errorf("%w: %q", types.ErrSectionNotFound, sectionTitle)
		}
		contentToSummarize = section.Content
	} else {
		var b strings.Builder
		b.WriteString(doc.Metadata.Abstract)
		b.WriteString("\n\n")
		for _, section := range doc.Metadata.Sections {
			fmt.Fprintf(&b, "%s:\n%s\n\n", section.Title, section.Content)
		}
		contentToSummarize = b.String()
	}

	if strings.TrimSpace(contentToSummarize) == "" {
		return NoContentSentinel, nil
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, granularity, contentToSummarize)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	summary, err := s.aiService.GenerateText(callCtx, prompt, 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// findSection returns the first case-insensitive title match. Titles are not
// unique; first match wins.
func findSection(sections []types.Section, title string) (types.Section, bool) {
	for _, section := range sections {
		if strings.EqualFold(section.Title, title) {
			return section, true
		}
	}
	return types.Section{}, false
}

// ExtractData asks the model for a flat JSON object of key/value pairs
// relevant to query, evaluated against the document's full metadata. A
// response that cannot be parsed as JSON does not fail the operation; the
// result degrades to a single-key error object instead.
func (s *DocumentService) ExtractData(ctx context.Context, documentID, query string) (*ExtractionResult, error) {
	doc, err := s.store.Get(documentID)
	if err != nil {
		return nil, err
	}

	content, err := json.MarshalIndent(doc.Metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document metadata: %w", err)
	}
	prompt := fmt.Sprintf(extractDataPromptTemplate, query, content, query)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	raw, err := s.aiService.GenerateJSON(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Printf("Warning: model did not return valid JSON for extraction: %v", err)
		return &ExtractionResult{
			Data:     map[string]interface{}{"error": "Could not parse extracted results as JSON."},
			Degraded: true,
		}, nil
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return &ExtractionResult{Data: data}, nil
}

// callContext derives the per-call budget. A zero timeout disables it.
func (s *DocumentService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}
