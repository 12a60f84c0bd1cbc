package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa-be/service"
	"docqa-be/store"
	"docqa-be/types"
)

// pdfContent sniffs as application/pdf; the fake renderer never parses it.
var pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF")

type fakeAI struct {
	visionResponse string
	visionErr      error
	textResponse   string
	textErr        error
	jsonResponse   string
	jsonErr        error

	visionCalls     int
	textCalls       int
	jsonCalls       int
	lastPrompt      string
	lastTemperature float32
	lastPages       [][]byte
}

func (f *fakeAI) GenerateVisionJSON(_ context.Context, prompt string, pages [][]byte) (string, error) {
	f.visionCalls++
	f.lastPrompt = prompt
	f.lastPages = pages
	return f.visionResponse, f.visionErr
}

func (f *fakeAI) GenerateText(_ context.Context, prompt string, temperature float32) (string, error) {
	f.textCalls++
	f.lastPrompt = prompt
	f.lastTemperature = temperature
	return f.textResponse, f.textErr
}

func (f *fakeAI) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.jsonCalls++
	f.lastPrompt = prompt
	return f.jsonResponse, f.jsonErr
}

type fakeRenderer struct {
	pages     [][]byte
	renderErr error
	plainText string
}

func (f *fakeRenderer) RenderPages(_ []byte) ([][]byte, error) {
	return f.pages, f.renderErr
}

func (f *fakeRenderer) ExtractPlainText(_ []byte) string {
	return f.plainText
}

func newTestService(ai service.AIService, renderer service.PDFRenderer) (*service.DocumentService, *store.DocumentStore) {
	docStore := store.NewDocumentStore()
	return service.NewDocumentService(ai, renderer, docStore, "", 0), docStore
}

func TestProcessDocument(t *testing.T) {
	ai := &fakeAI{
		visionResponse: `{
			"title": "Attention Is All You Need",
			"abstract": "We propose the Transformer.",
			"sections": [{"title": "Introduction", "content": "Sequence models..."}],
			"references": ["Bahdanau et al., 2014"]
		}`,
	}
	renderer := &fakeRenderer{pages: [][]byte{[]byte("page-1"), []byte("page-2")}, plainText: "flat text"}
	svc, docStore := newTestService(ai, renderer)

	doc, err := svc.ProcessDocument(context.Background(), pdfContent, "paper.pdf")
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "paper.pdf", doc.Filename)
	assert.Equal(t, "Attention Is All You Need", doc.Metadata.Title)
	require.Len(t, doc.Metadata.Sections, 1)
	assert.Equal(t, "Introduction", doc.Metadata.Sections[0].Title)
	// No text_content in the response, so the flat-text fallback applies.
	assert.Equal(t, "flat text", doc.ExtractedText)

	// Every rendered page goes into the single extraction request, in order.
	assert.Equal(t, 1, ai.visionCalls)
	assert.Equal(t, renderer.pages, ai.lastPages)

	assert.True(t, docStore.Exists(doc.ID))
	stored, err := docStore.Get(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, stored)
}

func TestProcessDocumentRejectsNonPDF(t *testing.T) {
	ai := &fakeAI{}
	renderer := &fakeRenderer{pages: [][]byte{[]byte("page-1")}}
	svc, _ := newTestService(ai, renderer)

	// A plain text payload with a .pdf filename must still be rejected.
	_, err := svc.ProcessDocument(context.Background(), []byte("hello, world"), "mislabeled.pdf")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
	assert.Zero(t, ai.visionCalls)
}

func TestProcessDocumentConversionFailure(t *testing.T) {
	ai := &fakeAI{}
	renderer := &fakeRenderer{renderErr: errors.New("page 3 is corrupt")}
	svc, _ := newTestService(ai, renderer)

	_, err := svc.ProcessDocument(context.Background(), pdfContent, "paper.pdf")
	assert.ErrorIs(t, err, types.ErrConversionFailed)
	assert.Contains(t, err.Error(), "page 3 is corrupt")
	assert.Zero(t, ai.visionCalls)
}

func TestProcessDocumentExtractionFailure(t *testing.T) {
	tests := []struct {
		name string
		ai   *fakeAI
	}{
		{
			name: "capability unreachable",
			ai:   &fakeAI{visionErr: errors.New("connection refused")},
		},
		{
			name: "response not a JSON object",
			ai:   &fakeAI{visionResponse: "I could not read the document."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &fakeRenderer{pages: [][]byte{[]byte("page-1")}}
			svc, _ := newTestService(tt.ai, renderer)

			_, err := svc.ProcessDocument(context.Background(), pdfContent, "paper.pdf")
			assert.ErrorIs(t, err, types.ErrExtractionFailed)
		})
	}
}

func TestProcessDocumentPermissiveDecoding(t *testing.T) {
	// Missing fields become empty values rather than failing ingestion.
	ai := &fakeAI{visionResponse: `{"title": "Only a Title"}`}
	renderer := &fakeRenderer{pages: [][]byte{[]byte("page-1")}}
	svc, _ := newTestService(ai, renderer)

	doc, err := svc.ProcessDocument(context.Background(), pdfContent, "paper.pdf")
	require.NoError(t, err)

	assert.Equal(t, "Only a Title", doc.Metadata.Title)
	assert.Empty(t, doc.Metadata.Abstract)
	assert.NotNil(t, doc.Metadata.Sections)
	assert.Empty(t, doc.Metadata.Sections)
	assert.NotNil(t, doc.Metadata.References)
	assert.Empty(t, doc.Metadata.References)
	assert.Empty(t, doc.ExtractedText)
}

func TestProcessDocumentSalvagesMistypedFields(t *testing.T) {
	// sections has the wrong shape; title and abstract still decode.
	ai := &fakeAI{visionResponse: `{"title": "T", "abstract": "A", "sections": "none"}`}
	renderer := &fakeRenderer{pages: [][]byte{[]byte("page-1")}}
	svc, _ := newTestService(ai, renderer)

	doc, err := svc.ProcessDocument(context.Background(), pdfContent, "paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, "T", doc.Metadata.Title)
	assert.Equal(t, "A", doc.Metadata.Abstract)
	assert.Empty(t, doc.Metadata.Sections)
}

func TestProcessDocumentUsesTextContentField(t *testing.T) {
	ai := &fakeAI{visionResponse: `{"title": "T", "text_content": "model-provided text"}`}
	renderer := &fakeRenderer{pages: [][]byte{[]byte("page-1")}, plainText: "fallback text"}
	svc, _ := newTestService(ai, renderer)

	doc, err := svc.ProcessDocument(context.Background(), pdfContent, "paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, "model-provided text", doc.ExtractedText)
}

func registerDocument(t *testing.T, docStore *store.DocumentStore, metadata types.DocumentMetadata) string {
	t.Helper()
	doc := &types.ProcessedDocument{
		ID:       "doc-1",
		Filename: "paper.pdf",
		Metadata: metadata,
	}
	require.NoError(t, docStore.Put(doc))
	return doc.ID
}

func TestAnswer(t *testing.T) {
	ai := &fakeAI{textResponse: "  The accuracy is 95.2%.  \n"}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{
		Title:    "A Paper",
		Abstract: "An abstract",
	})

	answer, err := svc.Answer(context.Background(), id, "What is the accuracy?")
	require.NoError(t, err)

	assert.Equal(t, "The accuracy is 95.2%.", answer)
	assert.InDelta(t, 0.2, ai.lastTemperature, 0.001)
	// The full structured metadata is embedded in the instruction.
	assert.Contains(t, ai.lastPrompt, "A Paper")
	assert.Contains(t, ai.lastPrompt, "What is the accuracy?")
}

func TestAnswerUnknownDocument(t *testing.T) {
	svc, _ := newTestService(&fakeAI{}, &fakeRenderer{})

	_, err := svc.Answer(context.Background(), "missing", "question")
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)
}

func TestSummarizeWholeDocument(t *testing.T) {
	ai := &fakeAI{textResponse: "A short summary."}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{
		Abstract: "The abstract.",
		Sections: []types.Section{
			{Title: "Introduction", Content: "Intro content."},
			{Title: "Methods", Content: "Methods content."},
		},
	})

	summary, err := svc.Summarize(context.Background(), id, "", "detailed")
	require.NoError(t, err)

	assert.Equal(t, "A short summary.", summary)
	assert.InDelta(t, 0.3, ai.lastTemperature, 0.001)
	// Abstract plus every section, in document order, with the granularity
	// passed through verbatim.
	assert.Contains(t, ai.lastPrompt, "Granularity: detailed.")
	assert.Contains(t, ai.lastPrompt, "The abstract.")
	assert.Contains(t, ai.lastPrompt, "Introduction:\nIntro content.")
	assert.Contains(t, ai.lastPrompt, "Methods:\nMethods content.")
}

func TestSummarizeSection(t *testing.T) {
	ai := &fakeAI{textResponse: "Summary of methods."}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{
		Sections: []types.Section{
			{Title: "Introduction", Content: "Intro content."},
			{Title: "Methods", Content: "Methods content."},
		},
	})

	// Lookup differs only in case from the stored title.
	summary, err := svc.Summarize(context.Background(), id, "METHODS", "overview")
	require.NoError(t, err)

	assert.Equal(t, "Summary of methods.", summary)
	assert.Contains(t, ai.lastPrompt, "Methods content.")
	assert.NotContains(t, ai.lastPrompt, "Intro content.")
}

func TestSummarizeFirstMatchWins(t *testing.T) {
	ai := &fakeAI{textResponse: "Summary."}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{
		Sections: []types.Section{
			{Title: "Results", Content: "First results section."},
			{Title: "Results", Content: "Second results section."},
		},
	})

	_, err := svc.Summarize(context.Background(), id, "results", "")
	require.NoError(t, err)
	assert.Contains(t, ai.lastPrompt, "First results section.")
	assert.NotContains(t, ai.lastPrompt, "Second results section.")
}

func TestSummarizeSectionNotFound(t *testing.T) {
	ai := &fakeAI{}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{
		Sections: []types.Section{{Title: "Introduction", Content: "..."}},
	})

	_, err := svc.Summarize(context.Background(), id, "Conclusion", "overview")
	assert.ErrorIs(t, err, types.ErrSectionNotFound)
	assert.Zero(t, ai.textCalls)
}

func TestSummarizeEmptyContentSentinel(t *testing.T) {
	ai := &fakeAI{}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{})

	summary, err := svc.Summarize(context.Background(), id, "", "overview")
	require.NoError(t, err)

	assert.Equal(t, service.NoContentSentinel, summary)
	// The sentinel short-circuits before any capability call.
	assert.Zero(t, ai.textCalls)
}

func TestSummarizeUnknownDocument(t *testing.T) {
	svc, _ := newTestService(&fakeAI{}, &fakeRenderer{})

	_, err := svc.Summarize(context.Background(), "missing", "", "overview")
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)
}

func TestExtractData(t *testing.T) {
	ai := &fakeAI{jsonResponse: `{"accuracy": "95.2%", "f1_score": "0.89"}`}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{Title: "A Paper"})

	result, err := svc.ExtractData(context.Background(), id, "accuracy and F1-score")
	require.NoError(t, err)

	assert.False(t, result.Degraded)
	assert.Equal(t, map[string]interface{}{
		"accuracy": "95.2%",
		"f1_score": "0.89",
	}, result.Data)
	assert.Contains(t, ai.lastPrompt, "accuracy and F1-score")
}

func TestExtractDataDegradesOnInvalidJSON(t *testing.T) {
	ai := &fakeAI{jsonResponse: "this is not json"}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{Title: "A Paper"})

	result, err := svc.ExtractData(context.Background(), id, "key findings")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, map[string]interface{}{
		"error": "Could not parse extracted results as JSON.",
	}, result.Data)
}

func TestExtractDataCapabilityFailurePropagates(t *testing.T) {
	ai := &fakeAI{jsonErr: errors.New("rate limited")}
	svc, docStore := newTestService(ai, &fakeRenderer{})
	id := registerDocument(t, docStore, types.DocumentMetadata{Title: "A Paper"})

	_, err := svc.ExtractData(context.Background(), id, "key findings")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrDocumentNotFound)
}

func TestExtractDataUnknownDocument(t *testing.T) {
	svc, _ := newTestService(&fakeAI{}, &fakeRenderer{})

	_, err := svc.ExtractData(context.Background(), "missing", "query")
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)
}
