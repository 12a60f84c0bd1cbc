package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-be/service"
	"docqa-be/types"
)

type QueryHandler struct {
	documentService *service.DocumentService
}

func NewQueryHandler(documentService *service.DocumentService) *QueryHandler {
	return &QueryHandler{
		documentService: documentService,
	}
}

// HandleQuery answers a question against an uploaded document.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	answer, err := h.documentService.Answer(c.Request.Context(), req.DocumentID, req.Question)
	if err != nil {
		c.JSON(statusFromError(err), types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.AnswerResponse{
			DocumentID: req.DocumentID,
			Question:   req.Question,
			Answer:     answer,
		},
	})
}

// HandleSummarize summarizes the whole document or one named section.
func (h *QueryHandler) HandleSummarize(c *gin.Context) {
	var req types.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	summary, err := h.documentService.Summarize(c.Request.Context(), req.DocumentID, req.SectionTitle, req.Granularity)
	if err != nil {
		c.JSON(statusFromError(err), types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.SummaryResponse{
			DocumentID:   req.DocumentID,
			SectionTitle: req.SectionTitle,
			Summary:      summary,
		},
	})
}

// HandleExtract extracts key/value data points relevant to a free-text
// query. A model response that is not valid JSON degrades to an error
// object instead of failing the request.
func (h *QueryHandler) HandleExtract(c *gin.Context) {
	var req types.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	result, err := h.documentService.ExtractData(c.Request.Context(), req.DocumentID, req.Query)
	if err != nil {
		c.JSON(statusFromError(err), types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}
	if result.Degraded {
		log.Printf("Extraction for document %s degraded to error object", req.DocumentID)
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ExtractionResponse{
			DocumentID:    req.DocumentID,
			Query:         req.Query,
			ExtractedData: result.Data,
		},
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrDocumentNotFound), errors.Is(err, types.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
