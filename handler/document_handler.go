package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-be/service"
	"docqa-be/store"
	"docqa-be/types"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	store           *store.DocumentStore
	maxUploadSize   int64
}

func NewDocumentHandler(documentService *service.DocumentService, docStore *store.DocumentStore, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		store:           docStore,
		maxUploadSize:   maxUploadSize,
	}
}

// HandleUpload ingests a PDF from a multipart form. Validation is
// content-based, so a mislabeled file still gets rejected downstream.
func (h *DocumentHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}
	defer file.Close()

	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "File too large",
		})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Failed to read file",
		})
		return
	}

	doc, err := h.documentService.ProcessDocument(c.Request.Context(), content, header.Filename)
	if err != nil {
		if errors.Is(err, types.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: err.Error(),
			})
			return
		}
		log.Printf("Error processing document %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to process document: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.UploadResponse{
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			Message:    "Document uploaded and processed successfully.",
		},
	})
}

// HandleGetDocument returns the full processed document.
func (h *DocumentHandler) HandleGetDocument(c *gin.Context) {
	doc, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: "Document not found.",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   doc,
	})
}
