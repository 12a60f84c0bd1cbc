package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-be/service"
	"docqa-be/types"
)

type SearchHandler struct {
	arxivService *service.ArxivService
}

func NewSearchHandler(arxivService *service.ArxivService) *SearchHandler {
	return &SearchHandler{
		arxivService: arxivService,
	}
}

// HandleArxivSearch looks up papers on arXiv. The search is best-effort: an
// upstream failure yields an empty paper list, never an error response.
func (h *SearchHandler) HandleArxivSearch(c *gin.Context) {
	var req types.ArxivSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	papers, degraded := h.arxivService.Search(c.Request.Context(), req.Query, req.MaxResults)
	if degraded {
		log.Printf("arXiv search for %q degraded to empty result", req.Query)
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ArxivSearchResponse{
			Query:  req.Query,
			Papers: papers,
		},
	})
}
