package service

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"docqa-be/types"
)

const (
	DefaultArxivBaseURL = "http://export.arxiv.org/api/query"

	defaultMaxResults = 5
)

// ArxivService queries the arXiv Atom API for papers matching a free-text
// query. It is a best-effort enrichment: any failure degrades to an empty
// result list instead of surfacing an error.
type ArxivService struct {
	baseURL string
	client  *http.Client
}

func NewArxivService(baseURL string, timeout time.Duration) *ArxivService {
	if baseURL == "" {
		baseURL = DefaultArxivBaseURL
	}
	return &ArxivService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search returns up to maxResults papers ranked by relevance, descending.
// The second return value reports whether the result degraded to empty
// because the upstream call or its parsing failed.
func (s *ArxivService) Search(ctx context.Context, query string, maxResults int) ([]types.ArxivPaper, bool) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("Error building arXiv request: %v", err)
		return []types.ArxivPaper{}, true
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Error calling arXiv API: %v", err)
		return []types.ArxivPaper{}, true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("arXiv API returned status %d", resp.StatusCode)
		return []types.ArxivPaper{}, true
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("Error parsing arXiv response: %v", err)
		return []types.ArxivPaper{}, true
	}

	papers := make([]types.ArxivPaper, 0, maxResults)
	doc.Find("entry").Each(func(_ int, entry *goquery.Selection) {
		if len(papers) >= maxResults {
			return
		}
		authors := make([]string, 0)
		entry.Find("author name").Each(func(_ int, name *goquery.Selection) {
			authors = append(authors, strings.TrimSpace(name.Text()))
		})
		papers = append(papers, types.ArxivPaper{
			Title:     strings.TrimSpace(entry.Find("title").First().Text()),
			Authors:   authors,
			Summary:   strings.TrimSpace(entry.Find("summary").First().Text()),
			URL:       strings.TrimSpace(entry.Find("id").First().Text()),
			Published: strings.TrimSpace(entry.Find("published").First().Text()),
		})
	})

	return papers, false
}
