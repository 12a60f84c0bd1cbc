package service

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

const defaultRenderDPI = 150

// PDFRenderer is the rasterization capability consumed by the ingestion
// pipeline. Tests substitute a fake.
type PDFRenderer interface {
	// RenderPages renders every page of the document to an independent PNG
	// image, in page order.
	RenderPages(content []byte) ([][]byte, error)

	// ExtractPlainText returns a best-effort flat text representation of the
	// document, or an empty string when nothing can be extracted.
	ExtractPlainText(content []byte) string
}

// PDFService renders PDF pages with MuPDF and extracts flat text as a
// fallback for responses that carry no text_content field.
type PDFService struct {
	dpi float64
}

func NewPDFService(dpi float64) *PDFService {
	if dpi <= 0 {
		dpi = defaultRenderDPI
	}
	return &PDFService{dpi: dpi}
}

func (s *PDFService) RenderPages(content []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImagePNG(n, s.dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", n+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

func (s *PDFService) ExtractPlainText(content []byte) (text string) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: text extraction panicked: %v", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		log.Printf("Warning: failed to open PDF for text extraction: %v", err)
		return ""
	}
	plainText, err := reader.GetPlainText()
	if err != nil {
		log.Printf("Warning: failed to extract plain text: %v", err)
		return ""
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plainText); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
