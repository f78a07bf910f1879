// Package gdocai connects hybridoc to Google Document AI.
//
// A PDF is sent to a Document AI OCR processor and the response is converted
// into the canonical layout model (pages, lines with text spans, tables with a
// declared shape) plus one rendered image per page. The result feeds straight
// into hybrid.Assemble.
//
// Key Features:
//
// - Process PDFs with Google Document AI, retrying transient failures
// - Convert pages, lines and tables into the canonical layout model
// - Resolve row and column spans of table cells into grid coordinates
// - Extract page images with their natural dimensions
// - Dump the raw response as JSON for debugging
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - LayoutFromProto: Converts a Document AI response to the layout model
// - PageImages: Extracts the page images of a response
// - Analyze: Processes a document and returns layout and images together
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via a credentials file or GOOGLE_APPLICATION_CREDENTIALS
package gdocai

import (
	"context"
	"fmt"
)

// Analyze processes a PDF with Document AI and converts the response.
// It handles the complete process from PDF bytes to layout and page images.
func Analyze(ctx context.Context, pdfBytes []byte, cfg *Config) (*Analysis, error) {
	rawDoc, err := ProcessDocument(ctx, pdfBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze document: %w", err)
	}

	return &Analysis{
		Raw:    rawDoc,
		Layout: LayoutFromProto(rawDoc),
		Images: PageImages(rawDoc),
	}, nil
}
