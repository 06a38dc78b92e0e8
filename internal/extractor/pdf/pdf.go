// Package pdf extracts plain text and page-break offsets from PDF files.
package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"pdfqa/internal/domain"
)

// Extractor reads PDF files via the ledongthuc/pdf parser.
type Extractor struct {
	log *logrus.Logger
}

// New creates a PDF extractor. A nil logger falls back to the logrus
// standard logger.
func New(log *logrus.Logger) *Extractor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Extractor{log: log}
}

// Extract reads every page of the PDF at path and returns the concatenated
// plain text with the character offset at which each page ends. Pages whose
// text cannot be decoded are skipped with a warning; their page break still
// advances so later page numbers stay correct.
func (e *Extractor) Extract(path string) (domain.ExtractedDocument, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return domain.ExtractedDocument{}, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	pageCount := reader.NumPage()
	var text strings.Builder
	breaks := make([]int, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			breaks = append(breaks, text.Len())
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			e.log.WithFields(logrus.Fields{"path": path, "page": i}).
				WithError(err).Warn("skipping undecodable page")
			breaks = append(breaks, text.Len())
			continue
		}
		content = strings.TrimSpace(content)
		if content != "" {
			text.WriteString(content)
			if i < pageCount {
				text.WriteString("\n\n")
			}
		}
		breaks = append(breaks, text.Len())
	}

	doc := domain.ExtractedDocument{
		Text:       text.String(),
		PageBreaks: breaks,
		PageCount:  pageCount,
	}
	e.log.WithFields(logrus.Fields{
		"path":  path,
		"pages": pageCount,
		"chars": len(doc.Text),
	}).Info("extracted pdf")
	return doc, nil
}
