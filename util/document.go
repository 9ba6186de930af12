// api/util/document.go

package util

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// IsPDF reports whether the uploaded bytes look like a PDF document,
// checking the file header first and falling back to the extension.
func IsPDF(filename string, data []byte) bool {
	if bytes.HasPrefix(data, pdfMagic) {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// ExtractDocumentText returns the plain text of an uploaded policy file.
// PDF files are parsed page by page; anything else is treated as UTF-8 text.
func ExtractDocumentText(filename string, data []byte) (string, error) {
	if IsPDF(filename, data) {
		return extractPDFText(data)
	}
	return string(data), nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
