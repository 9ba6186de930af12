// api/util/document_test.go

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("policy.txt", []byte("%PDF-1.7 ...")))
	assert.True(t, IsPDF("policy.pdf", []byte("not really")))
	assert.True(t, IsPDF("POLICY.PDF", nil))
	assert.False(t, IsPDF("policy.txt", []byte("Employees must work 20 days.")))
}

func TestExtractDocumentTextPlain(t *testing.T) {
	text := "Employees must work at least 20 days per month."

	got, err := ExtractDocumentText("policy.txt", []byte(text))
	assert.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestExtractDocumentTextBadPDF(t *testing.T) {
	// A PDF header with garbage behind it should fail cleanly rather
	// than being returned as policy text.
	_, err := ExtractDocumentText("policy.pdf", []byte("%PDF-1.7 garbage"))
	assert.Error(t, err)
}
