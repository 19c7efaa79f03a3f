package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("plain text")))
	assert.False(t, IsPDF(nil))
}

func TestExtractBytes_NotAPDF(t *testing.T) {
	_, err := ExtractBytes([]byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestExtractBytes_Empty(t *testing.T) {
	_, err := ExtractBytes(nil)
	assert.Error(t, err)
}
