package service

import (
	"bytes"
	"errors"
	"testing"

	"studentia/internal/util"
)

func TestPDFExtractorRejectsNonPDF(t *testing.T) {
	data := []byte("this is not a pdf document at all")
	_, err := NewPDFExtractor().ExtractText(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, util.ErrUnreadableDocument) {
		t.Errorf("err = %v, want ErrUnreadableDocument", err)
	}
}
