package service

import (
	"fmt"
	"io"
	"strings"
	"studentia/internal/util"
	"studentia/pkg/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// DocumentExtractor 从上传的文档中提取纯文本
type DocumentExtractor interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

// PDFExtractor 逐页提取 PDF 文本并拼接，没有文本层的页面贡献空串
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	// 损坏的文件可能让解析库 panic
	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Warn("PDF parser panicked", zap.Any("panic", rec))
			text, err = "", fmt.Errorf("%w: %v", util.ErrUnreadableDocument, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrUnreadableDocument, err)
	}

	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		content, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Log.Debug("Skipping page without text layer", zap.Int("page", i), zap.Error(err))
			continue
		}
		sb.WriteString(content)
	}

	return sb.String(), nil
}
