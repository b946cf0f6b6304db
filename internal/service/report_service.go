package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"studentia/internal/model"
	"studentia/internal/util"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type ReportConfig struct {
	PageSize   string
	MarginsMM  float64
	FontFamily string
}

// ReportService 将评分结果渲染为可下载的 PDF 成绩单
type ReportService struct {
	cfg ReportConfig
}

func NewReportService(cfg ReportConfig) *ReportService {
	if cfg.PageSize == "" {
		cfg.PageSize = "A4"
	}
	if cfg.MarginsMM == 0 {
		cfg.MarginsMM = 15
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Helvetica"
	}
	return &ReportService{cfg: cfg}
}

func reportTitle(documentName string) string {
	name := strings.TrimSuffix(filepath.Base(documentName), filepath.Ext(documentName))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if strings.TrimSpace(name) == "" || name == "." {
		return "Quiz Report"
	}
	return "Quiz Report: " + cases.Title(language.English).String(name)
}

func (r *ReportService) Render(session *model.QuizSession, result *QuizResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", r.cfg.PageSize, "")
	pdf.SetMargins(r.cfg.MarginsMM, r.cfg.MarginsMM, r.cfg.MarginsMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := reportTitle(session.DocumentName)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	// ---------- title ----------
	pdf.SetFont(r.cfg.FontFamily, "B", 20)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont(r.cfg.FontFamily, "", 10)
	pdf.CellFormat(0, 6, session.CreatedAt.Format(util.TimeFormat), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ---------- score ----------
	pdf.SetFont(r.cfg.FontFamily, "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Score: %d/%d (%.1f%%)",
		result.Score.CorrectCount, result.Score.Total, result.Score.AccuracyPercent), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ---------- questions ----------
	for _, line := range result.Results {
		q, _ := session.Question(line.Index)

		pdf.SetFont(r.cfg.FontFamily, "B", 12)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("Q%d: %s", q.Index, q.Text)), "", "L", false)
		pdf.SetFont(r.cfg.FontFamily, "", 11)
		for _, opt := range q.Options {
			pdf.MultiCell(0, 6, tr(opt), "", "L", false)
		}
		if line.Correct {
			pdf.SetTextColor(0, 128, 0)
		} else {
			pdf.SetTextColor(192, 0, 0)
		}
		pdf.MultiCell(0, 6, tr(line.Message), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
	}

	// ---------- feedback ----------
	if result.Feedback != "" {
		pdf.SetFont(r.cfg.FontFamily, "B", 14)
		pdf.CellFormat(0, 8, "Feedback", "", 1, "L", false, 0, "")
		pdf.SetFont(r.cfg.FontFamily, "", 11)
		pdf.MultiCell(0, 6, tr(result.Feedback), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
