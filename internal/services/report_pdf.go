package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/go-pdf/fpdf"
)

var ErrAnalysisRequired = errors.New("analysis is required to generate a report")

type PDFService struct {
	now func() time.Time
}

func NewPDFService() *PDFService {
	return &PDFService{now: time.Now}
}

// Generate renders an analysis, and optionally an image verification, as an A4 PDF.
func (s *PDFService) Generate(req *dto.GenerateReportRequest) ([]byte, error) {
	if req == nil || req.Analysis == nil {
		return nil, ErrAnalysisRequired
	}
	a := req.Analysis
	generated := s.now().UTC()

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("FakeGuard profile report", true)
	pdf.SetCreator("FakeGuard", true)
	pdf.SetCreationDate(generated)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Demo report - simulated data - page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Profile Risk Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, "Generated "+generated.Format(time.RFC1123), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	section(pdf, "Profile")
	row(pdf, tr, "Username", "@"+a.Username)
	row(pdf, tr, "Platform", string(a.Platform))
	if a.ProfileURL != "" {
		row(pdf, tr, "Profile URL", a.ProfileURL)
	}
	row(pdf, tr, "Analyzed", a.AnalyzedAt.UTC().Format(time.RFC3339))
	pdf.Ln(3)

	section(pdf, "Risk")
	r, g, b := levelColor(string(a.RiskLevel))
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 9, fmt.Sprintf("%d / 100  (%s)", a.RiskScore, strings.ToUpper(string(a.RiskLevel))), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	row(pdf, tr, "Fake probability", fmt.Sprintf("%.0f%%", a.FakeProbability*100))
	row(pdf, tr, "Confidence", fmt.Sprintf("%.0f%%", a.Confidence*100))
	row(pdf, tr, "Likely fake", yesNo(a.IsLikelyFake))
	pdf.Ln(3)

	section(pdf, "Indicators")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(60, 7, "Indicator", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Weight", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Triggered", "1", 0, "C", true, 0, "")
	pdf.CellFormat(0, 7, "Detail", "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, ind := range a.Indicators {
		pdf.CellFormat(60, 7, tr(ind.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", ind.Weight), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, yesNo(ind.Triggered), "1", 0, "C", false, 0, "")
		pdf.CellFormat(0, 7, tr(ind.Description), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	section(pdf, "Account metrics")
	m := a.Metrics
	row(pdf, tr, "Account age", fmt.Sprintf("%d days", m.AccountAgeDays))
	row(pdf, tr, "Followers / following", fmt.Sprintf("%d / %d (ratio %.2f)", m.Followers, m.Following, m.FollowerRatio))
	row(pdf, tr, "Posts per day", fmt.Sprintf("%.1f", m.PostsPerDay))
	row(pdf, tr, "Engagement rate", fmt.Sprintf("%.1f%%", m.EngagementRate))
	pdf.Ln(3)

	if len(a.Recommendations) > 0 {
		section(pdf, "Recommendations")
		pdf.SetFont("Helvetica", "", 10)
		for _, rec := range a.Recommendations {
			pdf.MultiCell(0, 6, tr("- "+rec), "", "L", false)
		}
		pdf.Ln(3)
	}

	if iv := req.ImageVerification; iv != nil {
		section(pdf, "Image verification")
		row(pdf, tr, "Verdict", iv.Verdict)
		row(pdf, tr, "Format", fmt.Sprintf("%s %dx%d, %d bytes", iv.Format, iv.Width, iv.Height, iv.SizeBytes))
		row(pdf, tr, "Manipulation score", fmt.Sprintf("%d", iv.ManipulationScore))
		row(pdf, tr, "AI-generated score", fmt.Sprintf("%d", iv.AIGeneratedScore))
		row(pdf, tr, "Stock photo", yesNo(iv.IsStockPhoto))
		for _, match := range iv.Matches {
			row(pdf, tr, "Match", fmt.Sprintf("%s (%.0f%%)", match.URL, match.Similarity*100))
		}
		row(pdf, tr, "SHA-256", iv.SHA256)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func row(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func levelColor(level string) (int, int, int) {
	switch level {
	case "critical":
		return 176, 0, 32
	case "high":
		return 220, 80, 20
	case "medium":
		return 200, 150, 0
	default:
		return 30, 140, 60
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
