package services

import (
	"bytes"
	"testing"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePDF(t *testing.T) {
	analysis := ScoreProfile(models.PlatformLinkedIn, "recruiter_desk2024")
	analysis.Recommendations = append(analysis.Recommendations, "Vérifier l'identité")

	pdf, err := NewPDFService().Generate(&dto.GenerateReportRequest{
		Analysis: analysis,
		ImageVerification: &dto.ImageVerificationResult{
			Format: "jpeg", Width: 400, Height: 400, Verdict: VerdictSuspicious,
			Matches: []dto.ReverseSearchMatch{{Source: "stock-archive", URL: "https://stock-archive.example.com/img/1", Similarity: 0.91}},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Greater(t, len(pdf), 1000)
}

func TestGeneratePDFRequiresAnalysis(t *testing.T) {
	_, err := NewPDFService().Generate(&dto.GenerateReportRequest{})
	assert.ErrorIs(t, err, ErrAnalysisRequired)

	_, err = NewPDFService().Generate(nil)
	assert.ErrorIs(t, err, ErrAnalysisRequired)
}
