package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fakeguard/fakeguard/internal/dto"
)

// ErrEmptyPDF is returned for a zero-byte report download or save.
var ErrEmptyPDF = errors.New("pdf is empty")

func (c *Client) AnalyzeProfile(ctx context.Context, req dto.AnalyzeProfileRequest) (*dto.AnalysisResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		c.fail("Analysis failed", err)
		return nil, err
	}

	var out dto.AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/analyze-profile", req, &out, false); err != nil {
		c.fail("Analysis failed", err)
		return nil, err
	}
	return &out, nil
}

// VerifyImage uploads raw image bytes as multipart field "image".
func (c *Client) VerifyImage(ctx context.Context, filename string, data []byte) (*dto.ImageVerificationResult, error) {
	if len(data) == 0 {
		err := errors.New("image is empty")
		c.fail("Image verification failed", err)
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/verify-image", &buf, mw.FormDataContentType(), false)
	if err != nil {
		c.fail("Image verification failed", err)
		return nil, err
	}
	defer resp.Body.Close()

	var out dto.ImageVerificationResult
	if err := decodeJSON(resp.Body, &out); err != nil {
		c.fail("Image verification failed", err)
		return nil, err
	}
	return &out, nil
}

// DownloadReport renders the PDF for an analysis and returns its bytes.
func (c *Client) DownloadReport(ctx context.Context, req dto.GenerateReportRequest) ([]byte, error) {
	if req.Analysis == nil {
		err := errors.New("analysis result is required")
		c.fail("Report download failed", err)
		return nil, err
	}

	payload, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/generate-report", payload, "application/json", false)
	if err != nil {
		c.fail("Report download failed", err)
		return nil, err
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fail("Report download failed", err)
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	if len(blob) == 0 {
		c.fail("Report download failed", ErrEmptyPDF)
		return nil, ErrEmptyPDF
	}
	return blob, nil
}

// SavePDF writes a downloaded report to disk, refusing empty blobs.
func SavePDF(path string, blob []byte) error {
	if len(blob) == 0 {
		return ErrEmptyPDF
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	return os.WriteFile(path, blob, 0o644)
}
