package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *RecordingNotifier, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	notes := &RecordingNotifier{}
	c := New(srv.URL,
		WithHTTPClient(srv.Client()),
		WithNotifier(notes),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return c, notes, &hits
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func validForm() dto.CreateReportRequest {
	return dto.CreateReportRequest{
		Username: "@fake_celebrity",
		Platform: models.PlatformTwitter,
		Reason:   "Impersonating a public figure and asking for crypto.",
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	assert.Equal(t, DefaultBaseURL, BaseURLFromEnv())

	t.Setenv(EnvBaseURL, "https://api.example.test/")
	assert.Equal(t, "https://api.example.test", BaseURLFromEnv())
	assert.Equal(t, "https://api.example.test", New("").BaseURL())
}

func TestSubmitReportSuccess(t *testing.T) {
	c, notes, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/report", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body dto.CreateReportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fake_celebrity", body.Username)

		writeJSON(w, http.StatusCreated, models.Report{Username: body.Username, Platform: body.Platform, Status: models.ReportPending})
	})

	res := c.SubmitReport(context.Background(), validForm())

	require.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, models.ReportPending, res.Report.Status)
	toasts := notes.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, ToastSuccess, toasts[0].Level)
}

func TestSubmitReportValidationNeverHitsNetwork(t *testing.T) {
	c, notes, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	tests := []struct {
		name  string
		edit  func(*dto.CreateReportRequest)
		field string
	}{
		{"short username", func(f *dto.CreateReportRequest) { f.Username = "a" }, "username"},
		{"short reason", func(f *dto.CreateReportRequest) { f.Reason = "too short" }, "reason"},
		{"long reason", func(f *dto.CreateReportRequest) { f.Reason = strings.Repeat("x", 1001) }, "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.edit(&form)
			res := c.SubmitReport(context.Background(), form)
			assert.False(t, res.Success)
			assert.Contains(t, res.Fields, tt.field)
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	assert.Len(t, notes.Toasts(), len(tests))
}

func TestSubmitReportHTTPFailure(t *testing.T) {
	c, notes, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: true, Message: "Internal server error"})
	})

	res := c.SubmitReport(context.Background(), validForm())

	assert.False(t, res.Success)
	assert.Equal(t, "Internal server error", res.Error)
	toasts := notes.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, ToastError, toasts[0].Level)
}

func TestSubmitReportUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	notes := &RecordingNotifier{}
	c := New(url, WithNotifier(notes), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	res := c.SubmitReport(context.Background(), validForm())
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Len(t, notes.Toasts(), 1)
}

func TestReadsRequireToken(t *testing.T) {
	c, notes, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})
	ctx := context.Background()

	_, err := c.GetReports(ctx, ReportQuery{})
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = c.GetAlerts(ctx, AlertQuery{})
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = c.GetAlert(ctx, "8c0a4f0e-0d4b-4a3e-9d7c-5b2f1e0a9b11")
	assert.ErrorIs(t, err, ErrMissingToken)

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	assert.Len(t, notes.Toasts(), 3)
}

func TestGetAlertsSendsBearerAndFilters(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "high", r.URL.Query().Get("level"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, dto.AlertListResponse{
			Alerts: []models.Alert{{AlertLevel: models.LevelHigh, Profile: models.ProfileRef{Username: "bot_4821"}}},
			Total:  1,
			Limit:  5,
		})
	})
	require.NoError(t, c.Tokens().Save("tok-123"))

	out, err := c.GetAlerts(context.Background(), AlertQuery{Level: models.LevelHigh, Limit: 5})
	require.NoError(t, err)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "bot_4821", out.Alerts[0].Profile.Username)
}

func TestGetAlertNotFound(t *testing.T) {
	c, notes, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: true, Message: "Alert not found"})
	})
	require.NoError(t, c.Tokens().Save("tok"))

	_, err := c.GetAlert(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Alert not found", apiErr.Message)
	require.Len(t, notes.Toasts(), 1)
	assert.Equal(t, "Alert not found", notes.Toasts()[0].Message)
}

func TestRequestTestTokenStoresToken(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/test-token", r.URL.Path)
		writeJSON(w, http.StatusCreated, dto.TestTokenResponse{Token: "demo-token", Subject: "demo"})
	})

	out, err := c.RequestTestToken(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "demo-token", out.Token)

	stored, err := c.Tokens().Load()
	require.NoError(t, err)
	assert.Equal(t, "demo-token", stored)

	require.NoError(t, c.Logout())
	stored, _ = c.Tokens().Load()
	assert.Empty(t, stored)
}

func TestVerifyImageUploadsMultipart(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, []byte("pngdata"), data)
		writeJSON(w, http.StatusOK, dto.ImageVerificationResult{Format: "png", Verdict: "suspicious"})
	})

	out, err := c.VerifyImage(context.Background(), "/tmp/avatar.png", []byte("pngdata"))
	require.NoError(t, err)
	assert.Equal(t, "suspicious", out.Verdict)
}

func TestDownloadReportAndSave(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3 test"))
	})

	_, err := c.DownloadReport(context.Background(), dto.GenerateReportRequest{})
	assert.Error(t, err, "analysis is required")

	blob, err := c.DownloadReport(context.Background(), dto.GenerateReportRequest{
		Analysis: &dto.AnalysisResult{Username: "someone", Platform: models.PlatformInstagram},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "report.pdf")
	require.NoError(t, SavePDF(path, blob))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, blob, written)
}

func TestDownloadReportRejectsEmptyBody(t *testing.T) {
	c, notes, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusOK)
	})

	blob, err := c.DownloadReport(context.Background(), dto.GenerateReportRequest{
		Analysis: &dto.AnalysisResult{Username: "someone", Platform: models.PlatformTwitter},
	})
	assert.ErrorIs(t, err, ErrEmptyPDF)
	assert.Nil(t, blob)
	assert.Len(t, notes.Toasts(), 1)
}

func TestSavePDFRejectsEmptyBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	assert.ErrorIs(t, SavePDF(path, nil), ErrEmptyPDF)
	assert.ErrorIs(t, SavePDF(path, []byte{}), ErrEmptyPDF)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "cfg", "token"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save(" abc \n"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, _ = store.Load()
	assert.Empty(t, token)
}
