package routes_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fakeguard/fakeguard/internal/cache"
	"github.com/fakeguard/fakeguard/internal/config"
	"github.com/fakeguard/fakeguard/internal/database"
	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/handlers"
	"github.com/fakeguard/fakeguard/internal/localization"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/fakeguard/fakeguard/internal/platform"
	"github.com/fakeguard/fakeguard/internal/routes"
	"github.com/fakeguard/fakeguard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	app    *fiber.App
	db     *gorm.DB
	alerts *services.AlertService
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:          "routes-secret",
		JWTAccessExpiry:    15 * time.Minute,
		JWTRefreshExpiry:   time.Hour,
		TestTokenExpiry:    time.Hour,
		AllowTestTokens:    true,
		AdminToken:         "admin-token",
		AlertRiskThreshold: 70,
		CORSOrigins:        "*",
	}

	registry := platform.Default()
	mem := cache.NewMemory()
	alerts := services.NewAlertService(db)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler, BodyLimit: 8 * 1024 * 1024})
	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:   handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health: handlers.NewHealthHandler(func() error { return nil }, mem),
		Report: handlers.NewReportHandler(services.NewReportService(db)),
		Alert:  handlers.NewAlertHandler(alerts),
		Analysis: handlers.NewAnalysisHandler(
			services.NewAnalysisService(alerts, mem, time.Minute, cfg.AlertRiskThreshold, registry),
			services.NewImageService(),
			services.NewPDFService(),
		),
		Notification: handlers.NewNotificationHandler(services.NewNotificationService(db)),
		Dashboard:    handlers.NewDashboardHandler(func() time.Time { return fixedNow }),
		Content:      handlers.NewContentHandler(localization.Default(), registry),
	})
	return &testServer{app: app, db: db, alerts: alerts}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func (s *testServer) token(t *testing.T) map[string]string {
	t.Helper()
	resp := s.do(t, "POST", "/api/auth/test-token", map[string]string{"subject": "tester"}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var tok dto.TestTokenResponse
	decode(t, resp, &tok)
	return map[string]string{"Authorization": "Bearer " + tok.Token}
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	var body dto.HealthResponse
	decode(t, s.do(t, "GET", "/api/health", nil, nil), &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "memory: ok", body.Cache)
}

func TestReportSubmissionAndModeration(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, "POST", "/api/report", dto.CreateReportRequest{Username: "x", Platform: "twitter", Reason: "short"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var verr dto.ErrorResponse
	decode(t, resp, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "reason")

	resp = s.do(t, "POST", "/api/report", dto.CreateReportRequest{
		Username: "@fake_support", Platform: "instagram", Reason: "DMs people asking for their login codes",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var report models.Report
	decode(t, resp, &report)
	assert.Equal(t, models.ReportPending, report.Status)

	assert.Equal(t, fiber.StatusUnauthorized, s.do(t, "GET", "/api/reports", nil, nil).StatusCode)

	auth := s.token(t)
	var list dto.ReportListResponse
	decode(t, s.do(t, "GET", "/api/reports?platform=instagram", nil, auth), &list)
	assert.EqualValues(t, 1, list.Total)

	path := "/api/reports/" + report.ID.String()
	update := dto.UpdateReportStatusRequest{Status: models.ReportReviewed}
	assert.Equal(t, fiber.StatusForbidden, s.do(t, "PUT", path, update, auth).StatusCode, "demo tokens are not admins")

	adminHeaders := map[string]string{"Authorization": auth["Authorization"], "X-Admin-Token": "admin-token"}
	resp = s.do(t, "PUT", path, update, adminHeaders)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &report)
	assert.Equal(t, models.ReportReviewed, report.Status)
}

func TestAlertsEndpoints(t *testing.T) {
	s := newServer(t)
	_, err := s.alerts.SeedDemoAlerts(5, 99)
	require.NoError(t, err)
	auth := s.token(t)

	var list dto.AlertListResponse
	decode(t, s.do(t, "GET", "/api/alerts?limit=2", nil, auth), &list)
	assert.EqualValues(t, 5, list.Total)
	assert.Len(t, list.Alerts, 2)
	assert.Equal(t, 2, list.Limit)

	var one models.Alert
	decode(t, s.do(t, "GET", "/api/alerts/"+list.Alerts[0].ID.String(), nil, auth), &one)
	assert.Equal(t, list.Alerts[0].ID, one.ID)

	assert.Equal(t, fiber.StatusNotFound, s.do(t, "GET", "/api/alerts/00000000-0000-4000-8000-000000000000", nil, auth).StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, s.do(t, "GET", "/api/alerts?level=extreme", nil, auth).StatusCode)
}

func TestAnalyzeAndGenerateReport(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, "POST", "/api/analyze-profile", dto.AnalyzeProfileRequest{Username: "support_wallet7781", Platform: "twitter"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var result dto.AnalysisResult
	decode(t, resp, &result)
	assert.Equal(t, services.ScoreProfile(models.PlatformTwitter, "support_wallet7781").RiskScore, result.RiskScore)
	assert.Equal(t, "https://x.com/support_wallet7781", result.ProfileURL)

	resp = s.do(t, "POST", "/api/generate-report", dto.GenerateReportRequest{Analysis: &result}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "fakeguard-report-support_wallet7781.pdf")
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	assert.Equal(t, fiber.StatusBadRequest, s.do(t, "POST", "/api/generate-report", map[string]any{}, nil).StatusCode)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 10, 20))))
	return buf.Bytes()
}

func TestVerifyImageJSONAndMultipart(t *testing.T) {
	s := newServer(t)
	img := testPNG(t)

	resp := s.do(t, "POST", "/api/verify-image", dto.VerifyImageRequest{ImageData: base64.StdEncoding.EncodeToString(img)}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var fromJSON dto.ImageVerificationResult
	decode(t, resp, &fromJSON)
	assert.Equal(t, "png", fromJSON.Format)
	assert.Equal(t, 20, fromJSON.Height)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(img)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/verify-image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err = s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var fromForm dto.ImageVerificationResult
	decode(t, resp, &fromForm)
	assert.Equal(t, fromJSON.SHA256, fromForm.SHA256)

	resp = s.do(t, "POST", "/api/verify-image", dto.VerifyImageRequest{ImageData: base64.StdEncoding.EncodeToString([]byte("plain text"))}, nil)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestNotificationsFlow(t *testing.T) {
	s := newServer(t)
	auth := s.token(t)

	resp := s.do(t, "POST", "/api/notifications", map[string]any{
		"username": "bot_farm", "platform": "telegram", "alertLevel": "high",
		"evidence": map[string]any{"posts": 42},
	}, auth)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var n models.PlatformNotification
	decode(t, resp, &n)
	assert.Equal(t, models.NotificationPending, n.Status)
	assert.Equal(t, "tester@demo.fakeguard.local", n.RequestedBy)

	adminHeaders := map[string]string{"Authorization": auth["Authorization"], "X-Admin-Token": "admin-token"}
	resp = s.do(t, "PUT", "/api/notifications/"+n.ID.String(), dto.UpdateNotificationStatusRequest{Status: models.NotificationResolved}, adminHeaders)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "pending cannot be resolved by hand")

	var list dto.NotificationListResponse
	decode(t, s.do(t, "GET", "/api/notifications?status=pending", nil, auth), &list)
	assert.EqualValues(t, 1, list.Total)
}

func TestDashboardSeedReproducible(t *testing.T) {
	s := newServer(t)

	fetch := func(path string) []byte {
		resp := s.do(t, "GET", path, nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return raw
	}

	for _, path := range []string{
		"/api/dashboard/cross-platform?seed=11",
		"/api/dashboard/network-map?seed=11&nodes=12",
		"/api/dashboard/assessment?seed=11",
	} {
		assert.JSONEq(t, string(fetch(path)), string(fetch(path)), path)
	}

	var env struct {
		Seed int64          `json:"seed"`
		Data []models.Alert `json:"data"`
	}
	require.NoError(t, json.Unmarshal(fetch("/api/dashboard/security-alerts?seed=5&count=7"), &env))
	assert.EqualValues(t, 5, env.Seed)
	assert.Len(t, env.Data, 7)

	assert.Equal(t, fiber.StatusBadRequest, s.do(t, "GET", "/api/dashboard/threat-intel?seed=abc", nil, nil).StatusCode)
}

func TestContentEndpoints(t *testing.T) {
	s := newServer(t)

	var langs struct {
		Default   string                  `json:"default"`
		Languages []localization.Language `json:"languages"`
	}
	decode(t, s.do(t, "GET", "/api/i18n", nil, nil), &langs)
	assert.Equal(t, "en", langs.Default)
	assert.GreaterOrEqual(t, len(langs.Languages), 2)

	var strs struct {
		Language string            `json:"language"`
		Strings  map[string]string `json:"strings"`
	}
	decode(t, s.do(t, "GET", "/api/i18n/fr", nil, nil), &strs)
	assert.Equal(t, "en", strs.Language, "unknown languages fall back to English")
	assert.NotEmpty(t, strs.Strings)

	var content localization.Content
	decode(t, s.do(t, "GET", "/api/content/es-MX", nil, nil), &content)
	assert.Equal(t, "es", content.Language)
	assert.Len(t, content.Disclaimer, 3)

	var plats struct {
		Platforms []platform.Info `json:"platforms"`
	}
	decode(t, s.do(t, "GET", "/api/platforms", nil, nil), &plats)
	assert.Len(t, plats.Platforms, 5)
}
