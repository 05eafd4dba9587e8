package services

import (
	"context"
	"testing"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoAlertsOnlyWhenEmpty(t *testing.T) {
	svc := NewAlertService(newTestDB(t))

	n, err := svc.SeedDemoAlerts(10, 42)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = svc.SeedDemoAlerts(10, 42)
	require.NoError(t, err)
	assert.Zero(t, n)

	alerts, total, err := svc.List(dto.AlertFilter{Limit: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
	for i := 1; i < len(alerts); i++ {
		assert.False(t, alerts[i].CreatedAt.After(alerts[i-1].CreatedAt), "newest first")
	}
	assert.NotEmpty(t, alerts[0].Indicators)
}

func TestRaiseFromAnalysisOncePerOpenAlert(t *testing.T) {
	svc := NewAlertService(newTestDB(t))
	result := ScoreProfile(models.PlatformInstagram, "promo_deals4821")

	first, created, err := svc.RaiseFromAnalysis(result, "https://www.instagram.com/promo_deals4821/")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.AlertNew, first.Status)
	assert.Equal(t, "analysis", first.Source)

	again, created, err := svc.RaiseFromAnalysis(result, "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.UpdateStatus(first.ID, models.AlertResolved)
	require.NoError(t, err)

	_, created, err = svc.RaiseFromAnalysis(result, "")
	require.NoError(t, err)
	assert.True(t, created, "a resolved alert does not block a new one")
}

func TestRaiseFromAnalysisIgnoresHandleCase(t *testing.T) {
	db := newTestDB(t)
	alerts := NewAlertService(db)

	lower := ScoreProfile(models.PlatformTwitter, "botxxxe12345e")
	svc := NewAnalysisService(alerts, nil, 0, lower.RiskScore, nil)

	first, err := svc.Analyze(context.Background(), &dto.AnalyzeProfileRequest{Username: "botxxxe12345e", Platform: "twitter"})
	require.NoError(t, err)
	require.True(t, first.AlertRaised)

	second, err := svc.Analyze(context.Background(), &dto.AnalyzeProfileRequest{Username: "BOTXXXE12345E", Platform: "twitter"})
	require.NoError(t, err)
	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.False(t, second.AlertRaised, "same account, different casing")

	_, total, err := alerts.List(dto.AlertFilter{Status: models.AlertNew})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAlertGetAndUpdateStatus(t *testing.T) {
	svc := NewAlertService(newTestDB(t))
	_, err := svc.SeedDemoAlerts(3, 7)
	require.NoError(t, err)

	alerts, _, err := svc.List(dto.AlertFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, alerts)

	_, err = svc.UpdateStatus(alerts[0].ID, "closed")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := svc.UpdateStatus(alerts[0].ID, models.AlertFalsePositive)
	require.NoError(t, err)
	assert.Equal(t, models.AlertFalsePositive, updated.Status)

	filtered, total, err := svc.List(dto.AlertFilter{Status: models.AlertFalsePositive})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(1))
	for _, a := range filtered {
		assert.Equal(t, models.AlertFalsePositive, a.Status)
	}

	_, err = svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrAlertNotFound)
}
