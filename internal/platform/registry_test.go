package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	all := r.All()
	require.Len(t, all, 5)
	assert.Equal(t, models.PlatformFacebook, all[0].ID, "sorted by id")

	assert.Equal(t, "https://t.me/some_bot", r.ProfileURL(models.PlatformTelegram, "some_bot"))
	assert.Equal(t, "https://x.com/a%20b", r.ProfileURL(models.PlatformTwitter, "a b"))
	assert.Equal(t, "telegram", r.Channel(models.PlatformTelegram))
	assert.Equal(t, "", r.Channel(models.PlatformInstagram))
	assert.False(t, r.Get(models.PlatformTelegram).AcceptsReports)
}

func TestLoadFromFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platforms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"platforms":[{"id":"twitter","display_name":"Twitter","profile_url_template":"https://twitter.com/%s","accepts_reports":true,"accepts_notifications":true,"notification_channel":"telegram"}]}`), 0o600))

	r, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, r.Exists(models.PlatformTwitter))
	assert.False(t, r.Exists(models.PlatformFacebook))
	assert.Equal(t, "telegram", r.Channel(models.PlatformTwitter))
}

func TestLoadFromFileRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"platforms":[{"id":"myspace"}]}`), 0o600))
	_, err := LoadFromFile(unknown)
	assert.Error(t, err)

	reports := filepath.Join(dir, "reports.json")
	require.NoError(t, os.WriteFile(reports, []byte(`{"platforms":[{"id":"telegram","accepts_reports":true}]}`), 0o600))
	_, err = LoadFromFile(reports)
	assert.Error(t, err)

	_, err = LoadFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadFromFileEmptyPath(t *testing.T) {
	r, err := LoadFromFile("")
	require.NoError(t, err)
	assert.Len(t, r.All(), 5)
}
