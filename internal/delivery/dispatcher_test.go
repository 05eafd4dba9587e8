package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fakeguard/fakeguard/internal/database"
	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/fakeguard/fakeguard/internal/platform"
	"github.com/fakeguard/fakeguard/internal/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBot struct {
	mock.Mock
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return args.Get(0).(tgbotapi.Message), args.Error(1)
}

func newStore(t *testing.T) *services.NotificationService {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return services.NewNotificationService(db)
}

func create(t *testing.T, store *services.NotificationService, p models.Platform) *models.PlatformNotification {
	t.Helper()
	n, err := store.Create("analyst@example.com", &dto.CreateNotificationRequest{
		Username: "impostor_" + string(p), Platform: p, AlertLevel: "high",
		Evidence: json.RawMessage(`{"reports":3}`),
	})
	require.NoError(t, err)
	return n
}

func TestRunOnceDeliversAndFails(t *testing.T) {
	store := newStore(t)
	tg := create(t, store, models.PlatformTelegram)
	tw := create(t, store, models.PlatformTwitter)

	bot := &mockBot{}
	bot.On("Send", mock.AnythingOfType("tgbotapi.MessageConfig")).Return(tgbotapi.Message{MessageID: 42}, nil).Once()

	d := NewDispatcher(store, platform.Default(), 10)
	d.Register(&TelegramSender{bot: bot, chatID: 1001})

	delivered, failed, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, failed)
	bot.AssertExpectations(t)

	got, err := store.Get(tg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationAccepted, got.Status)
	assert.JSONEq(t, `{"channel":"telegram","message_id":42,"chat_id":1001}`, string(got.PlatformResponse))

	got, err = store.Get(tw.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationFailed, got.Status)
	assert.Contains(t, string(got.PlatformResponse), "no delivery channel configured for twitter")

	delivered, failed, err = d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, delivered+failed, "nothing left pending")
}

func TestRunOnceSendError(t *testing.T) {
	store := newStore(t)
	n := create(t, store, models.PlatformTelegram)

	bot := &mockBot{}
	bot.On("Send", mock.Anything).Return(tgbotapi.Message{}, errors.New("chat not found"))

	d := NewDispatcher(store, platform.Default(), 10)
	d.Register(&TelegramSender{bot: bot, chatID: 1})

	_, failed, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	got, err := store.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationFailed, got.Status)
	assert.Contains(t, string(got.PlatformResponse), "chat not found")
}

func TestTelegramChannelWithoutSender(t *testing.T) {
	store := newStore(t)
	n := create(t, store, models.PlatformTelegram)

	d := NewDispatcher(store, platform.Default(), 10)
	_, failed, err := d.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	got, err := store.Get(n.ID)
	require.NoError(t, err)
	assert.Contains(t, string(got.PlatformResponse), `delivery channel \"telegram\" is not enabled`)
}

func TestStartStop(t *testing.T) {
	store := newStore(t)
	n := create(t, store, models.PlatformFacebook)

	d := NewDispatcher(store, platform.Default(), 10)
	d.Start(10 * time.Millisecond)

	require.Eventually(t, func() bool {
		got, err := store.Get(n.ID)
		return err == nil && got.Status == models.NotificationFailed
	}, 2*time.Second, 10*time.Millisecond)

	d.Stop()
	d.Stop()
}

func TestFormatNotice(t *testing.T) {
	n := &models.PlatformNotification{
		Username: "scam_bot", Platform: models.PlatformTelegram, AlertLevel: models.LevelMedium,
		RequestedBy: "ops@example.com", Evidence: []byte(`{"links":2}`),
	}
	text := FormatNotice(n)
	assert.Contains(t, text, "[MEDIUM]")
	assert.Contains(t, text, "@scam_bot on telegram")
	assert.Contains(t, text, `Evidence: {"links":2}`)

	_, err := NewTelegramSender("", 0)
	assert.Error(t, err)
}
