package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/fakeguard/fakeguard/internal/models"
)

const (
	MinAlerts = 1
	MaxAlerts = 100
)

type alertTemplate struct {
	title       string
	description string
	indicators  []string
}

var alertTemplates = []alertTemplate{
	{"Brand impersonation", "Account copies the official logo and bio of a verified brand.", []string{"copied_avatar", "lookalike_handle", "recent_creation"}},
	{"Bot-like posting pattern", "Posts at fixed intervals around the clock with near-identical text.", []string{"fixed_interval_posting", "duplicate_content", "no_engagement"}},
	{"Giveaway scam", "Promises prizes in exchange for a wallet address or a small fee.", []string{"payment_request", "urgent_language", "external_links"}},
	{"Follower farm", "Large follower count gained in days, mostly from empty accounts.", []string{"follower_spike", "low_quality_followers", "follower_ratio"}},
	{"Phishing links", "Direct messages lead to a credential harvesting page.", []string{"phishing_domain", "shortened_links", "dm_campaign"}},
	{"Stolen profile photo", "Profile picture matches a stock photo or another person's account.", []string{"reverse_image_match", "stock_photo"}},
	{"Coordinated amplification", "Part of a cluster that reposts the same content within seconds.", []string{"cluster_membership", "synchronized_activity"}},
}

// SecurityAlerts returns count alerts, newest first, spread over the last 72 hours.
func (g *Generator) SecurityAlerts(count int) []models.Alert {
	count = clampInt(count, MinAlerts, MaxAlerts)
	statuses := []models.AlertStatus{models.AlertNew, models.AlertNew, models.AlertNew, models.AlertInvestigating, models.AlertResolved, models.AlertFalsePositive}

	alerts := make([]models.Alert, 0, count)
	for i := 0; i < count; i++ {
		tpl := alertTemplates[g.rng.Intn(len(alertTemplates))]
		score := g.between(20, 99)
		username := g.username()
		platform := g.platform()
		created := g.now.Add(-time.Duration(g.rng.Intn(72*60)) * time.Minute)

		alerts = append(alerts, models.Alert{
			ID: g.uuid(),
			Profile: models.ProfileRef{
				Username:    username,
				Platform:    platform,
				DisplayName: fmt.Sprintf("%s (%s)", tpl.title, username),
				AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
			},
			AlertLevel:  models.LevelForScore(score),
			Status:      statuses[g.rng.Intn(len(statuses))],
			RiskScore:   score,
			Title:       tpl.title,
			Description: tpl.description,
			Indicators:  append([]string(nil), tpl.indicators...),
			Source:      "monitor",
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}

	sort.Slice(alerts, func(i, j int) bool { return alerts[i].CreatedAt.After(alerts[j].CreatedAt) })
	return alerts
}
