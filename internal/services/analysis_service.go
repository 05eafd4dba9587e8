package services

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/fakeguard/fakeguard/internal/cache"
	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/fakeguard/fakeguard/internal/platform"
)

// LikelyFakeScore is the score from which a profile is labelled likely fake.
const LikelyFakeScore = 60

var trailingDigits = regexp.MustCompile(`\d{4,}$`)

type indicatorRule struct {
	key         string
	label       string
	weight      int
	description string
	check       func(m dto.AccountMetrics, username string) bool
}

var indicatorRules = []indicatorRule{
	{"new_account", "Recently created", 20, "Account is less than 90 days old.",
		func(m dto.AccountMetrics, _ string) bool { return m.AccountAgeDays < 90 }},
	{"follower_ratio", "Follower ratio", 15, "Follows far more accounts than follow it back.",
		func(m dto.AccountMetrics, _ string) bool { return m.FollowerRatio < 0.1 }},
	{"posting_rate", "Posting rate", 15, "Posts more than 25 times a day.",
		func(m dto.AccountMetrics, _ string) bool { return m.PostsPerDay > 25 }},
	{"no_profile_photo", "No profile photo", 15, "Uses the platform default avatar.",
		func(m dto.AccountMetrics, _ string) bool { return !m.HasProfilePhoto }},
	{"empty_bio", "Empty bio", 10, "Profile has no description.",
		func(m dto.AccountMetrics, _ string) bool { return m.BioLength == 0 }},
	{"low_engagement", "Low engagement", 15, "Posts get almost no likes or replies.",
		func(m dto.AccountMetrics, _ string) bool { return m.EngagementRate < 1.0 }},
	{"username_pattern", "Generated username", 10, "Handle ends in a long run of digits.",
		func(_ dto.AccountMetrics, username string) bool { return trailingDigits.MatchString(username) }},
}

type AnalysisService struct {
	alerts    *AlertService
	cache     cache.Cache
	cacheTTL  time.Duration
	threshold int
	platforms *platform.Registry
	now       func() time.Time
}

// NewAnalysisService wires the analyzer. alerts and c may be nil.
func NewAnalysisService(alerts *AlertService, c cache.Cache, cacheTTL time.Duration, threshold int, platforms *platform.Registry) *AnalysisService {
	if platforms == nil {
		platforms = platform.Default()
	}
	return &AnalysisService{
		alerts:    alerts,
		cache:     c,
		cacheTTL:  cacheTTL,
		threshold: threshold,
		platforms: platforms,
		now:       time.Now,
	}
}

func analysisCacheKey(p models.Platform, username string) string {
	return "analysis:" + string(p) + ":" + strings.ToLower(username)
}

// Analyze scores a profile. The same platform and username always give the same score.
func (s *AnalysisService) Analyze(ctx context.Context, req *dto.AnalyzeProfileRequest) (*dto.AnalysisResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := analysisCacheKey(req.Platform, req.Username)
	if s.cache != nil {
		var cached dto.AnalysisResult
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("analysis cache read failed", "key", key, "error", err)
		} else if found {
			cached.Cached = true
			cached.AlertRaised = false
			return &cached, nil
		}
	}

	result := ScoreProfile(req.Platform, req.Username)
	result.AnalyzedAt = s.now().UTC()
	result.ProfileURL = req.ProfileURL
	if result.ProfileURL == "" {
		result.ProfileURL = s.platforms.ProfileURL(req.Platform, req.Username)
	}

	if s.alerts != nil && s.threshold > 0 && result.RiskScore >= s.threshold {
		_, created, err := s.alerts.RaiseFromAnalysis(result, result.ProfileURL)
		if err != nil {
			return nil, fmt.Errorf("raise alert: %w", err)
		}
		result.AlertRaised = created
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			slog.Warn("analysis cache write failed", "key", key, "error", err)
		}
	}

	return result, nil
}

// ScoreProfile derives mock metrics and a score from sha256(platform:username).
func ScoreProfile(p models.Platform, username string) *dto.AnalysisResult {
	hash := sha256.Sum256([]byte(string(p) + ":" + strings.ToLower(username)))
	metrics := mockMetrics(hash)

	score := 0
	indicators := make([]dto.Indicator, 0, len(indicatorRules))
	for _, rule := range indicatorRules {
		triggered := rule.check(metrics, username)
		ind := dto.Indicator{
			Key:         rule.key,
			Label:       rule.label,
			Weight:      rule.weight,
			Triggered:   triggered,
			Description: rule.description,
		}
		if triggered {
			ind.Score = rule.weight
			score += rule.weight
		}
		indicators = append(indicators, ind)
	}

	score += int(hash[14]) % 11
	if metrics.VerifiedIdentity {
		score -= 30
	}
	score = clampScore(score)

	level := models.LevelForScore(score)
	return &dto.AnalysisResult{
		Username:        username,
		Platform:        p,
		RiskScore:       score,
		RiskLevel:       level,
		FakeProbability: round2(float64(score) / 100),
		Confidence:      round2(0.55 + float64(hash[15]%40)/100),
		IsLikelyFake:    score >= LikelyFakeScore,
		Metrics:         metrics,
		Indicators:      indicators,
		Recommendations: recommendations(level, indicators),
	}
}

func mockMetrics(hash [32]byte) dto.AccountMetrics {
	followers := int(binary.BigEndian.Uint32(hash[2:6]) % 50000)
	following := 1 + int(binary.BigEndian.Uint16(hash[6:8])%5000)

	bio := int(hash[10]) % 160
	if hash[11]%5 == 0 {
		bio = 0
	}

	return dto.AccountMetrics{
		AccountAgeDays:   1 + int(binary.BigEndian.Uint16(hash[0:2])%3650),
		Followers:        followers,
		Following:        following,
		FollowerRatio:    round2(float64(followers) / float64(following)),
		PostsPerDay:      float64(hash[8]%200) / 5,
		HasProfilePhoto:  hash[9]%4 != 0,
		BioLength:        bio,
		EngagementRate:   float64(hash[12]%100) / 10,
		VerifiedIdentity: hash[13]%17 == 0,
	}
}

func recommendations(level models.AlertLevel, indicators []dto.Indicator) []string {
	var recs []string
	switch level {
	case models.LevelCritical, models.LevelHigh:
		recs = append(recs,
			"Do not engage with this account or click links it shares.",
			"Report the profile to the platform and notify your security team.")
	case models.LevelMedium:
		recs = append(recs, "Verify the account through an independent channel before trusting it.")
	default:
		recs = append(recs, "No immediate action needed; keep monitoring for changes.")
	}

	for _, ind := range indicators {
		if !ind.Triggered {
			continue
		}
		switch ind.Key {
		case "new_account":
			recs = append(recs, "Check whether the account appeared around a recent campaign or announcement.")
		case "no_profile_photo":
			recs = append(recs, "Run a reverse image search on any photos the account posts.")
		case "posting_rate":
			recs = append(recs, "Review posting timestamps for automated, fixed-interval activity.")
		}
	}
	return recs
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
