package dto

import (
	"strings"
	"time"

	"github.com/fakeguard/fakeguard/internal/models"
)

type AnalyzeProfileRequest struct {
	Username   string          `json:"username"`
	Platform   models.Platform `json:"platform"`
	ProfileURL string          `json:"profileUrl,omitempty"`
}

func (r *AnalyzeProfileRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
	r.Platform = models.Platform(strings.ToLower(strings.TrimSpace(string(r.Platform))))
	r.ProfileURL = strings.TrimSpace(r.ProfileURL)
}

func (r *AnalyzeProfileRequest) Validate() error {
	errs := FieldErrors{}
	if n := len([]rune(r.Username)); n < UsernameMinLength {
		errs["username"] = "must be at least 2 characters"
	} else if n > UsernameMaxLength {
		errs["username"] = "must be at most 100 characters"
	}
	if !r.Platform.ValidForNotification() {
		errs["platform"] = "unsupported platform"
	}
	if r.ProfileURL != "" && !isHTTPURL(r.ProfileURL) {
		errs["profileUrl"] = "must be an http or https URL"
	}
	return errs.OrNil()
}

// Indicator is one signal that contributed to a risk score.
type Indicator struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Score       int    `json:"score"`
	Weight      int    `json:"weight"`
	Triggered   bool   `json:"triggered"`
	Description string `json:"description"`
}

type AccountMetrics struct {
	AccountAgeDays   int     `json:"accountAgeDays"`
	Followers        int     `json:"followers"`
	Following        int     `json:"following"`
	FollowerRatio    float64 `json:"followerRatio"`
	PostsPerDay      float64 `json:"postsPerDay"`
	HasProfilePhoto  bool    `json:"hasProfilePhoto"`
	BioLength        int     `json:"bioLength"`
	EngagementRate   float64 `json:"engagementRate"`
	VerifiedIdentity bool    `json:"verifiedIdentity"`
}

// AnalysisResult is the response of POST /api/analyze-profile.
type AnalysisResult struct {
	Username        string            `json:"username"`
	Platform        models.Platform   `json:"platform"`
	ProfileURL      string            `json:"profileUrl,omitempty"`
	RiskScore       int               `json:"riskScore"`
	RiskLevel       models.AlertLevel `json:"riskLevel"`
	FakeProbability float64           `json:"fakeProbability"`
	Confidence      float64           `json:"confidence"`
	IsLikelyFake    bool              `json:"isLikelyFake"`
	Metrics         AccountMetrics    `json:"metrics"`
	Indicators      []Indicator       `json:"indicators"`
	Recommendations []string          `json:"recommendations"`
	AlertRaised     bool              `json:"alertRaised"`
	Cached          bool              `json:"cached"`
	AnalyzedAt      time.Time         `json:"analyzedAt"`
}

type VerifyImageRequest struct {
	ImageData string `json:"image_data"`
}

type ReverseSearchMatch struct {
	Source     string  `json:"source"`
	URL        string  `json:"url"`
	Similarity float64 `json:"similarity"`
}

// ImageVerificationResult is the response of POST /api/verify-image.
type ImageVerificationResult struct {
	SHA256            string               `json:"sha256"`
	Format            string               `json:"format"`
	Width             int                  `json:"width"`
	Height            int                  `json:"height"`
	SizeBytes         int                  `json:"sizeBytes"`
	ManipulationScore int                  `json:"manipulationScore"`
	IsManipulated     bool                 `json:"isManipulated"`
	AIGeneratedScore  int                  `json:"aiGeneratedScore"`
	IsAIGenerated     bool                 `json:"isAiGenerated"`
	IsStockPhoto      bool                 `json:"isStockPhoto"`
	Matches           []ReverseSearchMatch `json:"reverseSearchMatches"`
	Verdict           string               `json:"verdict"`
	VerifiedAt        time.Time            `json:"verifiedAt"`
}

type GenerateReportRequest struct {
	Analysis          *AnalysisResult          `json:"analysis"`
	ImageVerification *ImageVerificationResult `json:"imageVerification,omitempty"`
}
