package dto

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fakeguard/fakeguard/internal/models"
)

const (
	UsernameMinLength = 2
	UsernameMaxLength = 100
	ReasonMinLength   = 10
	ReasonMaxLength   = 1000
)

type CreateReportRequest struct {
	Username      string          `json:"username"`
	Platform      models.Platform `json:"platform"`
	Reason        string          `json:"reason"`
	ScreenshotURL string          `json:"screenshotUrl,omitempty"`
}

// Normalize trims whitespace, drops a leading @ from the handle and lowercases the platform.
func (r *CreateReportRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
	r.Platform = models.Platform(strings.ToLower(strings.TrimSpace(string(r.Platform))))
	r.Reason = strings.TrimSpace(r.Reason)
	r.ScreenshotURL = strings.TrimSpace(r.ScreenshotURL)
}

// Validate applies the report form rules. Call Normalize first.
func (r *CreateReportRequest) Validate() error {
	errs := FieldErrors{}

	if n := utf8.RuneCountInString(r.Username); n < UsernameMinLength {
		errs["username"] = "must be at least 2 characters"
	} else if n > UsernameMaxLength {
		errs["username"] = "must be at most 100 characters"
	}

	if !r.Platform.ValidForReport() {
		errs["platform"] = "must be one of twitter, instagram, facebook, linkedin"
	}

	if n := utf8.RuneCountInString(r.Reason); n < ReasonMinLength {
		errs["reason"] = "must be at least 10 characters"
	} else if n > ReasonMaxLength {
		errs["reason"] = "must be at most 1000 characters"
	}

	if r.ScreenshotURL != "" && !isHTTPURL(r.ScreenshotURL) {
		errs["screenshotUrl"] = "must be an http or https URL"
	}

	return errs.OrNil()
}

type UpdateReportStatusRequest struct {
	Status    models.ReportStatus `json:"status"`
	AdminNote string              `json:"adminNote"`
}

type ReportListResponse struct {
	Reports []models.Report `json:"reports"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

func NormalizeUsername(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "@")
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
