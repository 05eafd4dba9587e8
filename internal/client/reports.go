package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
)

// Result is the outcome of a submission. Submissions never return a Go error.
type Result struct {
	Success bool
	Error   string
	Fields  map[string]string
	Report  *models.Report
}

// SubmitReport validates the form locally, then posts it to /api/report.
func (c *Client) SubmitReport(ctx context.Context, form dto.CreateReportRequest) Result {
	form.Normalize()
	if err := form.Validate(); err != nil {
		c.fail("Report not submitted", err)
		res := Result{Error: err.Error()}
		var fields dto.FieldErrors
		if errors.As(err, &fields) {
			res.Fields = fields
		}
		return res
	}

	var report models.Report
	if err := c.doJSON(ctx, http.MethodPost, "/api/report", form, &report, false); err != nil {
		c.fail("Report not submitted", err)
		return Result{Error: userMessage(err)}
	}

	c.notifier.Notify(Toast{
		Level:   ToastSuccess,
		Title:   "Report submitted",
		Message: "Thanks, @" + report.Username + " has been queued for review.",
	})
	return Result{Success: true, Report: &report}
}

type ReportQuery struct {
	Status   models.ReportStatus
	Platform models.Platform
	Limit    int
	Offset   int
}

func (q ReportQuery) encode() string {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Platform != "" {
		v.Set("platform", string(q.Platform))
	}
	setPage(v, q.Limit, q.Offset)
	return withQuery(v)
}

func (c *Client) GetReports(ctx context.Context, q ReportQuery) (*dto.ReportListResponse, error) {
	var out dto.ReportListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports"+q.encode(), nil, &out, true); err != nil {
		c.fail("Could not load reports", err)
		return nil, err
	}
	return &out, nil
}

func setPage(v url.Values, limit, offset int) {
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		v.Set("offset", strconv.Itoa(offset))
	}
}

func withQuery(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
