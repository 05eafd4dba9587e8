package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
)

type AlertQuery struct {
	Status   models.AlertStatus
	Level    models.AlertLevel
	Platform models.Platform
	Limit    int
	Offset   int
}

func (q AlertQuery) encode() string {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Level != "" {
		v.Set("level", string(q.Level))
	}
	if q.Platform != "" {
		v.Set("platform", string(q.Platform))
	}
	setPage(v, q.Limit, q.Offset)
	return withQuery(v)
}

func (c *Client) GetAlerts(ctx context.Context, q AlertQuery) (*dto.AlertListResponse, error) {
	var out dto.AlertListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/alerts"+q.encode(), nil, &out, true); err != nil {
		c.fail("Could not load alerts", err)
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		err := errors.New("alert id is required")
		c.fail("Could not load alert", err)
		return nil, err
	}

	var alert models.Alert
	if err := c.doJSON(ctx, http.MethodGet, "/api/alerts/"+url.PathEscape(id), nil, &alert, true); err != nil {
		c.fail("Could not load alert", err)
		return nil, err
	}
	return &alert, nil
}
