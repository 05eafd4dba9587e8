// Package platform holds the catalogue of social networks the service knows about:
// how to link to a profile and where takedown notices for each one are delivered.
package platform

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"sync"

	"github.com/fakeguard/fakeguard/internal/models"
)

//go:embed platforms.json
var defaultPlatforms []byte

type Info struct {
	ID                   models.Platform `json:"id"`
	DisplayName          string          `json:"display_name"`
	ProfileURLTemplate   string          `json:"profile_url_template"`
	AcceptsReports       bool            `json:"accepts_reports"`
	AcceptsNotifications bool            `json:"accepts_notifications"`
	NotificationChannel  string          `json:"notification_channel"`
	BrandColor           string          `json:"brand_color"`
}

type platformsFile struct {
	Platforms []Info `json:"platforms"`
}

type Registry struct {
	mu        sync.RWMutex
	platforms map[models.Platform]*Info
}

func NewRegistry() *Registry {
	return &Registry{
		platforms: make(map[models.Platform]*Info),
	}
}

// Default returns the registry built from the embedded catalogue.
func Default() *Registry {
	r, err := parse(defaultPlatforms)
	if err != nil {
		panic(fmt.Sprintf("embedded platforms.json is invalid: %v", err))
	}
	return r
}

// LoadFromFile reads a catalogue override; an empty path yields the embedded default.
func LoadFromFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read platforms config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var file platformsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse platforms config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Platforms {
		p := &file.Platforms[i]
		if !p.ID.ValidForNotification() {
			return nil, fmt.Errorf("unknown platform %q in config", p.ID)
		}
		if p.AcceptsReports && !p.ID.ValidForReport() {
			return nil, fmt.Errorf("platform %q cannot accept reports", p.ID)
		}
		registry.Register(p)
	}
	return registry, nil
}

func (r *Registry) Register(info *Info) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platforms[info.ID] = info
}

func (r *Registry) Get(id models.Platform) *Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.platforms[id]
}

func (r *Registry) Exists(id models.Platform) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.platforms[id]
	return ok
}

// All returns the catalogue sorted by id.
func (r *Registry) All() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Info, 0, len(r.platforms))
	for _, info := range r.platforms {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *Registry) ProfileURL(id models.Platform, username string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.platforms[id]
	if !ok || info.ProfileURLTemplate == "" {
		return ""
	}
	return fmt.Sprintf(info.ProfileURLTemplate, url.PathEscape(username))
}

// Channel names the delivery channel for takedown notices, or "" when there is none.
func (r *Registry) Channel(id models.Platform) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.platforms[id]
	if !ok || !info.AcceptsNotifications {
		return ""
	}
	return info.NotificationChannel
}
