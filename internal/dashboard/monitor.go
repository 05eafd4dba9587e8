package dashboard

import "time"

type PlatformStatus struct {
	Platform            string    `json:"platform"`
	MonitoredAccounts   int       `json:"monitoredAccounts"`
	SuspiciousAccounts  int       `json:"suspiciousAccounts"`
	FakeAccountsRemoved int       `json:"fakeAccountsRemoved"`
	DetectionRate       float64   `json:"detectionRate"`
	TrendPercent        float64   `json:"trendPercent"`
	Status              string    `json:"status"`
	LastScan            time.Time `json:"lastScan"`
}

type CrossPlatformSummary struct {
	Platforms       []PlatformStatus `json:"platforms"`
	TotalMonitored  int              `json:"totalMonitored"`
	TotalSuspicious int              `json:"totalSuspicious"`
	TotalRemoved    int              `json:"totalRemoved"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// CrossPlatform fakes the per-network monitor panel.
func (g *Generator) CrossPlatform() CrossPlatformSummary {
	summary := CrossPlatformSummary{GeneratedAt: g.now}

	for _, p := range platforms {
		monitored := g.between(500, 20000)
		suspicious := monitored * g.between(1, 12) / 100
		removed := suspicious * g.between(10, 80) / 100

		status := "healthy"
		if g.rng.Intn(10) == 0 {
			status = "degraded"
		}

		ps := PlatformStatus{
			Platform:            string(p),
			MonitoredAccounts:   monitored,
			SuspiciousAccounts:  suspicious,
			FakeAccountsRemoved: removed,
			DetectionRate:       float64(g.between(820, 990)) / 10,
			TrendPercent:        float64(g.between(-250, 250)) / 10,
			Status:              status,
			LastScan:            g.now.Add(-time.Duration(g.between(1, 59)) * time.Minute),
		}
		summary.Platforms = append(summary.Platforms, ps)
		summary.TotalMonitored += monitored
		summary.TotalSuspicious += suspicious
		summary.TotalRemoved += removed
	}
	return summary
}
