package dashboard

import (
	"math"
	"sort"
	"time"
)

const (
	MinDays = 1
	MaxDays = 90
)

type DailyPoint struct {
	Date         string `json:"date"`
	FakeAccounts int    `json:"fakeAccounts"`
	BotActivity  int    `json:"botActivity"`
	ScamReports  int    `json:"scamReports"`
}

type CategoryShare struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type ThreatIntel struct {
	Series      []DailyPoint    `json:"series"`
	Categories  []CategoryShare `json:"categories"`
	TopKeywords []string        `json:"topKeywords"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

var threatCategories = []string{"Impersonation", "Crypto scams", "Romance scams", "Bot networks", "Phishing", "Fake giveaways"}
var threatKeywords = []string{"airdrop", "giveaway", "support", "verify", "wallet", "investment", "DM me", "limited offer", "official", "refund"}

// ThreatIntel fakes a daily series for the last `days` days, oldest first.
func (g *Generator) ThreatIntel(days int) ThreatIntel {
	days = clampInt(days, MinDays, MaxDays)
	ti := ThreatIntel{GeneratedAt: g.now}

	base := float64(g.between(40, 120))
	for i := days - 1; i >= 0; i-- {
		day := g.now.AddDate(0, 0, -i)
		wave := 1 + 0.3*math.Sin(float64(i)/3)
		ti.Series = append(ti.Series, DailyPoint{
			Date:         day.Format("2006-01-02"),
			FakeAccounts: int(base*wave) + g.rng.Intn(20),
			BotActivity:  int(base*1.8*wave) + g.rng.Intn(40),
			ScamReports:  int(base*0.4*wave) + g.rng.Intn(10),
		})
	}

	total := 0
	for _, name := range threatCategories {
		n := g.between(5, 300)
		total += n
		ti.Categories = append(ti.Categories, CategoryShare{Name: name, Count: n})
	}
	for i := range ti.Categories {
		ti.Categories[i].Percent = math.Round(float64(ti.Categories[i].Count)/float64(total)*1000) / 10
	}
	sort.SliceStable(ti.Categories, func(i, j int) bool { return ti.Categories[i].Count > ti.Categories[j].Count })

	perm := g.rng.Perm(len(threatKeywords))
	for _, idx := range perm[:5] {
		ti.TopKeywords = append(ti.TopKeywords, threatKeywords[idx])
	}
	return ti
}
