package dashboard

import "time"

type AssessmentCategory struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Score    int      `json:"score"`
	Max      int      `json:"max"`
	Findings []string `json:"findings"`
}

type Assessment struct {
	OverallScore    int                  `json:"overallScore"`
	Grade           string               `json:"grade"`
	Categories      []AssessmentCategory `json:"categories"`
	Recommendations []string             `json:"recommendations"`
	AssessedAt      time.Time            `json:"assessedAt"`
}

var assessmentCategories = []struct {
	key, name string
	max       int
	findings  []string
	advice    string
}{
	{"impersonation", "Impersonation exposure", 30, []string{"Lookalike handles registered on 3 platforms", "Brand logo reused by unverified accounts"}, "Register your handle on every major platform, even if unused."},
	{"verification", "Account verification", 20, []string{"Official accounts missing verification badge"}, "Apply for verification on platforms that offer it."},
	{"monitoring", "Monitoring coverage", 20, []string{"No alerting for new lookalike accounts"}, "Enable continuous monitoring for new lookalike handles."},
	{"response", "Takedown readiness", 15, []string{"No documented takedown process"}, "Prepare evidence templates for platform takedown requests."},
	{"awareness", "Audience awareness", 15, []string{"Followers not told which accounts are official"}, "Publish a list of official accounts on your website."},
}

// Grade maps a 0-100 score to a letter.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// Assessment fakes the security assessment score card.
func (g *Generator) Assessment() Assessment {
	a := Assessment{AssessedAt: g.now}
	for _, c := range assessmentCategories {
		score := g.between(c.max/3, c.max)
		cat := AssessmentCategory{Key: c.key, Name: c.name, Score: score, Max: c.max, Findings: []string{}}
		if score < c.max*3/4 {
			cat.Findings = append(cat.Findings, c.findings...)
			a.Recommendations = append(a.Recommendations, c.advice)
		}
		a.Categories = append(a.Categories, cat)
		a.OverallScore += score
	}
	a.Grade = Grade(a.OverallScore)
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	return a
}
