package cli

import (
	"fmt"
	"strings"

	"github.com/fakeguard/fakeguard/internal/dto"
)

func renderReportsTable(out *dto.ReportListResponse) string {
	if len(out.Reports) == 0 {
		return "No reports.\n"
	}

	var b strings.Builder
	b.WriteString("STATUS     PLATFORM   USERNAME              CREATED           REASON\n")
	b.WriteString("---------  ---------  --------------------  ----------------  ------\n")
	for _, r := range out.Reports {
		fmt.Fprintf(&b, "%-9s  %-9s  %-20s  %-16s  %s\n",
			r.Status,
			r.Platform,
			truncate("@"+r.Username, 20),
			r.CreatedAt.UTC().Format("2006-01-02 15:04"),
			truncate(r.Reason, 48),
		)
	}
	fmt.Fprintf(&b, "\n%d of %d shown (offset %d)\n", len(out.Reports), out.Total, out.Offset)
	return b.String()
}

func renderAlertsTable(out *dto.AlertListResponse) string {
	if len(out.Alerts) == 0 {
		return "No alerts.\n"
	}

	var b strings.Builder
	b.WriteString("LEVEL     RISK  STATUS          PLATFORM   USERNAME              ID\n")
	b.WriteString("--------  ----  --------------  ---------  --------------------  --\n")
	for _, a := range out.Alerts {
		fmt.Fprintf(&b, "%-8s  %-4d  %-14s  %-9s  %-20s  %s\n",
			a.AlertLevel,
			a.RiskScore,
			a.Status,
			a.Profile.Platform,
			truncate("@"+a.Profile.Username, 20),
			a.ID,
		)
	}
	fmt.Fprintf(&b, "\n%d of %d shown (offset %d)\n", len(out.Alerts), out.Total, out.Offset)
	return b.String()
}

func renderAnalysis(r *dto.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s on %s\n", r.Username, r.Platform)
	fmt.Fprintf(&b, "- risk: %d/100 (%s)\n", r.RiskScore, r.RiskLevel)
	fmt.Fprintf(&b, "- fake probability: %.0f%%\n", r.FakeProbability*100)
	fmt.Fprintf(&b, "- confidence: %.0f%%\n", r.Confidence*100)
	if r.AlertRaised {
		b.WriteString("- alert raised\n")
	}

	triggered := 0
	for _, ind := range r.Indicators {
		if ind.Triggered {
			triggered++
		}
	}
	fmt.Fprintf(&b, "- indicators: %d/%d triggered\n", triggered, len(r.Indicators))
	for _, ind := range r.Indicators {
		mark := " "
		if ind.Triggered {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s\n", mark, ind.Label)
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("- recommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}
	return b.String()
}

func renderImageResult(r *dto.ImageVerificationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%d, %d bytes\n", strings.ToUpper(r.Format), r.Width, r.Height, r.SizeBytes)
	fmt.Fprintf(&b, "- verdict: %s\n", r.Verdict)
	fmt.Fprintf(&b, "- manipulation: %d/100\n", r.ManipulationScore)
	fmt.Fprintf(&b, "- ai generated: %d/100\n", r.AIGeneratedScore)
	fmt.Fprintf(&b, "- stock photo: %t\n", r.IsStockPhoto)
	fmt.Fprintf(&b, "- reverse search matches: %d\n", len(r.Matches))
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "  - %s (%.0f%%) %s\n", m.Source, m.Similarity*100, m.URL)
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n < 4 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
