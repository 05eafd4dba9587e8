package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fakeguard/fakeguard/internal/client"
	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
)

// errReported marks failures already shown to the user as a toast.
var errReported = errors.New("request failed")

type app struct {
	stdout io.Writer
	stderr io.Writer
}

// Run executes one fakeguard subcommand and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		a.printRootUsage(stderr)
		return 2
	}

	cmd := args[0]
	cmdArgs := args[1:]

	var err error
	switch cmd {
	case "token":
		err = a.runToken(ctx, cmdArgs)
	case "logout":
		err = a.runLogout(cmdArgs)
	case "report":
		err = a.runReport(ctx, cmdArgs)
	case "reports":
		err = a.runReports(ctx, cmdArgs)
	case "alerts":
		err = a.runAlerts(ctx, cmdArgs)
	case "alert":
		err = a.runAlert(ctx, cmdArgs)
	case "analyze":
		err = a.runAnalyze(ctx, cmdArgs)
	case "verify":
		err = a.runVerify(ctx, cmdArgs)
	case "pdf":
		err = a.runPDF(ctx, cmdArgs)
	case "help", "-h", "--help":
		a.printRootUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", cmd)
		a.printRootUsage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errReported):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

type commonFlags struct {
	api       *string
	tokenFile *string
	format    *string
	verbose   *bool
}

func (a *app) newFlagSet(name string) (*flag.FlagSet, commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs, commonFlags{
		api:       fs.String("api", "", "API base URL (default $"+client.EnvBaseURL+" or "+client.DefaultBaseURL+")"),
		tokenFile: fs.String("token-file", client.DefaultTokenPath(), "File holding the bearer token"),
		format:    fs.String("format", "table", "Output format: table|json"),
		verbose:   fs.Bool("v", false, "Log requests to stderr"),
	}
}

func (a *app) client(cf commonFlags) *client.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *cf.verbose {
		logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return client.New(*cf.api,
		client.WithTokenStore(client.NewFileTokenStore(*cf.tokenFile)),
		client.WithNotifier(&toastWriter{w: a.stderr}),
		client.WithLogger(logger),
	)
}

func (a *app) runToken(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("token")
	subject := fs.String("subject", "", "Label for the demo identity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := a.client(cf)
	tok, err := c.RequestTestToken(ctx, *subject)
	if err != nil {
		return errReported
	}
	if isJSON(cf) {
		return a.writeJSON(tok)
	}
	fmt.Fprintf(a.stdout, "Signed in as %s; token saved to %s\n", tok.Subject, *cf.tokenFile)
	return nil
}

func (a *app) runLogout(args []string) error {
	fs, cf := a.newFlagSet("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.client(cf).Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Token removed.")
	return nil
}

func (a *app) runReport(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("report")
	username := fs.String("username", "", "Handle of the suspected fake account")
	platform := fs.String("platform", "", "twitter|instagram|facebook|linkedin")
	reason := fs.String("reason", "", "Why the account looks fake (10-1000 characters)")
	screenshot := fs.String("screenshot", "", "Optional screenshot URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res := a.client(cf).SubmitReport(ctx, dto.CreateReportRequest{
		Username:      *username,
		Platform:      models.Platform(*platform),
		Reason:        *reason,
		ScreenshotURL: *screenshot,
	})
	if !res.Success {
		return errReported
	}
	if isJSON(cf) {
		return a.writeJSON(res.Report)
	}
	fmt.Fprintf(a.stdout, "Report %s created (status %s)\n", res.Report.ID, res.Report.Status)
	return nil
}

func (a *app) runReports(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("reports")
	status := fs.String("status", "", "Filter by status: pending|reviewed|dismissed")
	platform := fs.String("platform", "", "Filter by platform")
	limit := fs.Int("limit", 20, "Page size (max 100)")
	offset := fs.Int("offset", 0, "Page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.client(cf).GetReports(ctx, client.ReportQuery{
		Status:   models.ReportStatus(*status),
		Platform: models.Platform(*platform),
		Limit:    *limit,
		Offset:   *offset,
	})
	if err != nil {
		return errReported
	}
	if isJSON(cf) {
		return a.writeJSON(out)
	}
	_, err = io.WriteString(a.stdout, renderReportsTable(out))
	return err
}

func (a *app) runAlerts(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("alerts")
	status := fs.String("status", "", "Filter by status: new|investigating|resolved|false_positive")
	level := fs.String("level", "", "Filter by level: low|medium|high|critical")
	platform := fs.String("platform", "", "Filter by platform")
	limit := fs.Int("limit", 20, "Page size (max 100)")
	offset := fs.Int("offset", 0, "Page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := a.client(cf).GetAlerts(ctx, client.AlertQuery{
		Status:   models.AlertStatus(*status),
		Level:    models.AlertLevel(*level),
		Platform: models.Platform(*platform),
		Limit:    *limit,
		Offset:   *offset,
	})
	if err != nil {
		return errReported
	}
	if isJSON(cf) {
		return a.writeJSON(out)
	}
	_, err = io.WriteString(a.stdout, renderAlertsTable(out))
	return err
}

func (a *app) runAlert(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("alert")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: fakeguard alert [flags] <id>")
	}

	alert, err := a.client(cf).GetAlert(ctx, fs.Arg(0))
	if err != nil {
		return errReported
	}
	if isJSON(cf) {
		return a.writeJSON(alert)
	}
	fmt.Fprintf(a.stdout, "%s\n", alert.Title)
	fmt.Fprintf(a.stdout, "- profile: @%s on %s\n", alert.Profile.Username, alert.Profile.Platform)
	fmt.Fprintf(a.stdout, "- level: %s (risk %d)\n", alert.AlertLevel, alert.RiskScore)
	fmt.Fprintf(a.stdout, "- status: %s\n", alert.Status)
	if len(alert.Indicators) > 0 {
		fmt.Fprintf(a.stdout, "- indicators: %s\n", strings.Join(alert.Indicators, ", "))
	}
	if alert.Description != "" {
		fmt.Fprintf(a.stdout, "\n%s\n", alert.Description)
	}
	return nil
}

func (a *app) runAnalyze(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("analyze")
	username := fs.String("username", "", "Handle to analyze")
	platform := fs.String("platform", "", "twitter|instagram|facebook|telegram|linkedin")
	profileURL := fs.String("profile-url", "", "Optional profile URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.client(cf).AnalyzeProfile(ctx, dto.AnalyzeProfileRequest{
		Username:   *username,
		Platform:   models.Platform(*platform),
		ProfileURL: *profileURL,
	})
	if err != nil {
		return errReported
	}
	if isJSON(cf) {
		return a.writeJSON(result)
	}
	_, err = io.WriteString(a.stdout, renderAnalysis(result))
	return err
}

func (a *app) runVerify(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("verify")
	imagePath := fs.String("image", "", "Path to a JPEG, PNG or GIF file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imagePath == "" {
		return errors.New("-image is required")
	}

	data, err := os.ReadFile(*imagePath)
	if err != nil {
		return err
	}
	result, err := a.client(cf).VerifyImage(ctx, *imagePath, data)
	if err != nil {
		return errReported
	}
	if isJSON(cf) {
		return a.writeJSON(result)
	}
	_, err = io.WriteString(a.stdout, renderImageResult(result))
	return err
}

func (a *app) runPDF(ctx context.Context, args []string) error {
	fs, cf := a.newFlagSet("pdf")
	username := fs.String("username", "", "Handle to analyze")
	platform := fs.String("platform", "", "twitter|instagram|facebook|telegram|linkedin")
	imagePath := fs.String("image", "", "Optional profile image to include")
	out := fs.String("out", "", "Output path (default fakeguard-report-<username>.pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := a.client(cf)
	analysis, err := c.AnalyzeProfile(ctx, dto.AnalyzeProfileRequest{
		Username: *username,
		Platform: models.Platform(*platform),
	})
	if err != nil {
		return errReported
	}

	req := dto.GenerateReportRequest{Analysis: analysis}
	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			return err
		}
		if req.ImageVerification, err = c.VerifyImage(ctx, *imagePath, data); err != nil {
			return errReported
		}
	}

	blob, err := c.DownloadReport(ctx, req)
	if err != nil {
		return errReported
	}

	path := *out
	if path == "" {
		path = pdfFilename(analysis.Username)
	}
	if err := client.SavePDF(path, blob); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Saved %s (%d bytes)\n", path, len(blob))
	return nil
}

func isJSON(cf commonFlags) bool {
	return strings.EqualFold(strings.TrimSpace(*cf.format), "json")
}

func (a *app) writeJSON(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(append(payload, '\n'))
	return err
}

func pdfFilename(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	name := strings.Trim(b.String(), ".")
	if name == "" {
		name = "profile"
	}
	return "fakeguard-report-" + name + ".pdf"
}

// toastWriter prints client toasts to stderr.
type toastWriter struct {
	w io.Writer
}

func (t *toastWriter) Notify(toast client.Toast) {
	fmt.Fprintf(t.w, "[%s] %s: %s\n", toast.Level, toast.Title, toast.Message)
}

func (a *app) printRootUsage(w io.Writer) {
	fmt.Fprintln(w, "fakeguard - fake account detection client")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  fakeguard <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  token    Request a demo bearer token and save it")
	fmt.Fprintln(w, "  logout   Remove the saved token")
	fmt.Fprintln(w, "  report   Report a suspected fake account")
	fmt.Fprintln(w, "  reports  List submitted reports (requires token)")
	fmt.Fprintln(w, "  alerts   List security alerts (requires token)")
	fmt.Fprintln(w, "  alert    Show one alert by id (requires token)")
	fmt.Fprintln(w, "  analyze  Score a profile for fake-account indicators")
	fmt.Fprintln(w, "  verify   Check a profile image for manipulation")
	fmt.Fprintln(w, "  pdf      Analyze a profile and save a PDF report")
}
