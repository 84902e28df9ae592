package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/user/cspm-sim/pkg/ui"
)

const (
	DefaultScannerName = "ENTERPRISE CSPM SCANNER v4.2"
	DefaultTarget      = "AWS (12 accounts) & Azure (4 subscriptions)"

	progressBlocks = 20
	ruleWidth      = 60
	tableWidth     = 75
)

// Options configures a ReportEngine. Zero values are replaced by defaults.
type Options struct {
	ScannerName       string
	Target            string
	TotalAssets       int
	ComplianceScore   int
	AutoFixedBaseline int
	ScorePolicy       ScorePolicy

	Styler      *ui.Styler
	Pacer       ui.Pacer
	Ticketer    Ticketer
	Clock       func() time.Time
	Remediation *RemediationEngine
}

// DefaultOptions returns the stock dashboard options
func DefaultOptions() Options {
	return Options{
		ScannerName:       DefaultScannerName,
		Target:            DefaultTarget,
		TotalAssets:       DefaultTotalAssets,
		ComplianceScore:   DefaultComplianceScore,
		AutoFixedBaseline: DefaultAutoFixedBaseline,
		ScorePolicy:       ScoreConstant,
	}
}

// ReportEngine renders the posture report for a catalog of findings
type ReportEngine struct {
	opts    Options
	numbers *message.Printer
}

// NewReportEngine creates an engine, filling unset dependencies
func NewReportEngine(opts Options) (*ReportEngine, error) {
	def := DefaultOptions()
	if opts.ScannerName == "" {
		opts.ScannerName = def.ScannerName
	}
	if opts.Target == "" {
		opts.Target = def.Target
	}
	if opts.ScorePolicy == "" {
		opts.ScorePolicy = def.ScorePolicy
	}
	if opts.Styler == nil {
		opts.Styler = ui.Plain()
	}
	if opts.Pacer == nil {
		opts.Pacer = ui.NoPacing{}
	}
	if opts.Ticketer == nil {
		opts.Ticketer = NewUUIDTicketer("JIRA")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Remediation == nil {
		r, err := NewRemediationEngine()
		if err != nil {
			return nil, err
		}
		opts.Remediation = r
	}

	return &ReportEngine{
		opts:    opts,
		numbers: message.NewPrinter(language.English),
	}, nil
}

// Run prints the full report to w. The findings are copied first and never
// modified. On cancellation the open line is terminated and ctx.Err() is
// returned together with the counters gathered so far.
func (e *ReportEngine) Run(ctx context.Context, w io.Writer, findings []Finding) (Result, error) {
	catalog := make([]Finding, len(findings))
	copy(catalog, findings)

	c := ui.NewConsole(w, e.opts.Pacer)
	res, err := e.run(ctx, c, catalog)
	if err != nil {
		c.Terminate()
		return res, err
	}
	return res, c.Err()
}

func (e *ReportEngine) run(ctx context.Context, c *ui.Console, catalog []Finding) (Result, error) {
	log := zerolog.Ctx(ctx)
	res := Result{Total: len(catalog)}

	if err := e.header(ctx, c); err != nil {
		return res, err
	}

	c.Println(fmt.Sprintf("%-25s | %-5s | %-30s | %s", "ASSET ID", "SERVICE", "CHECK", "STATUS"))
	c.Println(strings.Repeat("-", tableWidth))

	for _, f := range catalog {
		if err := c.Pause(ctx, 200*time.Millisecond); err != nil {
			return res, err
		}
		action, err := e.process(ctx, c, f, &res)
		if err != nil {
			return res, err
		}
		log.Debug().Str("finding", f.ID).Stringer("action", action).Msg("finding processed")
	}

	if err := e.background(ctx, c, len(catalog)); err != nil {
		return res, err
	}

	sum := Summarize(res, e.opts)
	e.dashboard(c, sum)
	log.Debug().
		Int("auto_fixed", res.AutoFixed).
		Int("open_critical", res.OpenCritical).
		Int("score", sum.Score).
		Str("policy", string(sum.Policy)).
		Msg("report complete")
	return res, nil
}

func (e *ReportEngine) header(ctx context.Context, c *ui.Console) error {
	s := e.opts.Styler

	c.Println("")
	c.Println(s.Label(ui.LabelHeader, fmt.Sprintf("=== %s ===", e.opts.ScannerName)))
	c.Println("Target: " + e.opts.Target)
	c.Println("Timestamp: " + e.opts.Clock().Format("2006-01-02 15:04:05"))
	c.Println(strings.Repeat("-", ruleWidth))

	open, close := s.Codes(ui.LabelInfo)
	if err := c.TypeStyled(ctx, open, "[INIT] Authenticating with Cloud Providers...", close); err != nil {
		return err
	}
	if err := c.Pause(ctx, 500*time.Millisecond); err != nil {
		return err
	}
	for _, label := range []string{"Fetching Asset Inventory", "Syncing Compliance Policies"} {
		if err := e.progress(ctx, c, label); err != nil {
			return err
		}
	}

	c.Println(s.Label(ui.LabelReady, e.numbers.Sprintf("[READY] Inventory Loaded: %d Total Assets found.", e.opts.TotalAssets)))
	c.Println(strings.Repeat("-", ruleWidth))
	return c.Pause(ctx, time.Second)
}

func (e *ReportEngine) progress(ctx context.Context, c *ui.Console, label string) error {
	block := e.opts.Styler.Icon("█", "#")
	c.Print(fmt.Sprintf("%-30s", label))
	for i := 0; i < progressBlocks; i++ {
		if err := c.Pause(ctx, ui.Jitter(20*time.Millisecond, 80*time.Millisecond)); err != nil {
			return err
		}
		c.Print(block)
	}
	c.Println(" 100%")
	return nil
}

// process renders one finding and applies its remediation decision
func (e *ReportEngine) process(ctx context.Context, c *ui.Console, f Finding, res *Result) (Action, error) {
	s := e.opts.Styler

	c.Println(fmt.Sprintf("%-25s | %-5s | %-30s | %s", f.ID, f.Kind, f.Check, s.Label(statusStyle(f), f.StatusLabel())))

	action := Dispatch(f)
	switch action {
	case ActionNone:
		res.Passed++
		return action, nil
	case ActionAutoFix:
		res.Failed++
		trigger, fixed, err := e.opts.Remediation.Plan(f)
		if err != nil {
			return action, err
		}
		if err := c.Pause(ctx, 300*time.Millisecond); err != nil {
			return action, err
		}
		c.Println(followUp(s.Label(ui.LabelWarning, trigger)))
		if err := c.Pause(ctx, 800*time.Millisecond); err != nil {
			return action, err
		}
		c.Println(followUp(s.Label(ui.LabelSecure, s.Icon("✅ ", "[+] ")+fixed)))
		res.AutoFixed++
	case ActionBlocked:
		res.Failed++
		if err := c.Pause(ctx, 200*time.Millisecond); err != nil {
			return action, err
		}
		ticket := e.opts.Ticketer.Next()
		res.Tickets = append(res.Tickets, ticket)

		c.Println(followUp(s.Label(ui.LabelCritical, s.Icon("⛔ ", "[x] ")+"AUTO-REMEDIATION BLOCKED (Requires Manual Approval)")))
		c.Println(followUp(s.Label(ui.LabelTicket, s.Icon("ℹ️  ", "[i] ")+"Ticket created: "+ticket)))
		if f.Recommendation != "" {
			c.Println(followUp("Recommendation: " + f.Recommendation))
		}
		if f.Severity == SeverityCritical {
			res.OpenCritical++
		}
	}
	return action, nil
}

func (e *ReportEngine) background(ctx context.Context, c *ui.Console, scanned int) error {
	remaining := e.opts.TotalAssets - scanned
	if remaining <= 0 {
		return nil
	}
	c.Println("...")
	if err := c.Pause(ctx, 500*time.Millisecond); err != nil {
		return err
	}
	c.Println(e.opts.Styler.Label(ui.LabelInfo, e.numbers.Sprintf("[INFO] Scanning remaining %d assets in background...", remaining)))
	if err := c.Pause(ctx, 1500*time.Millisecond); err != nil {
		return err
	}
	c.Println("...")
	return nil
}

func (e *ReportEngine) dashboard(c *ui.Console, sum Summary) {
	s := e.opts.Styler
	shield := s.Icon("🛡️ ", "")

	c.Println("")
	c.Println(strings.Repeat("=", ruleWidth))
	c.Println(s.Label(ui.LabelBold, fmt.Sprintf("   %s SECURITY POSTURE DASHBOARD REPORT   %s", shield, shield)))
	c.Println(strings.Repeat("=", ruleWidth))

	c.Println("Total Assets Scanned:       " + s.Label(ui.LabelBold, e.numbers.Sprintf("%d", sum.TotalAssets)))
	c.Println("Critical Vulnerabilities:   " + s.Label(ui.LabelCritical, fmt.Sprintf("%d Open", sum.OpenCritical)) + " (Requires Action)")
	c.Println("Auto-Remediated (7d):       " + s.Label(ui.LabelSecure, fmt.Sprintf("%d Fixed", sum.AutoFixed)))
	c.Println(strings.Repeat("-", ruleWidth))

	c.Println("COMPLIANCE SCORE:           " + s.Label(ui.LabelScore, fmt.Sprintf("%d%% (%s)", sum.Score, sum.ScoreNote)))
	c.Println(strings.Repeat("=", ruleWidth))
	c.Println("Data synced to Central Dashboard at " + e.opts.Clock().Format("15:04"))
}

func followUp(line string) string {
	return "   └── " + line
}

// statusStyle maps a finding's status and severity to a label
func statusStyle(f Finding) ui.Label {
	if !f.Failed() {
		return ui.LabelSecure
	}
	return SeverityLabel(f.Severity)
}

// SeverityLabel is the styling label for a severity
func SeverityLabel(sev Severity) ui.Label {
	switch sev {
	case SeverityCritical:
		return ui.LabelCritical
	case SeverityHigh:
		return ui.LabelHigh
	default:
		return ui.LabelInfo
	}
}
