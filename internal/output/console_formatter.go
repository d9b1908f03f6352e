package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/finsight/scenario-engine/internal/domain"
	"github.com/finsight/scenario-engine/pkg/money"
)

// ConsoleFormatter renders the projection report as an aligned text table
// with the effect summary and conflict warnings beneath it.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "Net-Worth Projection (%d months ahead)\n", report.Months)
	fmt.Fprintf(buf, "Current net worth: %s\n\n", money.FormatUSD(report.CurrentNetWorth))

	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	if len(report.WithScenarios) > 0 {
		fmt.Fprintln(w, "Month\tPhase\tBaseline\tWith Scenarios\tDelta")
		for i, p := range report.Baseline {
			adjusted := p
			if i < len(report.WithScenarios) {
				adjusted = report.WithScenarios[i]
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				p.Timestamp.Format("2006-01"),
				phase(p),
				money.FormatUSD(p.NetWorth),
				money.FormatUSD(adjusted.NetWorth),
				money.FormatUSD(adjusted.NetWorth.Sub(p.NetWorth)),
			)
		}
	} else {
		fmt.Fprintln(w, "Month\tPhase\tNet Worth")
		for _, p := range report.Baseline {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Timestamp.Format("2006-01"), phase(p), money.FormatUSD(p.NetWorth))
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	if len(report.Effects) > 0 {
		fmt.Fprintln(buf, "\nActive scenario effects:")
		ew := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(ew, "Scenario\tTemplate\tNet Effect\tMonthly\tRisk")
		for _, e := range report.Effects {
			fmt.Fprintf(ew, "%s\t%s\t%s\t%s\t%s\n",
				e.ScenarioName,
				e.TemplateType,
				money.FormatUSD(e.Effect.NetEffect),
				money.FormatUSD(e.Effect.MonthlyChange),
				e.Effect.RiskLevel,
			)
		}
		if err := ew.Flush(); err != nil {
			return nil, err
		}
	}

	if report.Combined != nil {
		fmt.Fprintf(buf, "\nCombined: net %s, monthly %s, %d transactions affected, risk %s\n",
			money.FormatUSD(report.Combined.NetEffect),
			money.FormatUSD(report.Combined.MonthlyChange),
			report.Combined.AffectedTransactions,
			report.Combined.RiskLevel,
		)
	}

	for _, conflict := range report.Conflicts {
		fmt.Fprintf(buf, "WARNING [%s] %s: %s\n", conflict.Severity, conflict.Name, conflict.Detail)
	}

	return buf.Bytes(), nil
}

func phase(p domain.ProjectionPoint) string {
	if p.IsHistorical {
		return "history"
	}
	return "forecast"
}
