package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finsight/scenario-engine/internal/domain"
)

// CSVFormatter writes one row per projection point, with the scenario-
// adjusted value alongside the baseline when present.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	hasScenarios := len(report.WithScenarios) > 0
	header := []string{"Month", "IsHistorical", "Baseline"}
	if hasScenarios {
		header = append(header, "WithScenarios", "Delta")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, p := range report.Baseline {
		row := []string{
			p.Timestamp.Format("2006-01"),
			strconv.FormatBool(p.IsHistorical),
			p.NetWorth.StringFixed(2),
		}
		if hasScenarios {
			adjusted := p.NetWorth
			if i < len(report.WithScenarios) {
				adjusted = report.WithScenarios[i].NetWorth
			}
			row = append(row, adjusted.StringFixed(2), adjusted.Sub(p.NetWorth).StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
