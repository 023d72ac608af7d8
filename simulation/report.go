package simulation

import (
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"
)

type metricStyle int

const (
	styleCount metricStyle = iota
	styleTime
	styleBytes
	styleMB
	stylePercent
)

func formatMetric(v float64, style metricStyle) string {
	switch style {
	case styleTime:
		return fmt.Sprintf("%.5f s", v)
	case styleBytes:
		return fmt.Sprintf("%.0f B", v)
	case styleMB:
		return fmt.Sprintf("%.2f MB", v)
	case stylePercent:
		return fmt.Sprintf("%.4f%%", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// formatDiff renders the relative change of the blocked filter against the
// standard one.
func formatDiff(std, blocked float64) string {
	if math.Abs(std) < 1e-12 {
		if math.Abs(blocked) < 1e-12 {
			return "~0.00%"
		}
		return "+Inf%"
	}
	diff := (blocked - std) / std * 100.0
	switch {
	case math.Abs(diff) < 1e-9:
		return "~0.00%"
	case diff > 0:
		return fmt.Sprintf("+%.2f%%", diff)
	default:
		return fmt.Sprintf("%.2f%%", diff)
	}
}

// WriteReport prints a side-by-side comparison of the standard and blocked
// runs, with the reference filter as a third column and the blocked-vs-
// standard relative difference as the last.
func WriteReport(w io.Writer, std, blocked, reference Metrics) {
	rows := []struct {
		name    string
		std     float64
		blocked float64
		ref     float64
		style   metricStyle
	}{
		{"Insertion Throughput (ops/sec)", std.InsertOpsPerSec, blocked.InsertOpsPerSec, reference.InsertOpsPerSec, styleCount},
		{"Insertion Time", std.InsertTime.Seconds(), blocked.InsertTime.Seconds(), reference.InsertTime.Seconds(), styleTime},
		{"Query Throughput (ops/sec)", std.QueryOpsPerSec, blocked.QueryOpsPerSec, reference.QueryOpsPerSec, styleCount},
		{"Query Time", std.QueryTime.Seconds(), blocked.QueryTime.Seconds(), reference.QueryTime.Seconds(), styleTime},
		{"Insert Count", float64(std.InsertCount), float64(blocked.InsertCount), float64(reference.InsertCount), styleCount},
		{"Query Count", float64(std.QueryCount), float64(blocked.QueryCount), float64(reference.QueryCount), styleCount},
		{"Filter Size", float64(std.FilterBytes), float64(blocked.FilterBytes), float64(reference.FilterBytes), styleBytes},
		{"Filter Size (MB)", std.FilterMB, blocked.FilterMB, reference.FilterMB, styleMB},
		{"False Positive Rate", std.FalsePositiveRate * 100, blocked.FalsePositiveRate * 100, reference.FalsePositiveRate * 100, stylePercent},
		{"Collision Rate", std.CollisionRate * 100, blocked.CollisionRate * 100, reference.CollisionRate * 100, stylePercent},
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Standard", "Blocked", "Reference", "Blocked vs Std"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, row := range rows {
		table.Append([]string{
			row.name,
			formatMetric(row.std, row.style),
			formatMetric(row.blocked, row.style),
			formatMetric(row.ref, row.style),
			formatDiff(row.std, row.blocked),
		})
	}
	table.Render()
}
