package simulation

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// Stats holds latency measurements for a set of operations.
type Stats struct {
	latencies []time.Duration
}

// NewStats creates a Stats object.
func NewStats() *Stats {
	return &Stats{
		latencies: make([]time.Duration, 0, 1000),
	}
}

// Record adds one measurement (the latency) to the stats.
func (s *Stats) Record(d time.Duration) {
	s.latencies = append(s.latencies, d)
}

// Len returns how many measurements we have.
func (s *Stats) Len() int {
	return len(s.latencies)
}

// Compute calculates p50, p95, p99, plus overall ops/sec for the given
// operation count and elapsed time.
func (s *Stats) Compute(totalOps int, totalTime time.Duration) (p50, p95, p99 time.Duration, opsSec float64) {
	n := len(s.latencies)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sort.Slice(s.latencies, func(i, j int) bool {
		return s.latencies[i] < s.latencies[j]
	})

	percentileIndex := func(p float64) int {
		if p <= 0 {
			return 0
		}
		idx := int(float64(n)*p) - 1
		if idx < 0 {
			return 0
		}
		if idx >= n {
			return n - 1
		}
		return idx
	}

	p50 = s.latencies[percentileIndex(0.50)]
	p95 = s.latencies[percentileIndex(0.95)]
	p99 = s.latencies[percentileIndex(0.99)]

	opsSec = float64(totalOps) / totalTime.Seconds()
	return p50, p95, p99, opsSec
}

// WriteCSV writes one row per filter run to a CSV file, for offline analysis
// of repeated benchmark runs.
func WriteCSV(filename string, runs []Metrics) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"filter", "insert_count", "insert_time_ms", "insert_ops_sec",
		"query_count", "query_time_ms", "query_ops_sec",
		"query_p50_us", "query_p95_us", "query_p99_us",
		"false_positive_rate", "collision_rate", "filter_bytes",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range runs {
		row := []string{
			m.Label,
			strconv.Itoa(m.InsertCount),
			fmt.Sprintf("%d", m.InsertTime.Milliseconds()),
			fmt.Sprintf("%.2f", m.InsertOpsPerSec),
			strconv.Itoa(m.QueryCount),
			fmt.Sprintf("%d", m.QueryTime.Milliseconds()),
			fmt.Sprintf("%.2f", m.QueryOpsPerSec),
			fmt.Sprintf("%.2f", float64(m.QueryP50.Microseconds())),
			fmt.Sprintf("%.2f", float64(m.QueryP95.Microseconds())),
			fmt.Sprintf("%.2f", float64(m.QueryP99.Microseconds())),
			fmt.Sprintf("%.6f", m.FalsePositiveRate),
			fmt.Sprintf("%.6f", m.CollisionRate),
			strconv.FormatUint(m.FilterBytes, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
