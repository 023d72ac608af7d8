package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/flynnfc/bloomlab/bloom"
)

// DefaultCollisionSampleLimit bounds how many held-out keys seed the
// near-miss collision analysis.
const DefaultCollisionSampleLimit = 500

// Metrics summarizes one benchmark run against a single filter.
type Metrics struct {
	Label string

	InsertCount     int
	InsertTime      time.Duration
	InsertOpsPerSec float64

	QueryCount     int
	QueryTime      time.Duration
	QueryOpsPerSec float64
	QueryP50       time.Duration
	QueryP95       time.Duration
	QueryP99       time.Duration

	MissingAfterInsert int
	FalsePositiveRate  float64
	CollisionRate      float64

	FilterBytes uint64
	FilterMB    float64
}

// Runner drives a full benchmark pass over any Filter implementation:
// timed inserts of the training partition, a zero-miss membership check,
// empirical false-positive measurement on the held-out partition, and a
// near-miss collision analysis.
type Runner struct {
	Logger               *zap.Logger
	Collector            *Collector
	CollisionSampleLimit int
	// SampleSeed makes the collision sample reproducible across runs.
	SampleSeed int64
}

// Run benchmarks f against ds and returns the collected metrics. An error is
// returned only when an inserted key goes missing, which indicates a broken
// filter rather than a measurement artifact.
func (r *Runner) Run(label string, f bloom.Filter, ds *Dataset) (Metrics, error) {
	m := Metrics{
		Label:       label,
		InsertCount: len(ds.Train),
		QueryCount:  len(ds.Test),
		FilterBytes: f.SizeBytes(),
		FilterMB:    float64(f.SizeBytes()) / (1024.0 * 1024.0),
	}

	r.Logger.Info("Inserting training keys",
		zap.String("filter", label),
		zap.Int("count", len(ds.Train)),
	)
	start := time.Now()
	for _, key := range ds.Train {
		f.Insert(key)
	}
	m.InsertTime = time.Since(start)
	if secs := m.InsertTime.Seconds(); secs > 0 {
		m.InsertOpsPerSec = float64(m.InsertCount) / secs
	}

	for _, key := range ds.Train {
		if !f.Contains(key) {
			m.MissingAfterInsert++
		}
	}
	if m.MissingAfterInsert > 0 {
		r.Logger.Error("Inserted keys reported absent",
			zap.String("filter", label),
			zap.Int("missing", m.MissingAfterInsert),
		)
		return m, fmt.Errorf("simulation: %s filter lost %d of %d inserted keys",
			label, m.MissingAfterInsert, m.InsertCount)
	}

	stats := NewStats()
	falsePositives := 0
	start = time.Now()
	for _, key := range ds.Test {
		qs := time.Now()
		hit := f.Contains(key)
		stats.Record(time.Since(qs))
		if hit {
			falsePositives++
		}
	}
	m.QueryTime = time.Since(start)
	if m.QueryCount > 0 {
		m.FalsePositiveRate = float64(falsePositives) / float64(m.QueryCount)
	}
	m.QueryP50, m.QueryP95, m.QueryP99, m.QueryOpsPerSec = stats.Compute(m.QueryCount, m.QueryTime)

	m.CollisionRate = r.collisionRate(f, ds.Test)

	r.Logger.Info("Run complete",
		zap.String("filter", label),
		zap.Float64("insert_ops_sec", m.InsertOpsPerSec),
		zap.Float64("query_ops_sec", m.QueryOpsPerSec),
		zap.Float64("false_positive_rate", m.FalsePositiveRate),
		zap.Float64("collision_rate", m.CollisionRate),
		zap.Uint64("filter_bytes", m.FilterBytes),
	)

	if r.Collector != nil {
		r.Collector.ObserveRun(m)
	}
	return m, nil
}

// collisionRate probes near-miss variants of held-out keys: a suffix
// appended, the last byte replaced, and a prefix added. Variants share most
// of their bytes with real keys, so any weakness in hash mixing shows up
// here as an elevated positive rate.
func (r *Runner) collisionRate(f bloom.Filter, test [][]byte) float64 {
	limit := r.CollisionSampleLimit
	if limit <= 0 {
		limit = DefaultCollisionSampleLimit
	}
	rng := rand.New(rand.NewSource(r.SampleSeed))
	sample := SampleKeys(test, limit, rng)

	variants := 0
	positives := 0
	probe := func(variant []byte) {
		variants++
		if f.Contains(variant) {
			positives++
		}
	}

	for _, key := range sample {
		if len(key) == 0 {
			continue
		}
		probe(append(append([]byte(nil), key...), 'X'))

		replaced := append([]byte(nil), key...)
		replaced[len(replaced)-1] = 'Z'
		probe(replaced)

		probe(append([]byte{'X'}, key...))
	}

	if variants == 0 {
		return 0
	}
	return float64(positives) / float64(variants)
}
