// Package metrics counts row decode outcomes with prometheus collectors.
package metrics

import (
	"errors"
	"io"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/oned"
)

// Outcome labels.
const (
	OutcomeDecoded  = "decoded"
	OutcomeNotFound = "not_found"
	OutcomeChecksum = "checksum"
	OutcomeFormat   = "format"
	OutcomeError    = "error"
)

const (
	rowDecodesName  = "upcean_row_decodes_total"
	formatNone      = "none"
	stageDone       = "done"
	stageUnreported = "unknown"
)

// Recorder holds the decode collectors on its own registry so several
// recorders, one per test or per command run, never collide.
type Recorder struct {
	registry *prometheus.Registry

	rowDecodes  *prometheus.CounterVec
	rowDuration prometheus.Histogram
	rowWidth    prometheus.Histogram
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		rowDecodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: rowDecodesName,
				Help: "Total number of row decode attempts",
			},
			[]string{"format", "outcome", "stage"},
		),
		rowDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "upcean_row_decode_duration_seconds",
				Help:    "Row decode duration in seconds, retries included",
				Buckets: []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .01},
			},
		),
		rowWidth: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "upcean_row_width_pixels",
				Help:    "Width of decoded rows in pixels",
				Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200},
			},
		),
	}
}

// WriteText writes every collector in the prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRow records one row decode. result is nil when err is set.
func (r *Recorder) ObserveRow(result *upcean.Result, err error, elapsed time.Duration, width int) {
	format := formatNone
	stage := stageDone
	if err == nil && result != nil {
		format = result.Format.String()
	} else {
		stage = stageUnreported
		var decodeErr *oned.DecodeError
		if errors.As(err, &decodeErr) {
			format = decodeErr.Format.String()
			stage = decodeErr.Stage.String()
		}
	}
	r.rowDecodes.WithLabelValues(format, Outcome(err), stage).Inc()
	r.rowDuration.Observe(elapsed.Seconds())
	r.rowWidth.Observe(float64(width))
}

// Outcome maps a decode error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeDecoded
	case errors.Is(err, upcean.ErrChecksum):
		return OutcomeChecksum
	case errors.Is(err, upcean.ErrFormat):
		return OutcomeFormat
	case errors.Is(err, upcean.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// Count is one series of the decode counter.
type Count struct {
	Format  string
	Outcome string
	Stage   string
	Rows    uint64
}

// Summary gathers the decode counter, ordered by format, outcome and stage.
func (r *Recorder) Summary() ([]Count, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}
	var counts []Count
	for _, family := range families {
		if family.GetName() != rowDecodesName {
			continue
		}
		for _, m := range family.GetMetric() {
			counts = append(counts, countFromMetric(m))
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if a.Format != b.Format {
			return a.Format < b.Format
		}
		if a.Outcome != b.Outcome {
			return a.Outcome < b.Outcome
		}
		return a.Stage < b.Stage
	})
	return counts, nil
}

func countFromMetric(m *dto.Metric) Count {
	c := Count{Rows: uint64(m.GetCounter().GetValue())}
	for _, label := range m.GetLabel() {
		switch label.GetName() {
		case "format":
			c.Format = label.GetValue()
		case "outcome":
			c.Outcome = label.GetValue()
		case "stage":
			c.Stage = label.GetValue()
		}
	}
	return c
}
