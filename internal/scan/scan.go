// Package scan decodes many rows concurrently, retrying each row reversed
// and inverted when the options ask for it.
package scan

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
	"github.com/ericlevine/upcean/internal/metrics"
)

// Row is one numbered row of pixels.
type Row struct {
	Number int
	Bits   *bitutil.BitArray
}

// Outcome is the decode result of one row. Exactly one of Result and Err is set.
type Outcome struct {
	Row    int
	Result *upcean.Result
	Err    error
}

// Scanner decodes rows with a RowReader.
type Scanner struct {
	reader   upcean.RowReader
	opts     *upcean.DecodeOptions
	workers  int
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers bounds the number of rows decoded at once.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder records every row decode in r.
func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Scanner) {
		s.recorder = r
	}
}

// New creates a scanner that decodes with reader under opts.
func New(reader upcean.RowReader, opts *upcean.DecodeOptions, options ...Option) *Scanner {
	if opts == nil {
		opts = &upcean.DecodeOptions{}
	}
	s := &Scanner{
		reader:  reader,
		opts:    opts,
		workers: 1,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Scan decodes every row and returns one outcome per row, in input order.
// Decode failures are reported in the outcomes; the returned error is only
// set when ctx ends before all rows are done. Rows skipped that way carry
// ctx.Err() in their outcome.
func (s *Scanner) Scan(ctx context.Context, rows []Row) ([]Outcome, error) {
	outcomes := make([]Outcome, len(rows))
	var skipped atomic.Bool
	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				skipped.Store(true)
				outcomes[i] = Outcome{Row: row.Number, Err: err}
				return nil
			}
			result, err := s.DecodeRow(row)
			outcomes[i] = Outcome{Row: row.Number, Result: result, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if skipped.Load() {
		return outcomes, ctx.Err()
	}
	return outcomes, nil
}

// DecodeRow decodes one row: as given, then reversed when TryReverse is set,
// then the same again with black and white swapped when AlsoInverted is set.
// The most informative failure is returned when every attempt fails.
func (s *Scanner) DecodeRow(row Row) (*upcean.Result, error) {
	start := time.Now()
	result, err := s.decodeRow(row)
	if s.recorder != nil {
		s.recorder.ObserveRow(result, err, time.Since(start), row.Bits.Size())
	}

	if err != nil {
		s.logger.Debug("row not decoded", "row", row.Number, "width", row.Bits.Size(), "error", err)
		return nil, err
	}
	s.logger.Debug("row decoded",
		"row", row.Number,
		"format", result.Format.String(),
		"text", result.Text,
		"orientation", result.Metadata[upcean.MetadataOrientation],
		"inverted", result.Metadata[upcean.MetadataInverted] == true)
	return result, nil
}

func (s *Scanner) decodeRow(row Row) (*upcean.Result, error) {
	result, err := s.decodeOrientations(row, row.Bits)
	if err == nil || !s.opts.AlsoInverted {
		return result, err
	}

	inverted := row.Bits.Clone()
	inverted.Invert()
	result, invErr := s.decodeOrientations(row, inverted)
	if invErr != nil {
		return nil, upcean.MostSevere(err, invErr)
	}
	result.PutMetadata(upcean.MetadataInverted, true)
	return result, nil
}

func (s *Scanner) decodeOrientations(row Row, bits *bitutil.BitArray) (*upcean.Result, error) {
	result, err := s.reader.DecodeRow(row.Number, bits, s.opts)
	if err == nil || !s.opts.TryReverse {
		return result, err
	}

	reversed := bits.Clone()
	reversed.Reverse()
	result, revErr := s.reader.DecodeRow(row.Number, reversed, s.opts)
	if revErr != nil {
		return nil, upcean.MostSevere(err, revErr)
	}

	// Points were found on the reversed row; map them back.
	width := float64(bits.Size())
	for i, p := range result.Points {
		result.Points[i] = upcean.ResultPoint{X: width - p.X, Y: p.Y}
	}
	result.PutMetadata(upcean.MetadataOrientation, 180)
	return result, nil
}
