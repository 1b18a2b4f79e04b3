package scan

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
	"github.com/ericlevine/upcean/internal/metrics"
	"github.com/ericlevine/upcean/oned"
)

func encode(t *testing.T, contents string, format upcean.Format) *bitutil.BitArray {
	t.Helper()
	row, err := upcean.Encode(contents, format, nil)
	require.NoError(t, err)
	return row
}

func TestScanKeepsRowOrder(t *testing.T) {
	codes := []struct {
		contents string
		format   upcean.Format
	}{
		{"4006381333931", upcean.FormatEAN13},
		{"96385074", upcean.FormatEAN8},
		{"036000291452", upcean.FormatUPCA},
		{"01234565", upcean.FormatUPCE},
		{"5901234123457", upcean.FormatEAN13},
	}
	var rows []Row
	for i, c := range codes {
		rows = append(rows, Row{Number: 10 + i, Bits: encode(t, c.contents, c.format)})
	}
	rows = append(rows, Row{Number: 99, Bits: bitutil.NewBitArray(150)})

	s := New(oned.NewMultiFormatUPCEANReader(nil), nil, WithWorkers(3))
	outcomes, err := s.Scan(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, outcomes, len(rows))

	for i, c := range codes {
		require.NoError(t, outcomes[i].Err, c.contents)
		assert.Equal(t, 10+i, outcomes[i].Row)
		assert.Equal(t, c.contents, outcomes[i].Result.Text)
		assert.Equal(t, c.format, outcomes[i].Result.Format)
	}
	last := outcomes[len(outcomes)-1]
	assert.Equal(t, 99, last.Row)
	assert.Nil(t, last.Result)
	assert.ErrorIs(t, last.Err, upcean.ErrNotFound)
}

func TestDecodeRowReversed(t *testing.T) {
	bits := encode(t, "4006381333931", upcean.FormatEAN13)
	bits.Reverse()
	row := Row{Number: 2, Bits: bits}
	reader := oned.NewMultiFormatUPCEANReader(nil)

	_, err := New(reader, &upcean.DecodeOptions{}).DecodeRow(row)
	assert.ErrorIs(t, err, upcean.ErrNotFound)

	result, err := New(reader, &upcean.DecodeOptions{TryReverse: true}).DecodeRow(row)
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", result.Text)
	assert.Equal(t, 180, result.Metadata[upcean.MetadataOrientation])
	// Guards sit at [10,13) and [102,105) of the unreversed 115 pixel row.
	assert.Equal(t, []upcean.ResultPoint{{X: 103.5, Y: 2}, {X: 11.5, Y: 2}}, result.Points)

	// The caller's row is untouched.
	want := encode(t, "4006381333931", upcean.FormatEAN13)
	want.Reverse()
	assert.Equal(t, want.String(), bits.String())
}

func TestScanKeepsReaderFormats(t *testing.T) {
	opts := &upcean.DecodeOptions{PossibleFormats: []upcean.Format{upcean.FormatEAN13}}
	rows := []Row{{Number: 0, Bits: encode(t, "0012345678905", upcean.FormatEAN13)}}

	outcomes, err := New(oned.NewMultiFormatUPCEANReader(opts), nil).Scan(context.Background(), rows)
	require.NoError(t, err)
	require.NoError(t, outcomes[0].Err)
	assert.Equal(t, upcean.FormatEAN13, outcomes[0].Result.Format)
	assert.Equal(t, "0012345678905", outcomes[0].Result.Text)
}

func TestDecodeRowInverted(t *testing.T) {
	bits := encode(t, "96385074", upcean.FormatEAN8)
	bits.Invert()
	row := Row{Number: 0, Bits: bits}
	reader := oned.NewMultiFormatUPCEANReader(nil)

	_, err := New(reader, &upcean.DecodeOptions{TryReverse: true}).DecodeRow(row)
	assert.Error(t, err)

	result, err := New(reader, &upcean.DecodeOptions{AlsoInverted: true}).DecodeRow(row)
	require.NoError(t, err)
	assert.Equal(t, "96385074", result.Text)
	assert.Equal(t, true, result.Metadata[upcean.MetadataInverted])
	assert.Nil(t, result.Metadata[upcean.MetadataOrientation])

	// Upside down and inverted needs both retries.
	bits = encode(t, "96385074", upcean.FormatEAN8)
	bits.Reverse()
	bits.Invert()
	result, err = New(reader, &upcean.DecodeOptions{TryReverse: true, AlsoInverted: true}).DecodeRow(Row{Bits: bits})
	require.NoError(t, err)
	assert.Equal(t, "96385074", result.Text)
	assert.Equal(t, true, result.Metadata[upcean.MetadataInverted])
	assert.Equal(t, 180, result.Metadata[upcean.MetadataOrientation])
}

func TestScanRecordsMetricsAndLogs(t *testing.T) {
	recorder := metrics.NewRecorder()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rows := []Row{
		{Number: 0, Bits: encode(t, "96385074", upcean.FormatEAN8)},
		{Number: 1, Bits: encode(t, "4006381333931", upcean.FormatEAN13)},
		{Number: 2, Bits: bitutil.NewBitArray(40)},
	}
	s := New(oned.NewMultiFormatUPCEANReader(nil), nil,
		WithWorkers(2), WithLogger(logger), WithRecorder(recorder))
	_, err := s.Scan(context.Background(), rows)
	require.NoError(t, err)

	counts, err := recorder.Summary()
	require.NoError(t, err)
	var decoded, failed uint64
	for _, c := range counts {
		if c.Outcome == metrics.OutcomeDecoded {
			decoded += c.Rows
		} else {
			failed += c.Rows
		}
	}
	assert.Equal(t, uint64(2), decoded)
	assert.Equal(t, uint64(1), failed)

	assert.Contains(t, logs.String(), "row decoded")
	assert.Contains(t, logs.String(), "text=96385074")
	assert.Contains(t, logs.String(), "row not decoded")
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []Row{
		{Number: 4, Bits: encode(t, "96385074", upcean.FormatEAN8)},
		{Number: 5, Bits: encode(t, "4006381333931", upcean.FormatEAN13)},
	}
	outcomes, err := New(oned.NewMultiFormatUPCEANReader(nil), nil, WithWorkers(2)).Scan(ctx, rows)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, outcomes, 2)
	for i, o := range outcomes {
		assert.Equal(t, rows[i].Number, o.Row)
		assert.Nil(t, o.Result)
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestScanBackgroundContextSucceeds(t *testing.T) {
	rows := []Row{{Number: 0, Bits: bitutil.NewBitArray(50)}}
	outcomes, err := New(oned.NewMultiFormatUPCEANReader(nil), nil).Scan(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, upcean.ErrNotFound)

	outcomes, err = New(oned.NewMultiFormatUPCEANReader(nil), nil, WithWorkers(4)).Scan(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
