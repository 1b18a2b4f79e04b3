package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ericlevine/upcean/bitutil"
	"github.com/ericlevine/upcean/internal/config"
	"github.com/ericlevine/upcean/internal/scan"
)

const maxRowBytes = 16 << 20

// readRows parses one row per line. Blank lines and lines starting with '#'
// are skipped. Rows are numbered from first on.
func readRows(r io.Reader, name, inputFormat string, first int) ([]scan.Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRowBytes)

	var rows []scan.Row
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		bits, err := parseRow(text, inputFormat)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		rows = append(rows, scan.Row{Number: first + len(rows), Bits: bits})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return rows, nil
}

func parseRow(text, inputFormat string) (*bitutil.BitArray, error) {
	if inputFormat == config.InputRuns {
		runs, err := bitutil.ParseRuns(text)
		if err != nil {
			return nil, err
		}
		return bitutil.NewBitArrayFromRuns(runs, false)
	}
	return bitutil.ParseBitArray(text)
}

// formatRow writes a row in the form readRows reads back.
func formatRow(row *bitutil.BitArray, inputFormat string) string {
	if inputFormat == config.InputRuns {
		runs := row.Runs()
		fields := make([]string, len(runs))
		for i, r := range runs {
			fields[i] = strconv.Itoa(r)
		}
		return strings.Join(fields, " ")
	}
	return strings.ReplaceAll(row.String(), " ", "")
}
