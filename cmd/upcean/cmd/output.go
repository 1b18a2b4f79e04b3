package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/internal/config"
	"github.com/ericlevine/upcean/internal/metrics"
	"github.com/ericlevine/upcean/internal/scan"
)

type point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// rowRecord is the serialized form of one scan outcome.
type rowRecord struct {
	Row      int                    `json:"row" yaml:"row"`
	Text     string                 `json:"text,omitempty" yaml:"text,omitempty"`
	Format   string                 `json:"format,omitempty" yaml:"format,omitempty"`
	Points   []point                `json:"points,omitempty" yaml:"points,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Error    string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRowRecord(o scan.Outcome) rowRecord {
	rec := rowRecord{Row: o.Row}
	if o.Err != nil {
		rec.Error = o.Err.Error()
		return rec
	}
	rec.Text = o.Result.Text
	rec.Format = o.Result.Format.String()
	for _, p := range o.Result.Points {
		rec.Points = append(rec.Points, point{X: p.X, Y: p.Y})
	}
	if len(o.Result.Metadata) > 0 {
		rec.Metadata = make(map[string]interface{}, len(o.Result.Metadata))
		for k, v := range o.Result.Metadata {
			rec.Metadata[k.String()] = v
		}
	}
	return rec
}

func writeOutcomes(w io.Writer, format string, outcomes []scan.Outcome) error {
	records := make([]rowRecord, len(outcomes))
	for i, o := range outcomes {
		records[i] = newRowRecord(o)
	}

	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTable(w, []string{"Row", "Format", "Text", "Status"}, tableRows(records))
	}
}

func tableRows(records []rowRecord) [][]string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		status := "ok"
		if rec.Error != "" {
			status = rec.Error
		} else if rec.Metadata[upcean.MetadataOrientation.String()] == 180 {
			status = "ok (reversed)"
		}
		if rec.Metadata[upcean.MetadataInverted.String()] == true {
			status += " (inverted)"
		}
		rows[i] = []string{strconv.Itoa(rec.Row), rec.Format, rec.Text, status}
	}
	return rows
}

// writeStats prints the decode counter as a table with grouped numbers.
func writeStats(w io.Writer, recorder *metrics.Recorder) error {
	counts, err := recorder.Summary()
	if err != nil {
		return err
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Rows > counts[j].Rows })

	p := message.NewPrinter(language.English)
	var total uint64
	rows := make([][]string, 0, len(counts)+1)
	for _, c := range counts {
		total += c.Rows
		rows = append(rows, []string{c.Format, c.Outcome, c.Stage, p.Sprintf("%d", c.Rows)})
	}
	rows = append(rows, []string{"", "", "total", p.Sprintf("%d", total)})

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeTable(w, []string{"Format", "Outcome", "Stage", "Rows"}, rows)
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
	_, err := w.Write(buf.Bytes())
	return err
}
