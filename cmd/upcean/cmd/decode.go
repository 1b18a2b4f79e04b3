package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericlevine/upcean/internal/metrics"
	"github.com/ericlevine/upcean/internal/scan"
	"github.com/ericlevine/upcean/oned"
)

func newDecodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file...]",
		Short: "Decode barcode rows read from files or stdin",
		Long: `Decode every row of the given files, or of stdin when no file is given.
Each row gets one line of output; rows where no barcode is found are listed
with the reason.

Examples:
  upcean decode rows.txt
  upcean decode --formats ean13,upca --also-inverted < rows.txt
  upcean decode --output yaml --stats rows.txt`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         a.runDecode,
	}

	f := cmd.Flags()
	f.StringSlice("formats", nil, "formats to look for (ean13, ean8, upca, upce); default all")
	f.Bool("try-reverse", true, "also decode each row right to left")
	f.Bool("also-inverted", false, "also decode each row with black and white swapped")
	f.Int("workers", 0, "rows decoded in parallel (default: number of CPUs)")
	f.StringP("output", "o", "table", "output format (table, json, yaml)")
	f.Bool("stats", false, "print decode statistics after the results")
	f.String("metrics-file", "", "write decode metrics in prometheus text format to this file")
	a.bind("decode.formats", f.Lookup("formats"))
	a.bind("decode.try_reverse", f.Lookup("try-reverse"))
	a.bind("decode.also_inverted", f.Lookup("also-inverted"))
	a.bind("decode.workers", f.Lookup("workers"))
	a.bind("output.format", f.Lookup("output"))
	a.bind("output.stats", f.Lookup("stats"))
	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, args []string) error {
	opts, err := a.cfg.DecodeOptions()
	if err != nil {
		return err
	}

	var rows []scan.Row
	if len(args) == 0 {
		rows, err = readRows(cmd.InOrStdin(), "stdin", a.cfg.Input.Format, 0)
		if err != nil {
			return err
		}
	}
	for _, path := range args {
		fileRows, err := readFile(path, a.cfg.Input.Format, len(rows))
		if err != nil {
			return err
		}
		rows = append(rows, fileRows...)
	}
	if len(rows) == 0 {
		return errors.New("no rows to decode")
	}

	recorder := metrics.NewRecorder()
	scanner := scan.New(oned.NewMultiFormatUPCEANReader(opts), opts,
		scan.WithWorkers(a.cfg.Decode.Workers),
		scan.WithLogger(a.logger),
		scan.WithRecorder(recorder))

	a.logger.Debug("decoding rows", "rows", len(rows), "workers", a.cfg.Decode.Workers)
	outcomes, err := scanner.Scan(cmd.Context(), rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeOutcomes(out, a.cfg.Output.Format, outcomes); err != nil {
		return err
	}
	if a.cfg.Output.Stats {
		if err := writeStats(out, recorder); err != nil {
			return err
		}
	}

	if path, _ := cmd.Flags().GetString("metrics-file"); path != "" {
		if err := writeMetricsFile(path, recorder); err != nil {
			return err
		}
	}

	for _, o := range outcomes {
		if o.Err == nil {
			return nil
		}
	}
	return fmt.Errorf("no barcode found in %d rows", len(rows))
}

func readFile(path, inputFormat string, first int) ([]scan.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRows(f, path, inputFormat, first)
}

func writeMetricsFile(path string, recorder *metrics.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := recorder.WriteText(f); err != nil {
		f.Close()
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return f.Close()
}
