package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericlevine/upcean"
)

func newEncodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode --format FORMAT digits...",
		Short: "Encode digits into barcode rows",
		Long: `Encode each argument into one row, printed in the --input row format so
the output can be piped back into decode. The check digit may be left off
and is then computed.

Examples:
  upcean encode --format ean8 9638507
  upcean encode --format upce --module-width 2 --input runs 0123456`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         a.runEncode,
	}

	f := cmd.Flags()
	f.StringP("format", "f", "ean13", "barcode format (ean13, ean8, upca, upce)")
	f.Int("module-width", 1, "pixels per module")
	f.Int("quiet-zone", 10, "white modules on each side")
	a.bind("encode.module_width", f.Lookup("module-width"))
	a.bind("encode.quiet_zone", f.Lookup("quiet-zone"))
	return cmd
}

func (a *app) runEncode(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := upcean.ParseFormat(name)
	if err != nil {
		return err
	}

	opts := a.cfg.EncodeOptions()
	out := cmd.OutOrStdout()
	for _, contents := range args {
		row, err := upcean.Encode(contents, format, opts)
		if err != nil {
			return fmt.Errorf("encoding %q as %s: %w", contents, format, err)
		}
		a.logger.Debug("encoded", "contents", contents, "format", format.String(), "width", row.Size())
		if _, err := fmt.Fprintln(out, formatRow(row, a.cfg.Input.Format)); err != nil {
			return err
		}
	}
	return nil
}
