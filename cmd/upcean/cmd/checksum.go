package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/oned"
)

func newChecksumCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checksum [--format FORMAT] [--compute] digits...",
		Short: "Validate or compute UPC/EAN check digits",
		Long: `Validate the check digit of each argument, or with --compute append the
check digit to each argument. With --format the length rule of that
symbology applies too, and UPC-E codes are expanded to UPC-A first.

Examples:
  upcean checksum 4006381333931
  upcean checksum --format upca 036000291452 036000291451
  upcean checksum --compute 03600029145`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         a.runChecksum,
	}

	f := cmd.Flags()
	f.StringP("format", "f", "", "apply the rules of this format (ean13, ean8, upca, upce)")
	f.Bool("compute", false, "print each argument followed by its check digit")
	return cmd
}

var checksumCheckers = map[upcean.Format]oned.ChecksumChecker{
	upcean.FormatEAN13: oned.NewEAN13Reader(),
	upcean.FormatEAN8:  oned.NewEAN8Reader(),
	upcean.FormatUPCA:  oned.NewUPCAReader(),
	upcean.FormatUPCE:  oned.NewUPCEReader(),
}

func (a *app) runChecksum(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	compute, _ := cmd.Flags().GetBool("compute")

	check := oned.CheckStandardUPCEANChecksum
	upce := false
	if name != "" {
		format, err := upcean.ParseFormat(name)
		if err != nil {
			return err
		}
		check = checksumCheckers[format].CheckChecksum
		upce = format == upcean.FormatUPCE
	}

	out := cmd.OutOrStdout()
	if compute {
		for _, digits := range args {
			payload := digits
			if upce {
				// The UPC-E check digit is that of the expanded UPC-A code.
				payload = oned.ConvertUPCEtoUPCA(digits)
			}
			d, err := oned.GetStandardUPCEANChecksum(payload)
			if err != nil {
				return fmt.Errorf("%s: %w", digits, err)
			}
			full := fmt.Sprintf("%s%d", digits, d)
			if err := check(full); err != nil {
				return fmt.Errorf("%s: %w", full, err)
			}
			if _, err := fmt.Fprintln(out, full); err != nil {
				return err
			}
		}
		return nil
	}

	rows := make([][]string, 0, len(args))
	invalid := 0
	for _, digits := range args {
		status := "valid"
		if err := check(digits); err != nil {
			invalid++
			switch {
			case errors.Is(err, upcean.ErrChecksum):
				status = "bad check digit"
			default:
				status = err.Error()
			}
		}
		rows = append(rows, []string{digits, status})
	}
	if err := writeTable(out, []string{"Digits", "Checksum"}, rows); err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d codes failed the check", invalid, len(args))
	}
	return nil
}
