// Package cmd implements the upcean command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ericlevine/upcean/internal/config"

	// Register the UPC/EAN writers.
	_ "github.com/ericlevine/upcean/oned"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCommand builds the command tree with its own viper instance, so
// every call starts from a clean configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "upcean",
		Short: "Decode and encode UPC/EAN barcode rows",
		Long: `upcean decodes UPC-A, UPC-E, EAN-8 and EAN-13 barcodes from single rows of
black and white pixels, and encodes digits into such rows.

A row is a line of text: either pixels ('X' or '1' for black, '.' or '0' for
white) or run lengths separated by spaces, starting with a white run.

Examples:
  upcean encode --format ean13 400638133393
  upcean encode --format upca 03600029145 | upcean decode
  upcean decode --input runs --output json rows.txt
  upcean checksum --format upca 036000291452`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is upcean.yaml in ., $HOME, $XDG_CONFIG_HOME/upcean, /etc/upcean)")
	pf.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("input", config.InputBits, "row text format (bits, runs)")
	a.bind("verbose", pf.Lookup("verbose"))
	a.bind("log_level", pf.Lookup("log-level"))
	a.bind("input.format", pf.Lookup("input"))

	root.AddCommand(
		newDecodeCommand(a),
		newEncodeCommand(a),
		newChecksumCommand(a),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag.Name, err))
	}
}

// setup loads the configuration, flags included, and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewLoaderWithViper(a.v).LoadWithFile(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	a.cfg = cfg

	// Logs go to stderr so results on stdout stay machine-readable.
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(a.logger)
	a.logger.Debug("configuration loaded", "file", a.v.ConfigFileUsed())
	return nil
}
