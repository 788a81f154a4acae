// Package cmd implements the qrscan command line.
package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericlevine/qrscan/internal/config"
)

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"log_level":            "log-level",
	"verbose":              "verbose",
	"decode.workers":       "workers",
	"decode.max_dimension": "max-dimension",
	"decode.no_mirror":     "no-mirror",
	"decode.max_pixels":    "max-pixels",
	"decode.timeout_sec":   "timeout",
	"output.format":        "format",
	"server.host":          "host",
	"server.port":          "port",
	"server.max_upload_mb": "max-upload-mb",
	"server.timeout_sec":   "request-timeout",
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
}

// NewRootCommand builds the qrscan command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "qrscan",
		Short: "Locate and decode QR codes in images",
		Long: `qrscan finds every QR code symbol in an image and decodes it.

Examples:
  qrscan scan photo.jpg
  qrscan scan --format json *.png
  qrscan serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is search in ., $HOME/.config/qrscan, /etc/qrscan)")
	pf.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newScanCommand(a), newServeCommand(a), newVersionCommand())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := loader.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cmd.ErrOrStderr(), cfg)
	if used := loader.ConfigFileUsed(); used != "" {
		a.log.Debug("configuration loaded", "file", used)
	}
	return nil
}

// newLogger writes JSON records to w. Verbose wins over the log level.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.LogLevel == "debug":
		level = slog.LevelDebug
	case cfg.LogLevel == "warn":
		level = slog.LevelWarn
	case cfg.LogLevel == "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
