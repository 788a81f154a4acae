package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ericlevine/qrscan"
	"github.com/ericlevine/qrscan/internal/report"
	"github.com/ericlevine/qrscan/qrcode"
)

// errScanFailed is returned when at least one input could not be loaded.
var errScanFailed = errors.New("some inputs could not be decoded")

func newScanCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Decode the QR codes in image files",
		Long: `Decode every QR code in each image file (PNG, JPEG, GIF, BMP, TIFF or WebP).

Text output prints one line per symbol:
  file: version level mask mode text`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scan(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
	f := cmd.Flags()
	f.StringP("format", "f", "text", "output format (text, json, yaml)")
	f.IntP("workers", "w", 1, "symbols decoded concurrently per image")
	f.Int("max-dimension", 0, "downscale images larger than this before decoding, 0 to keep")
	f.Int("max-pixels", 0, "reject images declaring more pixels, 0 for the default, negative for no limit")
	f.Bool("no-mirror", false, "do not retry failed symbols as mirror images")
	f.Int("timeout", 0, "per-image timeout in seconds, 0 for none")
	return cmd
}

func (a *app) scan(ctx context.Context, stdout, stderr io.Writer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := a.cfg.Options()
	opts.Logger = a.log
	reader := qrcode.NewReader(opts)

	files := make([]report.File, 0, len(paths))
	failed := false
	for _, path := range paths {
		symbols, err := a.scanFile(ctx, reader, path)
		file := report.File{Path: path, Symbols: report.FromSymbols(symbols)}
		if err != nil {
			file.Error = err.Error()
			failed = true
			a.log.Error("scan failed", "file", path, "err", err)
		}
		files = append(files, file)
	}

	if err := write(stdout, stderr, a.cfg.Output.Format, files); err != nil {
		return err
	}
	if failed {
		return errScanFailed
	}
	return nil
}

// scanFile decodes one file, turning a panic in the pipeline into an
// error.
func (a *app) scanFile(ctx context.Context, reader *qrcode.Reader, path string) (symbols []qrscan.Symbol, err error) {
	defer func() {
		if r := recover(); r != nil {
			symbols = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if timeout := a.cfg.DecodeTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return reader.DecodeContext(ctx, data)
}

func write(stdout, stderr io.Writer, format string, files []report.File) error {
	switch format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	case "yaml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(files); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, f := range files {
		if f.Error != "" {
			fmt.Fprintf(stderr, "%s: error: %s\n", f.Path, f.Error)
			continue
		}
		if len(f.Symbols) == 0 {
			fmt.Fprintf(stderr, "%s: no QR codes found\n", f.Path)
			continue
		}
		for _, s := range f.Symbols {
			if s.Error != "" {
				fmt.Fprintf(stdout, "%s: error: %s\n", f.Path, s.Error)
				continue
			}
			fmt.Fprintf(stdout, "%s: %d %s %d %s %s\n", f.Path, s.Version, s.ECCLevel, s.Mask, s.Mode, s.Text)
		}
	}
	return nil
}
