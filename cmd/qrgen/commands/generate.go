package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrgen/pkg/pipeline"
	"github.com/dmitrymomot/qrgen/pkg/raster"
)

// Output formats of the generate command.
const (
	formatPNG      = "png"
	formatDataURI  = "datauri"
	formatHTML     = "html"
	formatTerminal = "terminal"
)

func generateCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "generate <text>...",
		Short: "Generate a QR code once and save or print it",
		Long: "Generate a QR code for the given text. By default the PNG is saved as qrcode.png in the\n" +
			"download directory; --out writes elsewhere (\"-\" for stdout).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			field := &pipeline.TextField{}
			field.Set(text)
			sink := &savingDownloader{storage: a.storage}
			ctrl := a.controller(field, sink)

			ctx := cmd.Context()
			ctrl.Generate(ctx)
			res := ctrl.Result()
			if res.State() != pipeline.StateReady {
				return errors.New(res.Message())
			}

			if format == formatPNG && out == "" {
				if err := ctrl.Export(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), sink.describe())
				return nil
			}

			data, err := render(res.Image(), format, a.invert)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), out, data)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatPNG, "output format: png, datauri, html or terminal")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to this file (\"-\" for stdout)")
	return cmd
}

func render(img *raster.Image, format string, invert bool) ([]byte, error) {
	switch format {
	case formatPNG:
		return img.PNG(), nil
	case formatDataURI:
		return []byte(img.DataURI() + "\n"), nil
	case formatHTML:
		return []byte(img.HTML("QR code") + "\n"), nil
	case formatTerminal:
		return []byte(raster.Terminal(img.Matrix(), previewMargin, invert)), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func write(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
