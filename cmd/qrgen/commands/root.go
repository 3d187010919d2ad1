package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrgen/pkg/config"
	"github.com/dmitrymomot/qrgen/pkg/export"
	"github.com/dmitrymomot/qrgen/pkg/logger"
	"github.com/dmitrymomot/qrgen/pkg/pipeline"
	"github.com/dmitrymomot/qrgen/pkg/qrcode"
	"github.com/dmitrymomot/qrgen/pkg/raster"
)

const serviceName = "qrgen"

// flags holds persistent flag values. Zero values mean "not set".
type flags struct {
	envFiles []string
	engine   string
	scale    int
	margin   int
	dir      string
	invert   bool
}

// app is the wiring shared by every command.
type app struct {
	cfg        config.Config
	log        *slog.Logger
	engine     qrcode.Engine
	storage    *export.LocalStorage
	rasterOpts []raster.Option
	invert     bool
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	a := &app{}

	root := &cobra.Command{
		Use:          "qrgen",
		Short:        "Turn text into a QR code image",
		Long:         "Type text and press Enter to preview its QR code; download it as qrcode.png or clear and start over.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := newApp(cmd, f)
			if err != nil {
				return err
			}
			*a = *built
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), a, cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringSliceVar(&f.envFiles, "env-file", nil, "load settings from .env file(s) (default ./.env if present)")
	pf.StringVar(&f.engine, "engine", "", "encoding engine: native, skip2 or rsc")
	pf.IntVar(&f.scale, "scale", 0, "pixels per module")
	pf.IntVar(&f.margin, "margin", 0, "quiet zone width in modules")
	pf.StringVar(&f.dir, "dir", "", "download directory")
	pf.BoolVar(&f.invert, "invert", false, "invert the terminal preview for light-on-dark terminals")

	root.AddCommand(generateCmd(a))
	return root
}

// newApp loads configuration, applies flag overrides and builds the shared
// collaborators.
func newApp(cmd *cobra.Command, f *flags) (*app, error) {
	cfg, err := config.Load(f.envFiles...)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("engine") {
		cfg.Engine = f.engine
	}
	if fl.Changed("scale") {
		cfg.Scale = f.scale
	}
	if fl.Changed("margin") {
		cfg.Margin = f.margin
	}
	if fl.Changed("dir") {
		cfg.DownloadDir = f.dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := qrcode.EngineByName(cfg.Engine)
	if err != nil {
		return nil, err
	}
	fg, err := raster.ParseHexColor(cfg.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := raster.ParseHexColor(cfg.Background)
	if err != nil {
		return nil, err
	}
	storage, err := export.NewLocalStorage(cfg.DownloadDir)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		log:        newLogger(cfg, cmd.ErrOrStderr()),
		engine:     engine,
		storage:    storage,
		rasterOpts: []raster.Option{raster.WithForeground(fg), raster.WithBackground(bg)},
		invert:     f.invert,
	}, nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(w),
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...)
}

// controller builds a pipeline controller wired to the app's engine,
// renderer settings and download directory.
func (a *app) controller(field pipeline.EntryField, sink pipeline.Downloader, opts ...pipeline.Option) *pipeline.Controller {
	base := []pipeline.Option{
		pipeline.WithEngine(a.engine),
		pipeline.WithScale(a.cfg.Scale),
		pipeline.WithMargin(a.cfg.Margin),
		pipeline.WithRasterOptions(a.rasterOpts...),
		pipeline.WithEntryField(field),
		pipeline.WithDownloader(sink),
		pipeline.WithLogger(a.log),
	}
	return pipeline.New(append(base, opts...)...)
}

// savingDownloader records where the last download was written.
type savingDownloader struct {
	storage *export.LocalStorage
	last    *export.File
}

func (d *savingDownloader) Download(ctx context.Context, name string, data []byte) error {
	f, err := d.storage.Save(ctx, name, data)
	if err != nil {
		return err
	}
	d.last = f
	return nil
}

func (d *savingDownloader) describe() string {
	if d.last == nil {
		return ""
	}
	return fmt.Sprintf("saved %s (%d bytes)", d.last.AbsolutePath, d.last.Size)
}
