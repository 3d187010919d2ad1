package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dmitrymomot/qrgen/pkg/pipeline"
	"github.com/dmitrymomot/qrgen/pkg/raster"
)

const (
	prompt        = "qr> "
	previewMargin = 2
	placeholder   = "▢  type some text and press Enter"
)

const helpText = `Type any text and press Enter to generate its QR code.
  :download, :d   save the current code as qrcode.png
  :clear, :c      clear the text and the preview
  :help, :h       show this help
  :quit, :q       exit
`

func runInteractive(ctx context.Context, a *app, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryLimit:    -1,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdout:          out,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	s := newSession(rl.Stdout(), a)
	s.help()
	s.preview(s.ctrl.Result())

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		if s.handle(ctx, line) {
			return nil
		}
	}
}

// session is one interactive front-end: an entry field, a controller and a
// preview surface printed to out.
type session struct {
	out    io.Writer
	field  *pipeline.TextField
	sink   *savingDownloader
	ctrl   *pipeline.Controller
	invert bool
}

func newSession(out io.Writer, a *app) *session {
	s := &session{
		out:    out,
		field:  &pipeline.TextField{},
		sink:   &savingDownloader{storage: a.storage},
		invert: a.invert,
	}
	s.ctrl = a.controller(s.field, s.sink)
	s.field.Focus()
	return s
}

// handle dispatches one input line and reports whether the session should end.
func (s *session) handle(ctx context.Context, line string) bool {
	switch strings.TrimSpace(line) {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		s.help()
	case ":download", ":d":
		s.download(ctx)
	case ":clear", ":c":
		s.ctrl.Reset(ctx)
		s.preview(s.ctrl.Result())
	default:
		s.field.Set(line)
		s.ctrl.HandleKey(ctx, pipeline.KeyEnter)
		s.preview(s.ctrl.Result())
	}
	return false
}

func (s *session) download(ctx context.Context) {
	if !s.ctrl.CanExport() {
		fmt.Fprintln(s.out, "nothing to download yet")
		return
	}
	if err := s.ctrl.Export(ctx); err != nil {
		fmt.Fprintf(s.out, "download failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, s.sink.describe())
}

func (s *session) help() {
	fmt.Fprint(s.out, helpText)
}

// preview renders the preview surface for r.
func (s *session) preview(r pipeline.Result) {
	switch r.State() {
	case pipeline.StateReady:
		m := r.Image().Matrix()
		fmt.Fprint(s.out, raster.Terminal(m, previewMargin, s.invert))
		fmt.Fprintf(s.out, "version %d, %dx%d px. :download to save, :clear to start over\n",
			m.Version(), r.Image().Width(), r.Image().Height())
	case pipeline.StateError:
		fmt.Fprintln(s.out, r.Message())
	default:
		fmt.Fprintln(s.out, placeholder)
	}
}
