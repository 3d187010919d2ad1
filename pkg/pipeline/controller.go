package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrgen/pkg/logger"
	"github.com/dmitrymomot/qrgen/pkg/qrcode"
	"github.com/dmitrymomot/qrgen/pkg/raster"
)

const (
	// DefaultFileName is the name every export is offered under.
	DefaultFileName = "qrcode.png"
	// DefaultScale is the number of pixels per module.
	DefaultScale = 4
	// DefaultMargin is the quiet zone width in modules.
	DefaultMargin = 4
	// ErrorCorrection is the level every symbol is generated at.
	ErrorCorrection = qrcode.High
)

var (
	ErrNoDownloader = errors.New("no download sink configured")
	ErrExportFailed = errors.New("failed to export qr code")
)

// EntryField is the text input the controller reads from and clears.
type EntryField interface {
	Value() string
	Clear()
	Focus()
}

// Downloader delivers exported image bytes to the user under name.
type Downloader interface {
	Download(ctx context.Context, name string, data []byte) error
}

// Observer is notified with the new Result whenever it changes.
type Observer func(Result)

// Key identifies a key press in the entry field.
type Key uint8

const (
	KeyOther Key = iota
	KeyEnter
)

// Controller owns the current Result and drives the generate, export and
// reset operations. It is not safe for concurrent use; the front-end must
// serialise calls.
type Controller struct {
	engine     qrcode.Engine
	scale      int
	margin     int
	rasterOpts []raster.Option
	downloader Downloader
	field      EntryField
	log        *slog.Logger
	observers  []Observer
	sessionID  string

	machine *machine
	result  Result
}

// Option configures a Controller.
type Option func(*Controller)

// WithEngine selects the symbol encoder. Nil is ignored.
func WithEngine(e qrcode.Engine) Option {
	return func(c *Controller) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithScale sets pixels per module. Values below 1 are ignored.
func WithScale(scale int) Option {
	return func(c *Controller) {
		if scale >= 1 {
			c.scale = scale
		}
	}
}

// WithMargin sets the quiet zone in modules. Negative values are ignored.
func WithMargin(margin int) Option {
	return func(c *Controller) {
		if margin >= 0 {
			c.margin = margin
		}
	}
}

func WithRasterOptions(opts ...raster.Option) Option {
	return func(c *Controller) {
		c.rasterOpts = append(c.rasterOpts, opts...)
	}
}

func WithDownloader(d Downloader) Option {
	return func(c *Controller) {
		if d != nil {
			c.downloader = d
		}
	}
}

func WithEntryField(f EntryField) Option {
	return func(c *Controller) {
		if f != nil {
			c.field = f
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithObserver registers fn to receive every new Result.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// WithSessionID overrides the random session identifier attached to logs.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// New creates a Controller in StateEmpty.
func New(opts ...Option) *Controller {
	c := &Controller{
		engine: qrcode.Native(),
		scale:  DefaultScale,
		margin: DefaultMargin,
		field:  &TextField{},
		log:    logger.Discard(),
		result: emptyResult(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.log = c.log.With(logger.Component("pipeline"), logger.SessionID(c.sessionID))

	c.machine = newMachine(StateEmpty)
	for _, s := range []State{StateEmpty, StateReady, StateError} {
		c.machine.add(s, StateEmpty, eventBegin, c.clear)
		c.machine.add(s, StateReady, eventSucceeded, c.succeed)
		c.machine.add(s, StateError, eventCapacityExceeded, c.fail)
		c.machine.add(s, StateError, eventFailed, c.fail)
		c.machine.add(s, StateEmpty, eventReset, c.clear)
	}
	c.machine.add(StateReady, StateReady, eventExport, c.download)

	return c
}

// Result returns the current result.
func (c *Controller) Result() Result { return c.result }

func (c *Controller) State() State { return c.result.state }

func (c *Controller) SessionID() string { return c.sessionID }

// CanExport reports whether Export would deliver a file.
func (c *Controller) CanExport() bool { return c.machine.canFire(eventExport) }

// CanClear reports whether Clear is offered to the user. Reset itself is
// accepted in every state.
func (c *Controller) CanClear() bool { return c.result.state == StateReady }

// Generate encodes the current entry field text.
func (c *Controller) Generate(ctx context.Context) {
	c.GenerateText(ctx, c.field.Value())
}

// GenerateText clears the current result, then encodes raw at
// ErrorCorrection and renders it. The outcome replaces the result: an image
// on success, a classified error otherwise.
func (c *Controller) GenerateText(ctx context.Context, raw string) {
	c.fire(ctx, eventBegin, nil)

	start := time.Now()
	img, err := c.render(raw)
	took := time.Since(start)

	switch {
	case err == nil:
		c.fire(ctx, eventSucceeded, img)
		m := img.Matrix()
		c.log.InfoContext(ctx, "qr code generated",
			logger.Engine(c.engine.Name()),
			logger.Version(m.Version()),
			logger.Level(m.Level()),
			logger.Mask(m.Mask()),
			logger.Pixels(img.Width()),
			logger.Bytes("payload_bytes", len(raw)),
			logger.Bytes("png_bytes", img.Len()),
			logger.Duration(took),
		)
	case errors.Is(err, qrcode.ErrCapacityExceeded):
		c.fire(ctx, eventCapacityExceeded, err)
		c.log.WarnContext(ctx, "payload too long",
			logger.Engine(c.engine.Name()),
			logger.Bytes("payload_bytes", len(raw)),
			logger.Error(err),
		)
	default:
		c.fire(ctx, eventFailed, err)
		c.log.ErrorContext(ctx, "qr code generation failed",
			logger.Engine(c.engine.Name()),
			logger.Bytes("payload_bytes", len(raw)),
			logger.Duration(took),
			logger.Error(err),
		)
	}
}

// HandleKey submits the entry field on Enter. Other keys are ignored.
func (c *Controller) HandleKey(ctx context.Context, key Key) {
	if key == KeyEnter {
		c.Generate(ctx)
	}
}

// Export hands the current image to the downloader as DefaultFileName.
// Outside StateReady it does nothing and returns nil. A download failure is
// returned and leaves the state unchanged.
func (c *Controller) Export(ctx context.Context) error {
	err := c.fire(ctx, eventExport, nil)
	if isNoTransition(err) {
		c.log.DebugContext(ctx, "export ignored", logger.State(c.State()))
		return nil
	}
	return err
}

// Reset clears the entry field and the result, then focuses the entry field.
func (c *Controller) Reset(ctx context.Context) {
	c.field.Clear()
	c.fire(ctx, eventReset, nil)
	c.field.Focus()
	c.log.DebugContext(ctx, "pipeline reset")
}

// render runs the encoder and the rasterizer. Panics in either are
// converted into qrcode.ErrEncodingFault.
func (c *Controller) render(raw string) (img *raster.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = errors.Join(qrcode.ErrEncodingFault, fmt.Errorf("panic: %v", r))
		}
	}()

	m, err := c.engine.Encode(raw, ErrorCorrection)
	if err != nil {
		return nil, err
	}
	return raster.Rasterize(m, c.scale, c.margin, c.rasterOpts...)
}

// fire runs a transition and notifies observers when the result changed.
func (c *Controller) fire(ctx context.Context, ev event, data any) error {
	prev := c.result
	err := c.machine.fire(ctx, ev, data)
	if err != nil && !isNoTransition(err) {
		c.log.ErrorContext(ctx, "transition failed",
			slog.String("event", string(ev)),
			logger.State(c.machine.current),
			logger.Error(err),
		)
	}
	if !c.result.same(prev) {
		for _, o := range c.observers {
			o(c.result)
		}
	}
	return err
}

func (c *Controller) clear(context.Context, State, State, any) error {
	c.result = emptyResult()
	return nil
}

func (c *Controller) succeed(_ context.Context, _, _ State, data any) error {
	img, ok := data.(*raster.Image)
	if !ok || img == nil {
		return fmt.Errorf("%w: missing image", qrcode.ErrEncodingFault)
	}
	c.result = readyResult(img)
	return nil
}

func (c *Controller) fail(_ context.Context, _, _ State, data any) error {
	err, _ := data.(error)
	c.result = errorResult(err)
	return nil
}

func (c *Controller) download(ctx context.Context, _, _ State, _ any) error {
	if c.downloader == nil {
		return ErrNoDownloader
	}
	img := c.result.image
	if err := c.downloader.Download(ctx, DefaultFileName, img.PNG()); err != nil {
		return errors.Join(ErrExportFailed, err)
	}
	c.log.InfoContext(ctx, "qr code exported",
		logger.File(DefaultFileName),
		logger.Bytes("png_bytes", img.Len()),
	)
	return nil
}
