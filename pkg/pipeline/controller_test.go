package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/pkg/logger"
	"github.com/dmitrymomot/qrgen/pkg/pipeline"
	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

type engineFunc func(payload string, level qrcode.Level) (*qrcode.Matrix, error)

func (f engineFunc) Name() string { return "fake" }

func (f engineFunc) Encode(payload string, level qrcode.Level) (*qrcode.Matrix, error) {
	return f(payload, level)
}

type download struct {
	name string
	data []byte
}

type fakeDownloader struct {
	calls []download
	err   error
}

func (d *fakeDownloader) Download(_ context.Context, name string, data []byte) error {
	d.calls = append(d.calls, download{name: name, data: data})
	return d.err
}

func newController(t *testing.T, opts ...pipeline.Option) (*pipeline.Controller, *pipeline.TextField, *fakeDownloader) {
	t.Helper()
	field := &pipeline.TextField{}
	dl := &fakeDownloader{}
	base := []pipeline.Option{pipeline.WithEntryField(field), pipeline.WithDownloader(dl)}
	return pipeline.New(append(base, opts...)...), field, dl
}

func TestController_InitialState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ctrl, _, dl := newController(t)

	assert.Equal(t, pipeline.StateEmpty, ctrl.State())
	assert.Nil(t, ctrl.Result().Image())
	assert.Empty(t, ctrl.Result().Message())
	assert.False(t, ctrl.CanExport(), "download must be disabled while empty")
	assert.False(t, ctrl.CanClear(), "clear must be disabled while empty")

	require.NoError(t, ctrl.Export(ctx))
	assert.Empty(t, dl.calls, "export from empty must not download")
	assert.Equal(t, pipeline.StateEmpty, ctrl.State())
}

func TestController_Generate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path produces a ready image", func(t *testing.T) {
		t.Parallel()
		ctrl, field, _ := newController(t)
		field.Set("https://example.com")
		ctrl.Generate(ctx)

		res := ctrl.Result()
		require.Equal(t, pipeline.StateReady, res.State())
		require.NotNil(t, res.Image())
		assert.Equal(t, pipeline.KindNone, res.Kind())
		assert.Empty(t, res.Message())
		assert.NoError(t, res.Err())

		m := res.Image().Matrix()
		assert.Equal(t, 3, m.Version())
		assert.Equal(t, qrcode.High, m.Level())
		assert.GreaterOrEqual(t, res.Image().Width(), (21+2*pipeline.DefaultMargin)*pipeline.DefaultScale)
		assert.Equal(t, (29+2*pipeline.DefaultMargin)*pipeline.DefaultScale, res.Image().Width())
		assert.True(t, strings.HasPrefix(res.Image().DataURI(), "data:image/png;base64,"))
		assert.True(t, ctrl.CanExport())
		assert.True(t, ctrl.CanClear())
	})

	t.Run("oversized input is classified as capacity exceeded", func(t *testing.T) {
		t.Parallel()
		ctrl, field, dl := newController(t)
		field.Set(strings.Repeat("x", 5000))
		ctrl.Generate(ctx)

		res := ctrl.Result()
		require.Equal(t, pipeline.StateError, res.State())
		assert.Equal(t, pipeline.KindCapacityExceeded, res.Kind())
		assert.Equal(t, "Text is too long, unable to generate QR code.", res.Message())
		assert.ErrorIs(t, res.Err(), qrcode.ErrCapacityExceeded)
		assert.Nil(t, res.Image(), "error and image are mutually exclusive")
		assert.False(t, ctrl.CanExport())

		require.NoError(t, ctrl.Export(ctx))
		assert.Empty(t, dl.calls)
	})

	t.Run("capacity boundary at high error correction", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t)
		limit := qrcode.MaxPayload(qrcode.High)

		ctrl.GenerateText(ctx, strings.Repeat("a", limit))
		require.Equal(t, pipeline.StateReady, ctrl.State())
		assert.Equal(t, 40, ctrl.Result().Image().Matrix().Version())

		ctrl.GenerateText(ctx, strings.Repeat("a", limit+1))
		assert.Equal(t, pipeline.StateError, ctrl.State())
		assert.Equal(t, pipeline.KindCapacityExceeded, ctrl.Result().Kind())
	})

	t.Run("empty text is a generic failure", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t)
		ctrl.Generate(ctx)

		res := ctrl.Result()
		require.Equal(t, pipeline.StateError, res.State())
		assert.Equal(t, pipeline.KindGeneric, res.Kind())
		assert.ErrorIs(t, res.Err(), qrcode.ErrInvalidPayload)
		assert.Equal(t, qrcode.ErrInvalidPayload.Error(), res.Message())
	})

	t.Run("engine failure surfaces the error text", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("engine broke")
		ctrl, _, _ := newController(t, pipeline.WithEngine(engineFunc(func(string, qrcode.Level) (*qrcode.Matrix, error) {
			return nil, boom
		})))
		ctrl.GenerateText(ctx, "hello")

		res := ctrl.Result()
		require.Equal(t, pipeline.StateError, res.State())
		assert.Equal(t, pipeline.KindGeneric, res.Kind())
		assert.Equal(t, "engine broke", res.Message())
		assert.ErrorIs(t, res.Err(), boom)
	})

	t.Run("joined errors are flattened onto one line", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t, pipeline.WithEngine(engineFunc(func(string, qrcode.Level) (*qrcode.Matrix, error) {
			return nil, errors.Join(qrcode.ErrEncodingFault, errors.New("bad block"))
		})))
		ctrl.GenerateText(ctx, "hello")
		assert.Equal(t, "failed to encode QR code: bad block", ctrl.Result().Message())
	})

	t.Run("error without text gets the generic apology", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t, pipeline.WithEngine(engineFunc(func(string, qrcode.Level) (*qrcode.Matrix, error) {
			return nil, errors.New("")
		})))
		ctrl.GenerateText(ctx, "hello")
		assert.Equal(t, pipeline.MessageUnexpected, ctrl.Result().Message())
	})

	t.Run("panics are recovered as encoding faults", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t, pipeline.WithEngine(engineFunc(func(string, qrcode.Level) (*qrcode.Matrix, error) {
			panic("boom")
		})))
		require.NotPanics(t, func() { ctrl.GenerateText(ctx, "hello") })

		res := ctrl.Result()
		require.Equal(t, pipeline.StateError, res.State())
		assert.Equal(t, pipeline.KindGeneric, res.Kind())
		assert.ErrorIs(t, res.Err(), qrcode.ErrEncodingFault)
		assert.Contains(t, res.Message(), "panic: boom")
	})

	t.Run("engine always receives high error correction", func(t *testing.T) {
		t.Parallel()
		var got qrcode.Level
		ctrl, _, _ := newController(t, pipeline.WithEngine(engineFunc(func(p string, l qrcode.Level) (*qrcode.Matrix, error) {
			got = l
			return qrcode.Encode(p, l)
		})))
		ctrl.GenerateText(ctx, "hello")
		assert.Equal(t, qrcode.High, got)
		assert.Equal(t, pipeline.StateReady, ctrl.State())
	})

	t.Run("same text renders identical bytes", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t)
		ctrl.GenerateText(ctx, "idempotent")
		first := ctrl.Result().Image()
		ctrl.GenerateText(ctx, "idempotent")
		second := ctrl.Result().Image()

		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.NotSame(t, first, second, "a fresh image is produced")
		assert.Equal(t, first.PNG(), second.PNG())
	})

	t.Run("recovers from error on valid input", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t)
		ctrl.GenerateText(ctx, strings.Repeat("x", 5000))
		require.Equal(t, pipeline.StateError, ctrl.State())

		ctrl.GenerateText(ctx, "ok")
		assert.Equal(t, pipeline.StateReady, ctrl.State())
		assert.Empty(t, ctrl.Result().Message())
		assert.Equal(t, pipeline.KindNone, ctrl.Result().Kind())
	})

	t.Run("ready replaced by error drops the image", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t)
		ctrl.GenerateText(ctx, "ok")
		require.Equal(t, pipeline.StateReady, ctrl.State())

		ctrl.GenerateText(ctx, strings.Repeat("x", 5000))
		assert.Equal(t, pipeline.StateError, ctrl.State())
		assert.Nil(t, ctrl.Result().Image())
	})

	t.Run("scale and margin shape the image", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t, pipeline.WithScale(1), pipeline.WithMargin(0))
		ctrl.GenerateText(ctx, "https://example.com")
		require.Equal(t, pipeline.StateReady, ctrl.State())
		assert.Equal(t, 29, ctrl.Result().Image().Width())
	})

	t.Run("invalid scale and margin keep defaults", func(t *testing.T) {
		t.Parallel()
		ctrl, _, _ := newController(t, pipeline.WithScale(0), pipeline.WithMargin(-1))
		ctrl.GenerateText(ctx, "https://example.com")
		require.Equal(t, pipeline.StateReady, ctrl.State())
		assert.Equal(t, pipeline.DefaultScale, ctrl.Result().Image().Scale())
		assert.Equal(t, pipeline.DefaultMargin, ctrl.Result().Image().Margin())
	})
}

func TestController_Engines(t *testing.T) {
	t.Parallel()

	for _, name := range qrcode.Engines() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			engine, err := qrcode.EngineByName(name)
			require.NoError(t, err)

			ctrl, _, _ := newController(t, pipeline.WithEngine(engine))
			ctrl.GenerateText(context.Background(), "https://example.com")
			require.Equal(t, pipeline.StateReady, ctrl.State())
			assert.Equal(t, 29, ctrl.Result().Image().Matrix().Size())

			ctrl.GenerateText(context.Background(), strings.Repeat("x", 5000))
			assert.Equal(t, pipeline.KindCapacityExceeded, ctrl.Result().Kind())
		})
	}
}

func TestController_Export(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("downloads qrcode.png from ready", func(t *testing.T) {
		t.Parallel()
		ctrl, _, dl := newController(t)
		ctrl.GenerateText(ctx, "https://example.com")
		require.Equal(t, pipeline.StateReady, ctrl.State())

		require.NoError(t, ctrl.Export(ctx))
		require.Len(t, dl.calls, 1)
		assert.Equal(t, "qrcode.png", dl.calls[0].name)
		assert.Equal(t, ctrl.Result().Image().PNG(), dl.calls[0].data)
		assert.Equal(t, pipeline.StateReady, ctrl.State(), "export does not change state")

		require.NoError(t, ctrl.Export(ctx))
		assert.Len(t, dl.calls, 2)
	})

	t.Run("download failure is returned without changing state", func(t *testing.T) {
		t.Parallel()
		ctrl, _, dl := newController(t)
		dl.err = errors.New("disk full")
		ctrl.GenerateText(ctx, "hello")

		err := ctrl.Export(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, pipeline.ErrExportFailed)
		assert.ErrorIs(t, err, dl.err)
		assert.Equal(t, pipeline.StateReady, ctrl.State())
		assert.NotNil(t, ctrl.Result().Image())
	})

	t.Run("missing downloader", func(t *testing.T) {
		t.Parallel()
		ctrl := pipeline.New()
		require.NoError(t, ctrl.Export(ctx), "no-op while empty")

		ctrl.GenerateText(ctx, "hello")
		assert.ErrorIs(t, ctrl.Export(ctx), pipeline.ErrNoDownloader)
		assert.Equal(t, pipeline.StateReady, ctrl.State())
	})

	t.Run("no-op from error", func(t *testing.T) {
		t.Parallel()
		ctrl, _, dl := newController(t)
		ctrl.GenerateText(ctx, "")
		require.Equal(t, pipeline.StateError, ctrl.State())
		require.NoError(t, ctrl.Export(ctx))
		assert.Empty(t, dl.calls)
	})
}

func TestController_Reset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, text := range []string{"https://example.com", strings.Repeat("x", 5000), ""} {
		ctrl, field, _ := newController(t)
		field.Set(text)
		ctrl.Generate(ctx)
		field.Blur()

		ctrl.Reset(ctx)
		res := ctrl.Result()
		assert.Equal(t, pipeline.StateEmpty, res.State())
		assert.Nil(t, res.Image())
		assert.Empty(t, res.Message())
		assert.NoError(t, res.Err())
		assert.Equal(t, pipeline.KindNone, res.Kind())
		assert.Empty(t, field.Value(), "entry field is cleared")
		assert.True(t, field.Focused(), "entry field is focused")
		assert.False(t, ctrl.CanExport())
	}
}

func TestController_HandleKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ctrl, field, _ := newController(t)
	field.Set("submit me")

	ctrl.HandleKey(ctx, pipeline.KeyOther)
	assert.Equal(t, pipeline.StateEmpty, ctrl.State(), "other keys are ignored")

	ctrl.HandleKey(ctx, pipeline.KeyEnter)
	assert.Equal(t, pipeline.StateReady, ctrl.State(), "enter behaves like generate")
}

func TestController_Observer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var seen []pipeline.State
	ctrl, _, _ := newController(t, pipeline.WithObserver(func(r pipeline.Result) {
		seen = append(seen, r.State())
	}))

	ctrl.GenerateText(ctx, "one")
	assert.Equal(t, []pipeline.State{pipeline.StateReady}, seen)

	ctrl.GenerateText(ctx, "two")
	assert.Equal(t, []pipeline.State{
		pipeline.StateReady,
		pipeline.StateEmpty, pipeline.StateReady,
	}, seen, "the previous result is cleared before a new one is shown")

	require.NoError(t, ctrl.Export(ctx))
	assert.Len(t, seen, 3, "export does not change the result")

	ctrl.Reset(ctx)
	ctrl.Reset(ctx)
	assert.Equal(t, pipeline.StateEmpty, seen[len(seen)-1])
	assert.Len(t, seen, 4, "reset from empty changes nothing")
}

func TestController_Logging(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevelName("debug"))

	ctrl, _, _ := newController(t, pipeline.WithLogger(log), pipeline.WithSessionID("session-1"))
	assert.Equal(t, "session-1", ctrl.SessionID())

	ctrl.GenerateText(ctx, "hello")
	ctrl.GenerateText(ctx, strings.Repeat("x", 5000))

	out := buf.String()
	assert.Contains(t, out, `"msg":"qr code generated"`)
	assert.Contains(t, out, `"msg":"payload too long"`)
	assert.Contains(t, out, `"session_id":"session-1"`)
	assert.Contains(t, out, `"component":"pipeline"`)
}

func TestController_SessionID(t *testing.T) {
	t.Parallel()
	a := pipeline.New()
	b := pipeline.New()
	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}
