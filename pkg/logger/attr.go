package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// SessionID records the controller session under the key "session_id".
// An empty id yields an empty Attr.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Engine records the encoding engine name under the key "engine".
func Engine(name string) slog.Attr {
	return slog.String("engine", name)
}

// Version records the symbol version under the key "version".
func Version(v int) slog.Attr {
	return slog.Int("version", v)
}

// Level records an error correction level under the key "ecl".
func Level(l fmt.Stringer) slog.Attr {
	return slog.String("ecl", l.String())
}

// Mask records the applied data mask under the key "mask".
func Mask(m int) slog.Attr {
	return slog.Int("mask", m)
}

// Pixels records an image side length under the key "pixels".
func Pixels(n int) slog.Attr {
	return slog.Int("pixels", n)
}

// Bytes records a byte count under the given key.
func Bytes(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// State records a state name under the key "state".
func State(s fmt.Stringer) slog.Attr {
	return slog.String("state", s.String())
}

// File records a file path under the key "file".
func File(path string) slog.Attr {
	return slog.String("file", path)
}
