// Package logger provides a context-aware wrapper around Go's slog package
// with functional options for configuration and attribute constructors for the
// values the QR pipeline logs.
//
// The package exposes a single factory – New – that creates a *slog.Logger
// configured by a set of Option functions. These options allow you to:
//
//   • Select an output format (text or json)
//   • Set the minimum log level, either as slog.Level or by name
//   • Supply default slog.Attr values applied to every record
//   • Register ContextExtractor callbacks that inject attributes pulled from a
//     context value every time Handle is invoked.
//
// # Architecture
//
// New determines the concrete slog.Handler – slog.NewTextHandler or
// slog.NewJSONHandler – based on the configured Format and wraps it with
// LogHandlerDecorator, which runs the registered ContextExtractor callbacks
// before delegating to the underlying handler.
//
// Helper constructors such as Error, SessionID, Version or Engine live in
// attr.go and keep attribute naming consistent across packages.
//
// # Usage
//
//	import "github.com/dmitrymomot/qrgen/pkg/logger"
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "qrgen"),
//	    logger.WithLevelName("debug"),
//	)
//	log.Info("qr code generated",
//	    logger.Version(3),
//	    logger.Duration(time.Since(start)),
//	)
//
// # Error Handling
//
// Error and Errors produce attributes only when the supplied error value is
// non-nil, so
//
//	log.Info("export finished", logger.Error(err))
//
// needs no additional nil check.
package logger
