// Package pipeline turns entry-field text into a downloadable QR code image
// and tracks the outcome as a small finite state machine.
//
// The Controller owns a single Result that is always in exactly one of three
// states:
//
//   - StateEmpty: nothing generated yet, or the field was cleared
//   - StateReady: an image is available for preview and download
//   - StateError: the last generation failed; Message holds the text to show
//
// Transitions are table-driven (map[from][event]) with actions that replace
// the Result before the state changes:
//
//	| State | generate ok | capacity error | other error | Export   | Reset  |
//	|-------|-------------|----------------|-------------|----------|--------|
//	| Empty | Ready       | Error          | Error       | no-op    | Empty  |
//	| Ready | Ready       | Error          | Error       | download | Empty  |
//	| Error | Ready       | Error          | Error       | no-op    | Empty  |
//
// # Usage
//
//	field := &pipeline.TextField{}
//	ctrl := pipeline.New(
//	    pipeline.WithEntryField(field),
//	    pipeline.WithDownloader(storage),
//	    pipeline.WithLogger(log),
//	)
//
//	field.Set("https://example.com")
//	ctrl.HandleKey(ctx, pipeline.KeyEnter)
//
//	switch res := ctrl.Result(); res.State() {
//	case pipeline.StateReady:
//	    fmt.Println(res.Image().DataURI())
//	    _ = ctrl.Export(ctx) // writes qrcode.png
//	case pipeline.StateError:
//	    fmt.Println(res.Message())
//	}
//
// # Error Handling
//
// Failures never escape Generate. A qrcode.ErrCapacityExceeded failure becomes
// KindCapacityExceeded with MessageTooLong; everything else, including panics
// recovered from the encoder or rasterizer, becomes KindGeneric with the error
// text as message. The original error is available from Result.Err.
//
// Export returns an error only when a download was attempted and failed
// (ErrExportFailed) or no Downloader is configured (ErrNoDownloader).
package pipeline
