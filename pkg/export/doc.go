// Package export delivers generated images to a local download directory.
//
// LocalStorage behaves like a browser download folder: the requested name is
// reduced to its base name, and when a file with that name already exists a
// numbered variant is used instead ("qrcode.png", "qrcode (1).png",
// "qrcode (2).png", ...). Existing files are never overwritten.
//
// # Usage
//
//	storage, err := export.NewLocalStorage("downloads")
//	if err != nil {
//	    return err
//	}
//	f, err := storage.Save(ctx, "qrcode.png", pngBytes)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f.AbsolutePath)
//
// LocalStorage also implements the Download method expected by the pipeline
// controller, so it can be passed to pipeline.WithDownloader directly.
//
// # Error Handling
//
// Errors wrap the package sentinels (ErrInvalidPath, ErrFailedToCreateFile,
// ...) with the underlying cause and can be matched with errors.Is. A
// cancelled context returns ctx.Err() before anything is written.
package export
