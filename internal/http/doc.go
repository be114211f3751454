// Package http provides the HTTP client used to fetch manifest resources.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Streaming file downloads with progress tracking
//   - Optional request timeouts (off by default)
//
// # Basic Usage
//
//	client := http.NewClient(0, "")
//
//	// Download file with progress callback
//	n, err := client.DownloadFile(ctx, mp3URL, "./out/music.mp3", func(written, total int64) {
//	    fmt.Printf("%d bytes\n", written)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
