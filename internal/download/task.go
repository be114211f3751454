package download

import (
	"context"
	"fmt"

	"github.com/handiism/manifest-fetcher/internal/http"
	"github.com/handiism/manifest-fetcher/internal/model"
)

// Task streams one remote resource into one local file.
//
// The output path is destination + name with no separator added. An
// existing file at that path is overwritten. There is no retry and no resume.
type Task struct {
	client      *http.Client
	url         string
	destination string
	name        string
}

// NewTask creates a Task for url saved as destination+name.
func NewTask(client *http.Client, url, destination, name string) *Task {
	return &Task{
		client:      client,
		url:         url,
		destination: destination,
		name:        name,
	}
}

// Path returns the local file the task writes.
func (t *Task) Path() string {
	return t.destination + t.name
}

// Run performs the transfer. Failures are reported in the result with an
// error wrapping model.ErrTransfer.
func (t *Task) Run(ctx context.Context, onProgress func(written, total int64)) model.DownloadResult {
	path := t.Path()

	n, err := t.client.DownloadFile(ctx, t.url, path, onProgress)
	if err != nil {
		return model.DownloadResult{
			LocalPath: path,
			Err:       fmt.Errorf("%w: %s -> %s: %v", model.ErrTransfer, t.url, path, err),
			Bytes:     n,
		}
	}

	return model.DownloadResult{
		LocalPath: path,
		Succeeded: true,
		Bytes:     n,
	}
}
