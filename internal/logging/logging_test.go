package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/handiism/manifest-fetcher/internal/download"
	"github.com/rs/zerolog"
)

func TestSink_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Sink(logger)(download.ProgressEvent{
		Message: "Downloaded: ./out/image.jpg",
		Level:   download.LevelWarning,
		Line:    3,
		RunID:   "run-1",
	})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if got["level"] != "warn" {
		t.Errorf("level = %v, want warn", got["level"])
	}
	if got["run"] != "run-1" {
		t.Errorf("run = %v, want run-1", got["run"])
	}
	if got["line"] != float64(3) {
		t.Errorf("line = %v, want 3", got["line"])
	}
	if got["message"] != "Downloaded: ./out/image.jpg" {
		t.Errorf("message = %v", got["message"])
	}
}

func TestSink_OmitsZeroLine(t *testing.T) {
	var buf bytes.Buffer
	Sink(zerolog.New(&buf))(download.ProgressEvent{Message: "done", Level: download.LevelSuccess})

	if strings.Contains(buf.String(), `"line"`) {
		t.Errorf("line should be omitted, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"success":true`) {
		t.Errorf("success flag missing, got %s", buf.String())
	}
}

func TestNewConsole_VerboseGate(t *testing.T) {
	var quiet, loud bytes.Buffer

	Sink(NewConsole(&quiet, false, true))(download.ProgressEvent{Message: "detail", Level: download.LevelVerbose})
	Sink(NewConsole(&loud, true, true))(download.ProgressEvent{Message: "detail", Level: download.LevelVerbose})

	if quiet.Len() != 0 {
		t.Errorf("verbose event logged without verbose flag: %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "detail") {
		t.Errorf("verbose event missing with verbose flag: %q", loud.String())
	}
}

func TestSink_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	Sink(zerolog.New(&buf))(download.ProgressEvent{
		Message: "transfer error: HTTP 404",
		Level:   download.LevelError,
		Line:    2,
		RunID:   "run-2",
	})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got["level"] != "error" {
		t.Errorf("level = %v, want error", got["level"])
	}
	if got["line"] != float64(2) {
		t.Errorf("line = %v, want 2", got["line"])
	}
}
