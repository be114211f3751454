package manifest

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/handiism/manifest-fetcher/internal/model"
)

// ClassifyMode selects how a line's resource kind is decided.
type ClassifyMode int

const (
	// ClassifyByLine looks for "jpg", then "mp3", anywhere in the raw line.
	// This is the manifest format's contract and the default.
	ClassifyByLine ClassifyMode = iota

	// ClassifyByExtension uses the extension of the URL path only.
	ClassifyByExtension
)

// String returns the settings value for the mode.
func (m ClassifyMode) String() string {
	if m == ClassifyByExtension {
		return "extension"
	}
	return "line"
}

// ParseClassifyMode maps a settings value to a ClassifyMode.
//
// Accepts "line" and "extension"; anything else yields ClassifyByLine.
func ParseClassifyMode(s string) ClassifyMode {
	if strings.EqualFold(s, "extension") {
		return ClassifyByExtension
	}
	return ClassifyByLine
}

// Classifier turns raw manifest lines into entries.
type Classifier struct {
	mode ClassifyMode
}

// NewClassifier creates a Classifier using the given mode.
func NewClassifier(mode ClassifyMode) *Classifier {
	return &Classifier{mode: mode}
}

// Classify parses one manifest line.
//
// The line is split on whitespace. The first token must be an absolute URL
// and the second is the destination directory; extra tokens are ignored.
// Structural problems return an error wrapping model.ErrMalformedEntry.
//
// An entry whose kind is model.KindUnknown is returned without error and
// should be skipped by the caller.
//
// Example:
//
//	c := NewClassifier(ClassifyByLine)
//	entry, err := c.Classify(3, "http://host/song.mp3 ./out/")
//	// entry.Kind == model.KindAudio, entry.DestinationDir == "./out/"
func (c *Classifier) Classify(lineNum int, line string) (*model.ManifestEntry, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: expected \"<url> <destination>\", got %d token(s)", model.ErrMalformedEntry, len(tokens))
	}

	u, err := url.Parse(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedEntry, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", model.ErrMalformedEntry, tokens[0])
	}

	return &model.ManifestEntry{
		SourceURL:      u,
		DestinationDir: tokens[1],
		Kind:           c.kind(line, u),
		Line:           lineNum,
		Raw:            line,
	}, nil
}

func (c *Classifier) kind(line string, u *url.URL) model.ResourceKind {
	if c.mode == ClassifyByExtension {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".jpg", ".jpeg":
			return model.KindImage
		case ".mp3":
			return model.KindAudio
		}
		return model.KindUnknown
	}

	// "jpg" wins when a line mentions both.
	switch {
	case strings.Contains(line, "jpg"):
		return model.KindImage
	case strings.Contains(line, "mp3"):
		return model.KindAudio
	}
	return model.KindUnknown
}
