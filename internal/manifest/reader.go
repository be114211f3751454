package manifest

import (
	"bufio"
	"fmt"
	"os"

	"github.com/handiism/manifest-fetcher/internal/model"
)

// maxLineSize bounds a single manifest line.
const maxLineSize = 1024 * 1024

// Reader yields manifest lines one at a time.
//
// The sequence is lazy, finite and cannot be restarted. Only the current
// line is held in memory.
//
// Example:
//
//	r, err := manifest.Open("file/inFile.txt")
//	if err != nil {
//	    return err // wraps model.ErrManifestNotFound
//	}
//	defer r.Close()
//
//	for r.Next() {
//	    fmt.Println(r.LineNumber(), r.Line())
//	}
//	if err := r.Err(); err != nil {
//	    return err
//	}
type Reader struct {
	file    *os.File
	scanner *bufio.Scanner
	path    string
	line    int
}

// Open opens the manifest at path.
//
// Returns an error wrapping model.ErrManifestNotFound if the file cannot
// be opened for any reason.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrManifestNotFound, err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Reader{
		file:    file,
		scanner: scanner,
		path:    path,
	}, nil
}

// Next advances to the next line. It returns false at the end of the file
// or on a read error; check Err afterwards.
func (r *Reader) Next() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	return true
}

// Line returns the current line without its trailing newline.
func (r *Reader) Line() string {
	return r.scanner.Text()
}

// LineNumber returns the 1-based number of the current line.
func (r *Reader) LineNumber() int {
	return r.line
}

// Err returns the first read error, wrapped with model.ErrManifestNotFound.
func (r *Reader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading %s after line %d: %v", model.ErrManifestNotFound, r.path, r.line, err)
	}
	return nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// CountLines returns the number of lines in the manifest at path. It reads
// the whole file, so callers use it only for progress display.
func CountLines(path string) (int, error) {
	r, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	for r.Next() {
	}
	return r.LineNumber(), r.Err()
}
