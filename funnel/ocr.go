package funnel

import (
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// TextExtractor owns a single long-lived OCR engine handle. gosseract's
// client is not safe for concurrent use, so callers serialize through Extract;
// within one funnel pass, L3 only ever calls it from its own goroutine, but
// the mutex keeps the type safe to share.
//
// This is deliberately an explicit owned handle rather than a package-level
// singleton (per §9's guidance): the caller constructs one per job and
// Closes it when the funnel stage finishes.
type TextExtractor struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTextExtractor starts a Tesseract engine instance.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{client: gosseract.NewClient()}
}

// Extract returns the trimmed OCR text for the image at path. An
// all-whitespace result is normalized to "" so callers can treat "no text"
// uniformly regardless of what Tesseract actually returned.
func (e *TextExtractor) Extract(path string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImage(path); err != nil {
		return "", err
	}
	text, err := e.client.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Close releases the underlying Tesseract engine.
func (e *TextExtractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
