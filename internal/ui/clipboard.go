// Package ui holds shared terminal UI building blocks: clipboard
// access, styles, and syntax highlighting.
package ui

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/sift-db/sift/internal/logger"
)

// ClipboardWriter provides system clipboard access with graceful
// degradation: when the platform clipboard cannot be initialized,
// writes fail with a descriptive error instead of panicking.
type ClipboardWriter struct {
	available bool
	errMsg    string
}

// NewClipboardWriter initializes the system clipboard.
func NewClipboardWriter() *ClipboardWriter {
	cw := &ClipboardWriter{}
	if err := clipboard.Init(); err != nil {
		cw.errMsg = err.Error()
		logger.Warn("clipboard unavailable", "error", err)
		return cw
	}
	cw.available = true
	return cw
}

// IsAvailable returns whether clipboard operations are supported.
func (cw *ClipboardWriter) IsAvailable() bool {
	return cw.available
}

// Error returns the reason clipboard is unavailable.
func (cw *ClipboardWriter) Error() string {
	return cw.errMsg
}

// Write copies text to the system clipboard.
func (cw *ClipboardWriter) Write(text string) error {
	if !cw.available {
		return fmt.Errorf("clipboard unavailable: %s", cw.errMsg)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
