// Package clipboard provides text writing to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/docdesk/docdesk/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init initializes the clipboard. Safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("Clipboard: failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	logger.Debug("Clipboard: initialized")
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Debug("Clipboard: wrote %d bytes of text", len(text))
	return nil
}
