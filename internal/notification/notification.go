// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/docdesk/docdesk/internal/logger"
)

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("Notification: sending - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// ResponseReady sends a notification that a chat response has finished.
func ResponseReady() error {
	return Send("Docdesk", "Response ready")
}
