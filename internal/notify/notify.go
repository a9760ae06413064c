// Package notify shows a "now playing" desktop notification when the
// daemon starts a track.
package notify

import "time"

// Notification is one freedesktop notification.
type Notification struct {
	Summary    string
	Body       string
	Icon       string        // image path, empty for none
	Timeout    time.Duration // <= 0 uses the server default
	ReplacesID uint32        // 0 opens a new notification
}

// Notifier delivers notifications to the desktop.
type Notifier interface {
	// Notify shows n and returns the id the server assigned to it.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}
