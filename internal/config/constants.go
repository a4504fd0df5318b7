package config

import "time"

const (
	// Backend request timeout
	RequestTimeout = 60 * time.Second

	// Geolocation probe timeout
	LocationTimeout = 10 * time.Second

	// Placeholder title for freshly created conversations, rewritten once
	// the backend generates a real one.
	DefaultConversationTitle = "New Moving Chat"
)
