package domain

// Coordinates is the client's geographic position. Attached to outgoing chat
// requests when known, never persisted in messages.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}
