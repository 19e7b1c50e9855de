package device

import "time"

// Device represents a registered device reporting usage records. Pairing and
// authentication live outside this service; a device here is just the owner
// of a stream of usage records.
type Device struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Platform  string    `json:"platform,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen,omitempty"`
}
