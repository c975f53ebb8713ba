package model

import "time"

// SessionDuration is the absolute lifetime of a session. Expiry is fixed
// at creation time, not sliding: activity updates never extend it.
const SessionDuration = 24 * time.Hour

// DeviceInfo describes the browser/device a session was created from.
// The device name is derived from the user agent for display only.
type DeviceInfo struct {
	UserAgent    string    `json:"userAgent"`
	CreatedAt    time.Time `json:"timestamp"`
	LastActivity time.Time `json:"lastActivity"`
	DeviceName   string    `json:"deviceName"`
}

// Session is one authenticated login on one device. The id is a
// client-generated capability token, not a server-validated credential.
//
// IsCurrent is derived on read relative to the runtime that owns the
// manager; the serialized field exists for storage compatibility and is
// never trusted when a persisted list is loaded.
type Session struct {
	ID        string     `json:"id"`
	Device    DeviceInfo `json:"deviceInfo"`
	ExpiresAt time.Time  `json:"expiresAt"`
	IsCurrent bool       `json:"isCurrentSession"`
}

// Expired reports whether the session's absolute expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
