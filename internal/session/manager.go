package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cucinanostrard/internal/model"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	heartbeatSchedule = "@every 5m"
	sweepSchedule     = "@every 1m"
)

// Manager owns the session lifecycle: create on login, activity
// heartbeat, expiry sweep, selective and global revocation.
//
// The persisted list never carries an authoritative "current" marker;
// the manager tracks its own session id in memory and derives the flag
// on read. The persisted list is purely an enumerable revocation target.
type Manager struct {
	store  *Store
	creds  Credentials
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time

	mu        sync.Mutex
	currentID string

	cron *cron.Cron
}

// NewManager creates a session manager and starts its background
// schedule: an activity heartbeat every 5 minutes and an expiry sweep
// every 60 seconds, both no-ops while unauthenticated. A non-positive
// ttl falls back to the standard 24-hour session lifetime.
func NewManager(store *Store, creds Credentials, ttl time.Duration, logger zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = model.SessionDuration
	}
	m := &Manager{
		store:  store,
		creds:  creds,
		ttl:    ttl,
		logger: logger.With().Str("component", "session-manager").Logger(),
		now:    time.Now,
		cron:   cron.New(),
	}

	// Background jobs log and recover; they must never panic the process.
	// The schedules are constants, so a registration failure is a
	// programming error worth surfacing loudly in the logs.
	if _, err := m.cron.AddFunc(heartbeatSchedule, m.heartbeat); err != nil {
		m.logger.Error().Err(err).Str("schedule", heartbeatSchedule).Msg("failed to schedule session heartbeat")
	}
	if _, err := m.cron.AddFunc(sweepSchedule, m.sweep); err != nil {
		m.logger.Error().Err(err).Str("schedule", sweepSchedule).Msg("failed to schedule session sweep")
	}
	m.cron.Start()

	return m
}

// Close stops the background schedule.
func (m *Manager) Close() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}

// Login verifies the password and, on match, persists a fresh session
// for the device described by userAgent with a 24-hour absolute expiry.
// A mismatch returns false with no side effects.
func (m *Manager) Login(password, userAgent string) bool {
	if !m.creds.Verify(password) {
		m.logger.Warn().Msg("login rejected: invalid password")
		return false
	}

	now := m.now()
	newSession := model.Session{
		ID: generateSessionID(now),
		Device: model.DeviceInfo{
			UserAgent:    userAgent,
			CreatedAt:    now,
			LastActivity: now,
			DeviceName:   DeviceName(userAgent),
		},
		ExpiresAt: now.Add(m.ttl),
		IsCurrent: true,
	}

	sessions := m.store.Load()
	for i := range sessions {
		sessions[i].IsCurrent = false
	}
	sessions = append(sessions, newSession)
	m.store.Save(sessions)

	m.mu.Lock()
	m.currentID = newSession.ID
	m.mu.Unlock()

	m.logger.Info().
		Str("session_id", newSession.ID).
		Str("device", newSession.Device.DeviceName).
		Int("total_sessions", len(sessions)).
		Msg("login successful")

	return true
}

// Logout removes the targeted session from the persisted list; an empty
// id targets this runtime's own session. Revoking the own session drops
// the in-memory authenticated state.
func (m *Manager) Logout(sessionID string) {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	target := sessionID
	if target == "" {
		target = current
	}
	if target == "" {
		return
	}

	sessions := m.store.Load()
	remaining := sessions[:0]
	for _, session := range sessions {
		if session.ID != target {
			remaining = append(remaining, session)
		}
	}
	m.store.Save(remaining)

	if target == current {
		m.mu.Lock()
		m.currentID = ""
		m.mu.Unlock()
	}

	m.logger.Info().
		Str("session_id", target).
		Int("remaining_sessions", len(remaining)).
		Msg("session logged out")
}

// LogoutAllDevices clears every persisted session this runtime can see,
// authenticated or not.
func (m *Manager) LogoutAllDevices() {
	m.store.Reset()

	m.mu.Lock()
	m.currentID = ""
	m.mu.Unlock()

	m.logger.Info().Msg("all sessions logged out")
}

// RefreshSession reconciles in-memory state with the persisted list
// after an external mutation: if the own session disappeared or expired,
// the authenticated state is dropped.
func (m *Manager) RefreshSession() {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	if current == "" {
		return
	}
	if findSession(m.store.Load(), current) == nil {
		m.mu.Lock()
		m.currentID = ""
		m.mu.Unlock()
	}
}

// ValidateSession reports whether the own session is still live. An
// expired or vanished session triggers a logout and returns false.
func (m *Manager) ValidateSession() bool {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	if current == "" {
		return false
	}

	session := findSession(m.store.Load(), current)
	if session == nil || session.Expired(m.now()) {
		m.logger.Info().Str("session_id", current).Msg("session expired, logging out")
		m.Logout(current)
		return false
	}
	return true
}

// Validate reports whether the given session id names a live persisted
// session. This gates product mutations at the HTTP layer.
func (m *Manager) Validate(sessionID string) bool {
	if sessionID == "" {
		return false
	}
	return findSession(m.store.Load(), sessionID) != nil
}

// AllSessions returns the live persisted sessions with the IsCurrent
// flag derived against this runtime's own session id.
func (m *Manager) AllSessions() []model.Session {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	sessions := m.store.Load()
	out := make([]model.Session, len(sessions))
	for i, session := range sessions {
		session.IsCurrent = session.ID == current
		out[i] = session
	}
	return out
}

// CurrentSession returns this runtime's own session, or nil.
func (m *Manager) CurrentSession() *model.Session {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	if current == "" {
		return nil
	}
	session := findSession(m.store.Load(), current)
	if session == nil {
		return nil
	}
	session.IsCurrent = true
	return session
}

// IsAuthenticated reports whether this runtime holds a live session.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	if current == "" {
		return false
	}
	return findSession(m.store.Load(), current) != nil
}

// heartbeat refreshes the own session's last-activity timestamp.
// Activity never extends expiry; the lifetime is absolute.
func (m *Manager) heartbeat() {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	if current == "" {
		return
	}

	sessions := m.store.Load()
	updated := false
	for i := range sessions {
		if sessions[i].ID == current {
			sessions[i].Device.LastActivity = m.now()
			updated = true
		}
	}
	if updated {
		m.store.Save(sessions)
		m.logger.Debug().Str("session_id", current).Msg("session activity refreshed")
	}
}

// sweep enforces expiry between reads.
func (m *Manager) sweep() {
	m.mu.Lock()
	current := m.currentID
	m.mu.Unlock()

	if current == "" {
		return
	}
	m.ValidateSession()
}

// generateSessionID builds the capability token: creation time plus a
// random suffix. Unique, not cryptographically meaningful.
func generateSessionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}

func findSession(sessions []model.Session, id string) *model.Session {
	for i := range sessions {
		if sessions[i].ID == id {
			session := sessions[i]
			return &session
		}
	}
	return nil
}
