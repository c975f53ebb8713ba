package session

import (
	"encoding/json"
	"time"

	"cucinanostrard/internal/model"

	"github.com/rs/zerolog"
)

// StorageKey is the single key the session list lives under.
const StorageKey = "ttro_admin_sessions"

// Store persists the session list as one JSON array blob. Every read
// lazily purges expired entries; a corrupted blob is self-healing: the
// key is reset and an empty list returned.
type Store struct {
	kv     KV
	logger zerolog.Logger
	now    func() time.Time
}

// NewStore creates a session store over the given KV.
func NewStore(kv KV, logger zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger.With().Str("component", "session-store").Logger(),
		now:    time.Now,
	}
}

// Load returns all non-expired persisted sessions. When expired entries
// were dropped, the trimmed list is written back immediately.
func (s *Store) Load() []model.Session {
	blob, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read session list")
		return nil
	}
	if blob == nil {
		return nil
	}

	var sessions []model.Session
	if err := json.Unmarshal(blob, &sessions); err != nil {
		s.logger.Error().Err(err).Msg("corrupted session list, resetting storage")
		if resetErr := s.kv.Delete(StorageKey); resetErr != nil {
			s.logger.Error().Err(resetErr).Msg("failed to reset session storage")
		}
		return nil
	}

	now := s.now()
	valid := sessions[:0]
	for _, session := range sessions {
		if !session.Expired(now) {
			valid = append(valid, session)
		}
	}

	if len(valid) != len(sessions) {
		s.logger.Debug().
			Int("removed", len(sessions)-len(valid)).
			Msg("purged expired sessions")
		s.Save(valid)
	}

	return valid
}

// Save replaces the persisted session list.
func (s *Store) Save(sessions []model.Session) {
	blob, err := json.Marshal(sessions)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode session list")
		return
	}
	if err := s.kv.Put(StorageKey, blob); err != nil {
		s.logger.Error().Err(err).Msg("failed to write session list")
	}
}

// Reset removes the entire persisted session list.
func (s *Store) Reset() {
	if err := s.kv.Delete(StorageKey); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear session list")
	}
}
