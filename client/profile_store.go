package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/Deji-py/eco-rider/entity"

	"go.uber.org/zap"
)

const (
	profileKey    = "dispatch_rider_profile"
	onboardingKey = "has_completed_onboarding"
)

// ProfileStore is the process-wide rider profile cache with a defined
// lifecycle: hydrate from disk at startup, overwrite on every successful
// remote fetch, clear on sign-out.
type ProfileStore interface {
	Hydrated() bool
	Profile() (*entity.Rider, bool)
	SetProfile(p *entity.Rider)
	Clear()
	OnboardingDone() bool
	SetOnboardingDone(done bool)
}

// FileProfileStore persists through a small JSON key-value file so a cold
// start can render the last known profile before the remote fetch resolves.
type FileProfileStore struct {
	mu         sync.RWMutex
	path       string
	values     map[string]json.RawMessage
	profile    *entity.Rider
	onboarding bool
	hydrated   bool
}

func NewFileProfileStore(path string) *FileProfileStore {
	s := &FileProfileStore{path: path, values: make(map[string]json.RawMessage)}
	s.hydrate()
	return s
}

func (s *FileProfileStore) hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.hydrated = true }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			zap.L().Warn("profile store read failed", zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		zap.L().Warn("profile store corrupt, starting empty", zap.Error(err))
		s.values = make(map[string]json.RawMessage)
		return
	}

	if raw, ok := s.values[profileKey]; ok {
		var p entity.Rider
		if err := json.Unmarshal(raw, &p); err == nil {
			s.profile = &p
		}
	}
	if raw, ok := s.values[onboardingKey]; ok {
		_ = json.Unmarshal(raw, &s.onboarding)
	}
}

// flush must be called with the lock held.
func (s *FileProfileStore) flush() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		zap.L().Warn("profile store marshal failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		zap.L().Warn("profile store write failed", zap.Error(err))
	}
}

func (s *FileProfileStore) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

func (s *FileProfileStore) Profile() (*entity.Rider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil, false
	}
	p := *s.profile
	return &p, true
}

// SetProfile overwrites the cached profile. Called after every successful
// remote profile fetch or update; writes only ever follow a committed
// remote mutation.
func (s *FileProfileStore) SetProfile(p *entity.Rider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profile = &cp
	if raw, err := json.Marshal(&cp); err == nil {
		s.values[profileKey] = raw
	}
	s.flush()
}

// Clear wipes the cached profile on sign-out. The onboarding flag survives:
// it belongs to the device, not the session.
func (s *FileProfileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	delete(s.values, profileKey)
	s.flush()
}

func (s *FileProfileStore) OnboardingDone() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboarding
}

func (s *FileProfileStore) SetOnboardingDone(done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onboarding = done
	if raw, err := json.Marshal(done); err == nil {
		s.values[onboardingKey] = raw
	}
	s.flush()
}
