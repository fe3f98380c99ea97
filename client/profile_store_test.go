package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Deji-py/eco-rider/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "profile.json")
}

func TestProfileStoreEmptyStart(t *testing.T) {
	s := NewFileProfileStore(storePath(t))
	assert.True(t, s.Hydrated())
	_, ok := s.Profile()
	assert.False(t, ok)
	assert.False(t, s.OnboardingDone())
}

func TestProfileStoreSurvivesRestart(t *testing.T) {
	path := storePath(t)

	s := NewFileProfileStore(path)
	s.SetProfile(&entity.Rider{FirstName: "Ade", LastName: "Okafor", State: "Lagos"})
	s.SetOnboardingDone(true)

	// cold start from the same file
	s2 := NewFileProfileStore(path)
	p, ok := s2.Profile()
	require.True(t, ok)
	assert.Equal(t, "Ade", p.FirstName)
	assert.Equal(t, "Lagos", p.State)
	assert.True(t, s2.OnboardingDone())
}

func TestProfileStoreClearKeepsOnboarding(t *testing.T) {
	path := storePath(t)

	s := NewFileProfileStore(path)
	s.SetProfile(&entity.Rider{FirstName: "Ade"})
	s.SetOnboardingDone(true)
	s.Clear()

	_, ok := s.Profile()
	assert.False(t, ok)
	assert.True(t, s.OnboardingDone(), "onboarding flag belongs to the device")

	// and the profile stays gone after a restart
	s2 := NewFileProfileStore(path)
	_, ok = s2.Profile()
	assert.False(t, ok)
	assert.True(t, s2.OnboardingDone())
}

func TestProfileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileProfileStore(path)
	assert.True(t, s.Hydrated())
	_, ok := s.Profile()
	assert.False(t, ok)

	// the store is writable again after discarding the corrupt file
	s.SetProfile(&entity.Rider{FirstName: "Ade"})
	p, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "Ade", p.FirstName)
}

func TestProfileStoreReturnsCopy(t *testing.T) {
	s := NewFileProfileStore(storePath(t))
	s.SetProfile(&entity.Rider{FirstName: "Ade"})

	p, ok := s.Profile()
	require.True(t, ok)
	p.FirstName = "mutated"

	again, _ := s.Profile()
	assert.Equal(t, "Ade", again.FirstName)
}
