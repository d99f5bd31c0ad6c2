package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersistence struct {
	saved  Persisted
	loaded Persisted
	found  bool
	saves  int
}

func (m *memPersistence) Load() (Persisted, bool, error) {
	return m.loaded, m.found, nil
}

func (m *memPersistence) Save(p Persisted) error {
	m.saved = p
	m.saves++
	return nil
}

func TestStoreDefaults(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, "overview", s.ActiveTab())
	assert.Equal(t, "global", s.SelectedRegion())
	assert.Equal(t, "year", s.TimeRange())
	assert.Equal(t, "", s.ExpandedCategory())
}

func TestStorePersistsOnlyRegionAndTimeRange(t *testing.T) {
	mem := &memPersistence{}
	s, err := New(mem)
	require.NoError(t, err)

	s.SetActiveTab("resources")
	s.ToggleExpandedCategory("energy")
	assert.Zero(t, mem.saves)

	require.NoError(t, s.SetSelectedRegion("europe"))
	require.NoError(t, s.SetTimeRange("month"))

	assert.Equal(t, 2, mem.saves)
	assert.Equal(t, Persisted{SelectedRegion: "europe", TimeRange: "month"}, mem.saved)
}

func TestStoreRehydratesFromPersistence(t *testing.T) {
	mem := &memPersistence{
		loaded: Persisted{SelectedRegion: "asia", TimeRange: "week"},
		found:  true,
	}

	s, err := New(mem)
	require.NoError(t, err)

	assert.Equal(t, "asia", s.SelectedRegion())
	assert.Equal(t, "week", s.TimeRange())
	// Session-local fields always reset.
	assert.Equal(t, "overview", s.ActiveTab())
}

func TestToggleExpandedCategory(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	s.ToggleExpandedCategory("energy")
	assert.Equal(t, "energy", s.ExpandedCategory())

	s.ToggleExpandedCategory("energy")
	assert.Equal(t, "", s.ExpandedCategory())

	s.ToggleExpandedCategory("water")
	assert.Equal(t, "water", s.ExpandedCategory())
}

func TestBoltPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-state.db")

	p, err := OpenBolt(path)
	require.NoError(t, err)

	_, found, err := p.Load()
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, p.Save(Persisted{SelectedRegion: "europe", TimeRange: "month"}))
	require.NoError(t, p.Close())

	// Reopen and verify the state survived.
	p, err = OpenBolt(path)
	require.NoError(t, err)
	defer p.Close()

	saved, found, err := p.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Persisted{SelectedRegion: "europe", TimeRange: "month"}, saved)
}

func TestStoreOverBoltSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-state.db")

	p, err := OpenBolt(path)
	require.NoError(t, err)

	s, err := New(p)
	require.NoError(t, err)
	require.NoError(t, s.SetSelectedRegion("africa"))
	require.NoError(t, p.Close())

	p, err = OpenBolt(path)
	require.NoError(t, err)
	defer p.Close()

	restored, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, "africa", restored.SelectedRegion())
	assert.Equal(t, "year", restored.TimeRange())
}
