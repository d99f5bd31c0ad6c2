// Package state holds the dashboard's UI state. Only the region and time
// range survive restarts; tab and accordion state are session-local.
package state

import "sync"

// Defaults applied to a fresh store.
const (
	DefaultTab       = "overview"
	DefaultRegion    = "global"
	DefaultTimeRange = "year"
)

// Persisted is the subset of the store that is written to disk.
type Persisted struct {
	SelectedRegion string `json:"selectedRegion"`
	TimeRange      string `json:"timeRange"`
}

// Persistence loads and saves the durable slice of the store.
type Persistence interface {
	Load() (Persisted, bool, error)
	Save(Persisted) error
}

// Store is a concurrency-safe UI state container.
type Store struct {
	mu               sync.RWMutex
	activeTab        string
	selectedRegion   string
	timeRange        string
	expandedCategory string
	persistence      Persistence
}

// New creates a store, rehydrating the persisted fields when a persistence
// layer is supplied and has prior state.
func New(persistence Persistence) (*Store, error) {
	s := &Store{
		activeTab:      DefaultTab,
		selectedRegion: DefaultRegion,
		timeRange:      DefaultTimeRange,
		persistence:    persistence,
	}

	if persistence != nil {
		saved, ok, err := persistence.Load()
		if err != nil {
			return nil, err
		}
		if ok {
			if saved.SelectedRegion != "" {
				s.selectedRegion = saved.SelectedRegion
			}
			if saved.TimeRange != "" {
				s.timeRange = saved.TimeRange
			}
		}
	}
	return s, nil
}

func (s *Store) ActiveTab() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTab
}

func (s *Store) SetActiveTab(tab string) {
	s.mu.Lock()
	s.activeTab = tab
	s.mu.Unlock()
}

func (s *Store) SelectedRegion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedRegion
}

// SetSelectedRegion updates the region and persists the durable slice.
func (s *Store) SetSelectedRegion(region string) error {
	s.mu.Lock()
	s.selectedRegion = region
	s.mu.Unlock()
	return s.persist()
}

func (s *Store) TimeRange() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeRange
}

// SetTimeRange updates the time range and persists the durable slice.
func (s *Store) SetTimeRange(timeRange string) error {
	s.mu.Lock()
	s.timeRange = timeRange
	s.mu.Unlock()
	return s.persist()
}

func (s *Store) ExpandedCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expandedCategory
}

// ToggleExpandedCategory expands the category, or collapses it when it is
// already expanded.
func (s *Store) ToggleExpandedCategory(category string) {
	s.mu.Lock()
	if s.expandedCategory == category {
		s.expandedCategory = ""
	} else {
		s.expandedCategory = category
	}
	s.mu.Unlock()
}

func (s *Store) persist() error {
	if s.persistence == nil {
		return nil
	}
	s.mu.RLock()
	snapshot := Persisted{
		SelectedRegion: s.selectedRegion,
		TimeRange:      s.timeRange,
	}
	s.mu.RUnlock()
	return s.persistence.Save(snapshot)
}
