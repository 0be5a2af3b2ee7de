package config

import (
	"sync"
	"time"

	"github.com/emcrae/magpie/internal/pattern"
)

// Settings is the runtime view of the sync configuration: the compiled
// matcher plus everything the scheduler and pipeline consult per run.
type Settings struct {
	Matcher    *pattern.Matcher
	ShowNotice bool
	Debounce   time.Duration
}

// Store holds the active Settings and swaps them atomically when the
// configuration changes. Components read the current value at each use
// instead of capturing it at construction, so a settings change takes effect
// on the next run without restarting anything.
type Store struct {
	mu      sync.RWMutex
	current Settings
}

// NewStore compiles s into a Store. Fails if the file pattern is invalid.
func NewStore(s Sync) (*Store, error) {
	st := &Store{}
	if err := st.Update(s); err != nil {
		return nil, err
	}
	return st, nil
}

// Current returns the active settings.
func (st *Store) Current() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Update replaces the active settings. An invalid file pattern is an error
// and leaves the previous settings in effect.
func (st *Store) Update(s Sync) error {
	m, err := pattern.Compile(s.FilePattern)
	if err != nil {
		return err
	}

	st.mu.Lock()
	st.current = Settings{
		Matcher:    m,
		ShowNotice: s.ShowNotice,
		Debounce:   s.Debounce(),
	}
	st.mu.Unlock()
	return nil
}
