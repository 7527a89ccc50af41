package meta

import (
	"sync"
)

// SearchState holds per-search mutable state for thread-safe concurrent searches.
// It is obtained from a sync.Pool so that the same compiled Engine can be
// used from multiple goroutines.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state.slots for the search
//
// Thread safety: Each goroutine must use its own SearchState instance.
type SearchState struct {
	// slots receives group bounds from the matcher: slot 2*i and 2*i+1
	// are the start and end of group i, -1 when unset.
	slots []int
}

func newSearchState(numSlots int) *SearchState {
	state := &SearchState{slots: make([]int, numSlots)}
	state.reset()
	return state
}

// reset prepares the SearchState for reuse.
func (s *SearchState) reset() {
	for i := range s.slots {
		s.slots[i] = -1
	}
}

// searchStatePool manages a pool of SearchState instances for thread-safe reuse.
// This follows the stdlib regexp package pattern of using sync.Pool for concurrent safety.
type searchStatePool struct {
	pool     sync.Pool
	numSlots int
}

func newSearchStatePool(numSlots int) *searchStatePool {
	p := &searchStatePool{numSlots: numSlots}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(p.numSlots)
		},
	}
	return p
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}
