// Package session keeps per-user UI state that does not belong in the
// database: the set of packages a signed-in user has saved for later.
// Views that render the saved list register a callback instead of
// listening for a global refresh event.
package session

import "sync"

// ChangeFunc is invoked after a user's saved set changes. It receives a
// copy of the new set and must not block.
type ChangeFunc func(savedTripIDs map[int64]struct{})

// TripStore holds saved trips per user with change notification.
type TripStore struct {
	mu        sync.RWMutex
	saved     map[string]map[int64]struct{}
	observers map[string]map[int64]ChangeFunc
	nextObsID int64
}

func NewTripStore() *TripStore {
	return &TripStore{
		saved:     make(map[string]map[int64]struct{}),
		observers: make(map[string]map[int64]ChangeFunc),
	}
}

// Save adds a package to the user's saved set. Saving an already saved
// package is a no-op and fires no notification.
func (s *TripStore) Save(userID string, packageID int64) {
	s.mu.Lock()
	set, ok := s.saved[userID]
	if !ok {
		set = make(map[int64]struct{})
		s.saved[userID] = set
	}
	if _, exists := set[packageID]; exists {
		s.mu.Unlock()
		return
	}
	set[packageID] = struct{}{}
	s.notifyLocked(userID)
}

// Remove drops a package from the user's saved set.
func (s *TripStore) Remove(userID string, packageID int64) {
	s.mu.Lock()
	set, ok := s.saved[userID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if _, exists := set[packageID]; !exists {
		s.mu.Unlock()
		return
	}
	delete(set, packageID)
	s.notifyLocked(userID)
}

// Saved reports whether the user has saved the package.
func (s *TripStore) Saved(userID string, packageID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.saved[userID][packageID]
	return ok
}

// List returns a copy of the user's saved package ids.
func (s *TripStore) List(userID string) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.saved[userID]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// Subscribe registers a callback for changes to one user's saved set and
// returns a function that removes the subscription.
func (s *TripStore) Subscribe(userID string, fn ChangeFunc) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obs, ok := s.observers[userID]
	if !ok {
		obs = make(map[int64]ChangeFunc)
		s.observers[userID] = obs
	}
	s.nextObsID++
	id := s.nextObsID
	obs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers[userID], id)
		if len(s.observers[userID]) == 0 {
			delete(s.observers, userID)
		}
	}
}

// notifyLocked snapshots the set under the lock, releases it, then runs
// the callbacks so an observer may call back into the store.
func (s *TripStore) notifyLocked(userID string) {
	set := s.saved[userID]
	snapshot := make(map[int64]struct{}, len(set))
	for id := range set {
		snapshot[id] = struct{}{}
	}
	fns := make([]ChangeFunc, 0, len(s.observers[userID]))
	for _, fn := range s.observers[userID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
