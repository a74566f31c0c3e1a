package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"mindcoach/internal/event"
	"mindcoach/internal/metrics"
	"mindcoach/internal/repository"
	"mindcoach/internal/security"
	"mindcoach/internal/state"
)

// StateService loads, transitions and stores per-user app state.
// Writes for one user are serialised so appends are never lost. The cache
// only serves Get; Apply always starts from the stored record because other
// processes (coachctl import, user delete) write the same table.
type StateService struct {
	repo      *repository.StateRepository
	cache     *expirable.LRU[string, state.AppState]
	locks     *keyedMutex
	publisher event.Publisher
	metrics   *metrics.Metrics
	location  *time.Location
	now       func() time.Time
}

// NewStateService creates a state service with a read cache of cacheSize
// records, each kept for at most cacheTTL
func NewStateService(repo *repository.StateRepository, cacheSize int, cacheTTL time.Duration, publisher event.Publisher, m *metrics.Metrics, loc *time.Location) (*StateService, error) {
	if cacheSize <= 0 {
		return nil, fmt.Errorf("failed to create state cache: size must be positive, got %d", cacheSize)
	}
	if cacheTTL <= 0 {
		return nil, fmt.Errorf("failed to create state cache: ttl must be positive, got %s", cacheTTL)
	}
	cache := expirable.NewLRU[string, state.AppState](cacheSize, nil, cacheTTL)
	if loc == nil {
		loc = time.Local
	}
	return &StateService{
		repo:      repo,
		cache:     cache,
		locks:     newKeyedMutex(),
		publisher: publisher,
		metrics:   m,
		location:  loc,
		now:       time.Now,
	}, nil
}

// Location is the time zone calendar days are computed in
func (s *StateService) Location() *time.Location {
	return s.location
}

// Now returns the service clock's current time
func (s *StateService) Now() time.Time {
	return s.now()
}

// Register creates a new user with the initial state and returns its id
func (s *StateService) Register(ctx context.Context) (string, error) {
	userID := security.NewUserID()
	if err := s.repo.Save(ctx, userID, state.Initial()); err != nil {
		return "", err
	}
	log.Printf("Registered user %s", userID)
	return userID, nil
}

// Get returns the user's state. Users without a stored record get the initial state.
func (s *StateService) Get(ctx context.Context, userID string) (state.AppState, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if cached, ok := s.cache.Get(userID); ok {
		s.metrics.CacheLookup(true)
		return cached, nil
	}
	s.metrics.CacheLookup(false)

	current, err := s.loadStored(ctx, userID)
	if err != nil {
		return state.AppState{}, err
	}
	s.cache.Add(userID, current)
	return current, nil
}

// loadStored reads the record from the repository; callers hold the user's lock
func (s *StateService) loadStored(ctx context.Context, userID string) (state.AppState, error) {
	stored, err := s.repo.Load(ctx, userID)
	if err != nil {
		return state.AppState{}, err
	}
	if stored == nil {
		return state.Initial(), nil
	}
	return *stored, nil
}

// Apply reduces the event into the user's state, saves it and publishes the transition
func (s *StateService) Apply(ctx context.Context, userID string, e state.Event) (state.AppState, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	current, err := s.loadStored(ctx, userID)
	if err != nil {
		return state.AppState{}, err
	}

	next := state.Reduce(current, e, s.location)
	if err := s.repo.Save(ctx, userID, next); err != nil {
		return state.AppState{}, err
	}
	s.cache.Add(userID, next)

	s.metrics.StateEvent(e.Name())
	publish(ctx, s.publisher, s.metrics, event.StatePrefix+e.Name(), userID, e)
	return next, nil
}

// Export returns the user's state stamped for download
func (s *StateService) Export(ctx context.Context, userID string) (state.Export, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return state.Export{}, err
	}
	return state.NewExport(current, s.now()), nil
}

// UserIDs lists every user with a stored record
func (s *StateService) UserIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListUserIDs(ctx)
}

// Delete removes the user's record entirely
func (s *StateService) Delete(ctx context.Context, userID string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	s.cache.Remove(userID)
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil || !exists {
		return false, err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return false, err
	}
	log.Printf("Deleted user %s", userID)
	return true, nil
}

// Purge empties the read cache
func (s *StateService) Purge() {
	s.cache.Purge()
}
