// Package state owns the canonical in-memory model: events, crews, the
// current user, the user's crew and the user's location. Every mutation
// persists the events and crews before returning.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"shoresquad/internal/domain"
)

// Options configures a State.
type Options struct {
	Store      domain.StateStore
	Geolocator domain.Geolocator
	Logger     *slog.Logger
	StorageKey string
	// DefaultCenter places events created before a location fix is known.
	DefaultCenter domain.Location
	// Now is the clock used for ids and timestamps. Defaults to time.Now.
	Now func() time.Time
}

// State is the single shared mutable model. It is safe for concurrent use;
// readers receive copies.
type State struct {
	mu sync.RWMutex

	events       []*domain.Event
	crews        []*domain.Crew
	userLocation *domain.Location
	currentUser  string
	userCrew     *int64
	lastID       int64

	store         domain.StateStore
	geo           domain.Geolocator
	logger        *slog.Logger
	key           string
	defaultCenter domain.Location
	now           func() time.Time

	listenerMu       sync.Mutex
	onLocation       func(domain.Location)
	locateInProgress sync.WaitGroup
}

// New returns an empty State. Call Initialize to load persisted data.
func New(opts Options) *State {
	s := &State{
		events:        []*domain.Event{},
		crews:         []*domain.Crew{},
		store:         opts.Store,
		geo:           opts.Geolocator,
		logger:        opts.Logger,
		key:           opts.StorageKey,
		defaultCenter: opts.DefaultCenter,
		now:           opts.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.key == "" {
		s.key = domain.DefaultStorageKey
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// OnLocation registers fn to run after a location fix is stored.
func (s *State) OnLocation(fn func(domain.Location)) {
	s.listenerMu.Lock()
	s.onLocation = fn
	s.listenerMu.Unlock()
}

// Initialize loads persisted collections and requests the user's location in
// the background. It never fails on malformed persisted data.
func (s *State) Initialize(ctx context.Context) {
	s.LoadFromStorage(ctx)
	s.locateInProgress.Add(1)
	go func() {
		defer s.locateInProgress.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("geolocation panicked", "panic", r)
			}
		}()
		s.GetCurrentLocation(ctx)
	}()
}

// WaitLocated blocks until a location request started by Initialize has finished.
func (s *State) WaitLocated() {
	s.locateInProgress.Wait()
}

// LoadFromStorage replaces events and crews with the persisted snapshot.
// A missing, unreadable or malformed payload yields empty collections.
func (s *State) LoadFromStorage(ctx context.Context) {
	snap := s.readSnapshot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = snap.Events
	s.crews = snap.Crews
	s.lastID = 0
	for _, e := range s.events {
		s.lastID = max(s.lastID, e.ID)
	}
	for _, c := range s.crews {
		s.lastID = max(s.lastID, c.ID)
	}
}

func (s *State) readSnapshot(ctx context.Context) domain.Snapshot {
	empty := domain.Snapshot{Events: []*domain.Event{}, Crews: []*domain.Crew{}}
	if s.store == nil {
		return empty
	}
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "load state failed, starting empty", "key", s.key, "err", err)
		}
		return empty
	}
	if len(raw) == 0 {
		return empty
	}
	snap, err := domain.DecodeSnapshot(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "persisted state is malformed, starting empty", "key", s.key, "err", err)
		return empty
	}
	return snap
}

// SaveToStorage writes events and crews. Location and current user are not persisted.
func (s *State) SaveToStorage(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

// saveLocked persists the collections; the caller must hold mu.
func (s *State) saveLocked(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	b, err := domain.EncodeSnapshot(domain.Snapshot{Events: s.events, Crews: s.crews})
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, s.key, b); err != nil {
		s.logger.ErrorContext(ctx, "save state failed", "key", s.key, "err", err)
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// GetCurrentLocation asks the geolocator once. On success the location is
// stored and the location listener runs; on failure it is logged and the
// location stays unknown.
func (s *State) GetCurrentLocation(ctx context.Context) {
	if s.geo == nil {
		return
	}
	loc, err := s.geo.Locate(ctx)
	if err != nil {
		s.logger.InfoContext(ctx, "location access denied", "err", err)
		return
	}

	s.mu.Lock()
	s.userLocation = &loc
	s.mu.Unlock()

	s.listenerMu.Lock()
	fn := s.onLocation
	s.listenerMu.Unlock()
	if fn != nil {
		fn(loc)
	}
}

// nextIDLocked returns a creation-timestamp id that is unique across
// events and crews; the caller must hold mu.
func (s *State) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// actorLocked resolves the identity for a mutation; the caller must hold mu.
func (s *State) actorLocked() string {
	return domain.ResolveActor(s.currentUser)
}

// eventLocationLocked is where a new event is pinned; the caller must hold mu.
func (s *State) eventLocationLocked() domain.Location {
	if s.userLocation != nil {
		return *s.userLocation
	}
	return s.defaultCenter
}
