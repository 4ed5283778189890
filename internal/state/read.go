package state

import (
	"fmt"

	"shoresquad/internal/domain"
)

// Events returns copies of all events in insertion order.
func (s *State) Events() []*domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Clone())
	}
	return out
}

// Crews returns copies of all crews in insertion order.
func (s *State) Crews() []*domain.Crew {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Crew, 0, len(s.crews))
	for _, c := range s.crews {
		out = append(out, c.Clone())
	}
	return out
}

// Event returns a copy of the event with the given id.
func (s *State) Event(id int64) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.findEventLocked(id); e != nil {
		return e.Clone(), nil
	}
	return nil, fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
}

// Crew returns a copy of the crew with the given id.
func (s *State) Crew(id int64) (*domain.Crew, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := s.findCrewLocked(id); c != nil {
		return c.Clone(), nil
	}
	return nil, fmt.Errorf("crew %d: %w", id, domain.ErrNotFound)
}

// UserLocation returns the resolved location, if any.
func (s *State) UserLocation() (domain.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userLocation == nil {
		return domain.Location{}, false
	}
	return *s.userLocation, true
}

// WeatherLocation is the user's location, or the default center when unknown.
func (s *State) WeatherLocation() domain.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eventLocationLocked()
}

// DefaultCenter is the fallback map center.
func (s *State) DefaultCenter() domain.Location {
	return s.defaultCenter
}

// CurrentUser returns the display name set for this session, or "".
func (s *State) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser
}

// SetCurrentUser sets the session display name. It is not persisted.
func (s *State) SetCurrentUser(name string) {
	s.mu.Lock()
	s.currentUser = name
	s.mu.Unlock()
}

// Actor is the identity the next mutation will be attributed to.
func (s *State) Actor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actorLocked()
}

// UserCrew returns the id of the crew most recently joined or created.
func (s *State) UserCrew() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userCrew == nil {
		return 0, false
	}
	return *s.userCrew, true
}
