package state

import (
	"context"
	"fmt"
	"strings"

	"shoresquad/internal/domain"
)

// CreateEvent validates input, appends a new event attributed to the current
// actor and persists. The event is pinned at the user's location, or at the
// default center while no fix is known.
func (s *State) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevLastID := s.lastID
	event := domain.NewEvent(s.nextIDLocked(), input, s.actorLocked(), s.eventLocationLocked())
	s.events = append(s.events, event)
	if err := s.saveLocked(ctx); err != nil {
		s.events = s.events[:len(s.events)-1]
		s.lastID = prevLastID
		return nil, err
	}
	return event.Clone(), nil
}

// JoinEvent adds the current actor to the event's participants. Joining an
// event the actor already joined changes nothing and does not persist.
func (s *State) JoinEvent(ctx context.Context, id int64) (*domain.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.findEventLocked(id)
	if event == nil {
		return nil, false, fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
	}
	actor := s.actorLocked()
	if event.HasJoined(actor) {
		return event.Clone(), false, nil
	}
	event.Joined = append(event.Joined, actor)
	if err := s.saveLocked(ctx); err != nil {
		event.Joined = event.Joined[:len(event.Joined)-1]
		return nil, false, err
	}
	return event.Clone(), true, nil
}

// CreateCrew appends a crew whose first member is the current actor, makes it
// the user's crew and persists. Crews with equal names are distinct.
func (s *State) CreateCrew(ctx context.Context, input domain.CreateCrewInput) (*domain.Crew, error) {
	if errs := input.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevLastID, prevUserCrew := s.lastID, s.userCrew
	crew := domain.NewCrew(s.nextIDLocked(), input.Name, input.Location, s.actorLocked(), s.now())
	s.crews = append(s.crews, crew)
	id := crew.ID
	s.userCrew = &id
	if err := s.saveLocked(ctx); err != nil {
		s.crews = s.crews[:len(s.crews)-1]
		s.lastID, s.userCrew = prevLastID, prevUserCrew
		return nil, err
	}
	return crew.Clone(), nil
}

// JoinCrew adds the current actor to the crew's members and makes it the
// user's crew. Joining a crew the actor already belongs to changes nothing.
func (s *State) JoinCrew(ctx context.Context, id int64) (*domain.Crew, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	crew := s.findCrewLocked(id)
	if crew == nil {
		return nil, false, fmt.Errorf("crew %d: %w", id, domain.ErrNotFound)
	}
	actor := s.actorLocked()
	if crew.HasMember(actor) {
		return crew.Clone(), false, nil
	}
	prevUserCrew := s.userCrew
	crew.Members = append(crew.Members, actor)
	s.userCrew = &id
	if err := s.saveLocked(ctx); err != nil {
		crew.Members = crew.Members[:len(crew.Members)-1]
		s.userCrew = prevUserCrew
		return nil, false, err
	}
	return crew.Clone(), true, nil
}

func (s *State) findEventLocked(id int64) *domain.Event {
	for _, e := range s.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *State) findCrewLocked(id int64) *domain.Crew {
	for _, c := range s.crews {
		if c.ID == id {
			return c
		}
	}
	return nil
}
