package domain

import "context"

// Identity describes who is acting in this session.
// swagger:model Identity
type Identity struct {
	CurrentUser  string    `json:"currentUser"`
	Actor        string    `json:"actor"`
	UserCrew     *int64    `json:"userCrew"`
	UserLocation *Location `json:"userLocation"`
}

// SquadService coordinates state mutations with persistence, re-rendering and notifications.
type SquadService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error)
	JoinEvent(ctx context.Context, eventID int64) (*Event, error)
	ShareEvent(ctx context.Context, eventID int64) error
	ListEvents(ctx context.Context) []*Event
	CreateCrew(ctx context.Context, input CreateCrewInput) (*Crew, error)
	JoinCrew(ctx context.Context, crewID int64) (*Crew, error)
	ListCrews(ctx context.Context) []*Crew
	Identity(ctx context.Context) Identity
	SetCurrentUser(ctx context.Context, name string) Identity
}
