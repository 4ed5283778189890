package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shoresquad/internal/domain"
	"shoresquad/internal/render"
	"shoresquad/internal/state"
)

// Renderer re-projects one view from the current state.
type Renderer interface {
	Render() error
}

// Config carries the pieces the squad service fans out to.
type Config struct {
	State        *state.State
	Map          *render.MapRenderer
	EventList    Renderer
	CrewList     Renderer
	Notifier     domain.Notifier
	Sharer       domain.Sharer
	BaseURL      string
	MapZoom      int
	Logger       *slog.Logger
	ShareTimeout time.Duration
}

// Squad implements domain.SquadService over the application state.
type Squad struct {
	state        *state.State
	mapRenderer  *render.MapRenderer
	eventList    Renderer
	crewList     Renderer
	notifier     domain.Notifier
	sharer       domain.Sharer
	baseURL      string
	mapZoom      int
	logger       *slog.Logger
	shareTimeout time.Duration
}

var _ domain.SquadService = (*Squad)(nil)

// NewSquadService wires the state to its renderers. Each mutation runs
// mutate, persist, re-render, notify in that order.
func NewSquadService(cfg Config) *Squad {
	if cfg.ShareTimeout <= 0 {
		cfg.ShareTimeout = 10 * time.Second
	}
	return &Squad{
		state:        cfg.State,
		mapRenderer:  cfg.Map,
		eventList:    cfg.EventList,
		crewList:     cfg.CrewList,
		notifier:     cfg.Notifier,
		sharer:       cfg.Sharer,
		baseURL:      cfg.BaseURL,
		mapZoom:      cfg.MapZoom,
		logger:       cfg.Logger,
		shareTimeout: cfg.ShareTimeout,
	}
}

// Start loads persisted state, builds the map and renders every view. The
// location request runs in the background and recenters the map when it
// resolves.
func (s *Squad) Start(ctx context.Context) {
	s.state.OnLocation(func(loc domain.Location) {
		s.mapRenderer.Recenter(loc)
	})
	s.state.Initialize(ctx)
	if !s.mapRenderer.Initialize(s.state.DefaultCenter(), s.mapZoom) {
		s.logger.InfoContext(ctx, "map container unavailable, map disabled")
	}
	s.renderEvents(ctx)
	s.renderCrews(ctx)
}

func (s *Squad) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	event, err := s.state.CreateEvent(ctx, input)
	if err != nil {
		return nil, err
	}
	s.renderEvents(ctx)
	s.notifier.Notify(fmt.Sprintf("Event \"%s\" created! 🎉", event.Name))
	return event, nil
}

func (s *Squad) JoinEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	event, joined, err := s.state.JoinEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if joined {
		s.renderEvents(ctx)
		s.notifier.Notify(fmt.Sprintf("You joined \"%s\"! 🎉", event.Name))
	}
	return event, nil
}

// ShareEvent hands the invitation to the native share capability when there
// is one; a failed share is only logged. Without one the user is told to
// share manually.
func (s *Squad) ShareEvent(ctx context.Context, eventID int64) error {
	event, err := s.state.Event(eventID)
	if err != nil {
		return err
	}
	if s.sharer == nil || !s.sharer.Available() {
		s.notifier.Notify("Share the event with your crew! 📱")
		return nil
	}
	msg := domain.ShareMessage{
		Title: "ShoreSquad: " + event.Name,
		Text:  fmt.Sprintf("Join me for a beach cleanup at %s! %s", event.Location, event.Date),
		URL:   s.baseURL,
		Event: event,
	}
	shareCtx, cancel := context.WithTimeout(ctx, s.shareTimeout)
	defer cancel()
	if err := s.sharer.Share(shareCtx, msg); err != nil {
		if errors.Is(err, domain.ErrShareUnsupported) {
			s.notifier.Notify("Share the event with your crew! 📱")
			return nil
		}
		s.logger.WarnContext(ctx, "share failed", "event_id", eventID, "err", err)
	}
	return nil
}

func (s *Squad) ListEvents(context.Context) []*domain.Event {
	return s.state.Events()
}

func (s *Squad) CreateCrew(ctx context.Context, input domain.CreateCrewInput) (*domain.Crew, error) {
	crew, err := s.state.CreateCrew(ctx, input)
	if err != nil {
		return nil, err
	}
	s.renderCrews(ctx)
	s.notifier.Notify(fmt.Sprintf("Crew \"%s\" created! 👥", crew.Name))
	return crew, nil
}

func (s *Squad) JoinCrew(ctx context.Context, crewID int64) (*domain.Crew, error) {
	crew, joined, err := s.state.JoinCrew(ctx, crewID)
	if err != nil {
		return nil, err
	}
	if joined {
		s.renderCrews(ctx)
		s.notifier.Notify(fmt.Sprintf("You joined \"%s\"! 🌊", crew.Name))
	}
	return crew, nil
}

func (s *Squad) ListCrews(context.Context) []*domain.Crew {
	return s.state.Crews()
}

func (s *Squad) Identity(context.Context) domain.Identity {
	id := domain.Identity{
		CurrentUser: s.state.CurrentUser(),
		Actor:       s.state.Actor(),
	}
	if crewID, ok := s.state.UserCrew(); ok {
		id.UserCrew = &crewID
	}
	if loc, ok := s.state.UserLocation(); ok {
		id.UserLocation = &loc
	}
	return id
}

// SetCurrentUser changes the session identity and re-renders the lists,
// whose joined state depends on it.
func (s *Squad) SetCurrentUser(ctx context.Context, name string) domain.Identity {
	s.state.SetCurrentUser(name)
	s.renderEvents(ctx)
	s.renderCrews(ctx)
	return s.Identity(ctx)
}

func (s *Squad) renderEvents(ctx context.Context) {
	if err := s.eventList.Render(); err != nil {
		s.logger.ErrorContext(ctx, "render events failed", "err", err)
	}
	s.mapRenderer.RenderMarkers()
	s.logger.DebugContext(ctx, "events rendered", "markers", s.mapRenderer.EventMarkerCount())
}

func (s *Squad) renderCrews(ctx context.Context) {
	if err := s.crewList.Render(); err != nil {
		s.logger.ErrorContext(ctx, "render crews failed", "err", err)
	}
}
