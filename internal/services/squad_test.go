package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoresquad/internal/domain"
	"shoresquad/internal/render"
	"shoresquad/internal/repository/memory"
	"shoresquad/internal/state"
)

var center = domain.Location{Lat: 1.3521, Lng: 103.8198}

// fakeNotifier records every message.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Notify(message string) {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
}

// fakeSharer records the last shared message.
type fakeSharer struct {
	available bool
	err       error
	got       *domain.ShareMessage
}

func (f *fakeSharer) Available() bool { return f.available }

func (f *fakeSharer) Share(_ context.Context, msg domain.ShareMessage) error {
	f.got = &msg
	return f.err
}

type fakeGeolocator struct {
	loc domain.Location
	err error
}

func (f *fakeGeolocator) Locate(context.Context) (domain.Location, error) {
	return f.loc, f.err
}

type fixture struct {
	squad    *Squad
	state    *state.State
	layers   *render.LayerSet
	events   *render.Region
	crews    *render.Region
	notifier *fakeNotifier
	sharer   *fakeSharer
}

func newFixture(t *testing.T, geo domain.Geolocator) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := state.New(state.Options{
		Store:         memory.NewStateStore(),
		Geolocator:    geo,
		Logger:        logger,
		DefaultCenter: center,
		Now:           func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
	f := &fixture{
		state:    st,
		layers:   render.NewLayerSet(true),
		events:   &render.Region{},
		crews:    &render.Region{},
		notifier: &fakeNotifier{},
		sharer:   &fakeSharer{},
	}
	f.squad = NewSquadService(Config{
		State:     st,
		Map:       render.NewMapRenderer(f.layers, st, render.DefaultTiles),
		EventList: render.NewEventListRenderer(st, st, f.events),
		CrewList:  render.NewCrewListRenderer(st, f.crews),
		Notifier:  f.notifier,
		Sharer:    f.sharer,
		BaseURL:   "http://localhost:8080/",
		MapZoom:   11,
		Logger:    logger,
	})
	return f
}

func eventMarkers(doc render.LayerDocument) int {
	n := 0
	for _, m := range doc.Markers {
		if m.Kind == render.KindEvent {
			n++
		}
	}
	return n
}

func TestSquad_StartRendersEmptyStates(t *testing.T) {
	f := newFixture(t, &fakeGeolocator{err: domain.ErrLocationUnavailable})
	f.squad.Start(context.Background())
	f.state.WaitLocated()

	assert.Contains(t, string(f.events.HTML()), "No cleanup events yet")
	assert.Contains(t, string(f.crews.HTML()), "Join or create a crew")
	doc := f.layers.Document()
	assert.True(t, doc.Ready)
	assert.Equal(t, center, doc.Center)
	assert.Empty(t, doc.Markers)
}

func TestSquad_StartRecentersOnLocation(t *testing.T) {
	user := domain.Location{Lat: 1.30, Lng: 103.90}
	f := newFixture(t, &fakeGeolocator{loc: user})
	f.squad.Start(context.Background())
	f.state.WaitLocated()

	doc := f.layers.Document()
	assert.Equal(t, user, doc.Center)
	users := 0
	for _, m := range doc.Markers {
		if m.Kind == render.KindUser {
			users++
		}
	}
	assert.Equal(t, 1, users)
}

func TestSquad_CreateEventFansOut(t *testing.T) {
	f := newFixture(t, nil)
	f.squad.Start(context.Background())

	event, err := f.squad.CreateEvent(context.Background(), domain.CreateEventInput{
		Name: "Sentosa Cleanup", Date: "2025-03-01T09:00", Location: "Sentosa Beach", CrewSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousUser, event.CreatedBy)

	assert.Contains(t, string(f.events.HTML()), "Sentosa Cleanup")
	assert.Equal(t, 1, eventMarkers(f.layers.Document()))
	assert.Equal(t, []string{`Event "Sentosa Cleanup" created! 🎉`}, f.notifier.messages)
}

func TestSquad_CreateEventInvalid(t *testing.T) {
	f := newFixture(t, nil)
	f.squad.Start(context.Background())

	_, err := f.squad.CreateEvent(context.Background(), domain.CreateEventInput{Name: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.notifier.messages)
	assert.Empty(t, f.squad.ListEvents(context.Background()))
}

func TestSquad_RenderEventsLogsMarkerCount(t *testing.T) {
	f := newFixture(t, nil)
	var logs bytes.Buffer
	f.squad.logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f.squad.Start(context.Background())

	for _, name := range []string{"Sentosa Cleanup", "Changi Sweep"} {
		_, err := f.squad.CreateEvent(context.Background(), domain.CreateEventInput{
			Name: name, Date: "2025-03-01T09:00", Location: "Beach", CrewSize: 5,
		})
		require.NoError(t, err)
	}
	assert.Contains(t, logs.String(), "markers=2")
	assert.Equal(t, 2, eventMarkers(f.layers.Document()))
}

func TestSquad_JoinEventTwiceNotifiesOnce(t *testing.T) {
	f := newFixture(t, nil)
	f.squad.Start(context.Background())
	event, err := f.squad.CreateEvent(context.Background(), domain.CreateEventInput{
		Name: "Sentosa Cleanup", Date: "2025-03-01T09:00", Location: "Sentosa Beach", CrewSize: 10,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := f.squad.JoinEvent(context.Background(), event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.AnonymousUser}, got.Joined)
	}
	assert.Equal(t, []string{
		`Event "Sentosa Cleanup" created! 🎉`,
		`You joined "Sentosa Cleanup"! 🎉`,
	}, f.notifier.messages)
	assert.Equal(t, 1, eventMarkers(f.layers.Document()))
	assert.Contains(t, string(f.events.HTML()), "Joined ✓")
}

func TestSquad_JoinEventNotFound(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.squad.JoinEvent(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSquad_CrewFlow(t *testing.T) {
	f := newFixture(t, nil)
	f.squad.Start(context.Background())
	f.squad.SetCurrentUser(context.Background(), "Ravi")

	crew, err := f.squad.CreateCrew(context.Background(), domain.CreateCrewInput{Name: "Tide Turners", Location: "East Coast"})
	require.NoError(t, err)
	assert.Contains(t, string(f.crews.HTML()), "Joined ✓")

	identity := f.squad.SetCurrentUser(context.Background(), "Ana")
	assert.Equal(t, "Ana", identity.Actor)
	require.NotNil(t, identity.UserCrew)
	assert.Equal(t, crew.ID, *identity.UserCrew)
	assert.Contains(t, string(f.crews.HTML()), "Join Crew")

	joined, err := f.squad.JoinCrew(context.Background(), crew.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ravi", "Ana"}, joined.Members)
	assert.Contains(t, string(f.crews.HTML()), "2 Members")
	assert.Equal(t, `You joined "Tide Turners"! 🌊`, f.notifier.messages[len(f.notifier.messages)-1])
}

func TestSquad_ShareEvent(t *testing.T) {
	tests := []struct {
		name       string
		available  bool
		shareErr   error
		wantNotify bool
		wantShared bool
	}{
		{name: "native share", available: true, wantShared: true},
		{name: "native share fails silently", available: true, shareErr: errors.New("smtp down"), wantShared: true},
		{name: "unsupported falls back to toast", available: false, wantNotify: true},
		{name: "unsupported at send time falls back to toast", available: true, shareErr: domain.ErrShareUnsupported, wantShared: true, wantNotify: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.sharer.available = tt.available
			f.sharer.err = tt.shareErr
			event, err := f.squad.CreateEvent(context.Background(), domain.CreateEventInput{
				Name: "Sentosa Cleanup", Date: "2025-03-01T09:00", Location: "Sentosa Beach", CrewSize: 10,
			})
			require.NoError(t, err)

			require.NoError(t, f.squad.ShareEvent(context.Background(), event.ID))

			if tt.wantShared {
				require.NotNil(t, f.sharer.got)
				assert.Equal(t, "ShoreSquad: Sentosa Cleanup", f.sharer.got.Title)
				assert.Equal(t, "Join me for a beach cleanup at Sentosa Beach! 2025-03-01T09:00", f.sharer.got.Text)
				assert.Equal(t, "http://localhost:8080/", f.sharer.got.URL)
			} else {
				assert.Nil(t, f.sharer.got)
			}
			last := f.notifier.messages[len(f.notifier.messages)-1]
			assert.Equal(t, tt.wantNotify, strings.HasPrefix(last, "Share the event"))
		})
	}
}

func TestSquad_ShareEventNotFound(t *testing.T) {
	f := newFixture(t, nil)
	require.ErrorIs(t, f.squad.ShareEvent(context.Background(), 99), domain.ErrNotFound)
}
