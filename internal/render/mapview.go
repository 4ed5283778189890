package render

import (
	"fmt"
	"html/template"
	"sync"

	"shoresquad/internal/domain"
)

// DefaultTiles are the OpenStreetMap raster tiles.
var DefaultTiles = TileLayer{
	URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
	Attribution: "© OpenStreetMap contributors",
	MaxZoom:     19,
}

const eventPinSVG = `data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 24 24' fill='%23FF6B6B'><path d='M12 0C6.48 0 2 4.48 2 10c0 7 10 14 10 14s10-7 10-14c0-5.52-4.48-10-10-10zm0 15c-2.76 0-5-2.24-5-5s2.24-5 5-5 5 2.24 5 5-2.24 5-5 5z'/></svg>`

var eventIcon = Icon{URL: eventPinSVG, Size: [2]int{32, 32}, Anchor: [2]int{16, 32}}

var userCircle = CircleStyle{
	Radius:      8,
	FillColor:   "#1ECC7A",
	Color:       "#fff",
	Weight:      2,
	Opacity:     1,
	FillOpacity: 0.8,
}

const userPopup = template.HTML("📍 Your Location")

// EventSource supplies the events to project.
type EventSource interface {
	Events() []*domain.Event
}

// MapSource is what the map reads from the application state.
type MapSource interface {
	EventSource
	UserLocation() (domain.Location, bool)
}

// MapRenderer owns the single map viewport and the markers it has added.
type MapRenderer struct {
	mu      sync.Mutex
	backend MapBackend
	source  MapSource
	tiles   TileLayer
	zoom    int

	initialized  bool
	eventMarkers []MarkerID
	userMarker   bool
}

func NewMapRenderer(backend MapBackend, source MapSource, tiles TileLayer) *MapRenderer {
	return &MapRenderer{backend: backend, source: source, tiles: tiles}
}

// Initialize builds the viewport once. It returns false when there is no
// map container or the viewport already exists. A user location that is
// already known takes precedence over center.
func (m *MapRenderer) Initialize(center domain.Location, zoom int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized || !m.backend.HasContainer() {
		return false
	}
	loc, located := m.source.UserLocation()
	if located {
		center = loc
	}
	m.backend.CreateView(center, zoom, m.tiles)
	m.zoom = zoom
	m.initialized = true
	m.userMarker = false

	m.renderMarkersLocked()
	if located {
		m.addUserMarkerLocked(loc)
	}
	return true
}

// RenderMarkers replaces every event marker with one per current event.
// It is safe to call any number of times.
func (m *MapRenderer) RenderMarkers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	m.renderMarkersLocked()
}

func (m *MapRenderer) renderMarkersLocked() {
	for _, id := range m.eventMarkers {
		m.backend.RemoveMarker(id)
	}
	m.eventMarkers = m.eventMarkers[:0]

	for _, e := range m.source.Events() {
		id := m.backend.AddMarker(Marker{
			Kind:     KindEvent,
			Position: domain.Location{Lat: e.Lat, Lng: e.Lng},
			Icon:     &eventIcon,
			Popup:    eventPopup(e),
		})
		m.eventMarkers = append(m.eventMarkers, id)
	}
}

// Recenter moves the viewport to loc and shows the user marker.
// Without a viewport it does nothing.
func (m *MapRenderer) Recenter(loc domain.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	m.backend.SetView(loc, m.zoom)
	m.addUserMarkerLocked(loc)
}

// addUserMarkerLocked adds the user marker at most once per initialization.
func (m *MapRenderer) addUserMarkerLocked(loc domain.Location) {
	if m.userMarker {
		return
	}
	m.backend.AddMarker(Marker{
		Kind:     KindUser,
		Position: loc,
		Circle:   &userCircle,
		Popup:    userPopup,
	})
	m.userMarker = true
}

// EventMarkerCount reports how many event markers are tracked.
func (m *MapRenderer) EventMarkerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.eventMarkers)
}

func eventPopup(e *domain.Event) template.HTML {
	return template.HTML(fmt.Sprintf("<strong>%s</strong><br>%s<br><em>%s</em>",
		template.HTMLEscapeString(e.Name),
		template.HTMLEscapeString(e.Location),
		template.HTMLEscapeString(e.Date),
	))
}
