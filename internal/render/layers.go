package render

import (
	"html/template"
	"sync"

	"shoresquad/internal/domain"
)

// MarkerID identifies a marker added to a MapBackend.
type MarkerID uint64

// TileLayer describes the base map tiles.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

// Icon is an image marker.
type Icon struct {
	URL    string `json:"url"`
	Size   [2]int `json:"size"`
	Anchor [2]int `json:"anchor"`
}

// CircleStyle is a vector circle marker.
type CircleStyle struct {
	Radius      int     `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

// Marker is one overlay element. Exactly one of Icon and Circle is set.
type Marker struct {
	ID       MarkerID        `json:"id"`
	Kind     string          `json:"kind"`
	Position domain.Location `json:"position"`
	Icon     *Icon           `json:"icon,omitempty"`
	Circle   *CircleStyle    `json:"circle,omitempty"`
	Popup    template.HTML   `json:"popup"`
}

// Marker kinds.
const (
	KindEvent = "event"
	KindUser  = "user"
)

// MapBackend is the rendering surface the map renderer drives.
type MapBackend interface {
	HasContainer() bool
	CreateView(center domain.Location, zoom int, tiles TileLayer)
	SetView(center domain.Location, zoom int)
	AddMarker(m Marker) MarkerID
	RemoveMarker(id MarkerID)
}

// LayerDocument is the serialized map state read by the browser map.
type LayerDocument struct {
	Ready   bool            `json:"ready"`
	Center  domain.Location `json:"center"`
	Zoom    int             `json:"zoom"`
	Tiles   TileLayer       `json:"tiles"`
	Markers []Marker        `json:"markers"`
}

// LayerSet is an in-process MapBackend. It keeps markers in insertion order
// and exposes them as a LayerDocument.
type LayerSet struct {
	mu        sync.RWMutex
	container bool
	ready     bool
	center    domain.Location
	zoom      int
	tiles     TileLayer
	nextID    MarkerID
	order     []MarkerID
	markers   map[MarkerID]Marker
}

// NewLayerSet returns a backend. Without a container the map is never built.
func NewLayerSet(hasContainer bool) *LayerSet {
	return &LayerSet{container: hasContainer, markers: make(map[MarkerID]Marker)}
}

func (l *LayerSet) HasContainer() bool {
	return l.container
}

func (l *LayerSet) CreateView(center domain.Location, zoom int, tiles TileLayer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ready = true
	l.center, l.zoom, l.tiles = center, zoom, tiles
}

func (l *LayerSet) SetView(center domain.Location, zoom int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.center, l.zoom = center, zoom
}

func (l *LayerSet) AddMarker(m Marker) MarkerID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	m.ID = l.nextID
	l.markers[m.ID] = m
	l.order = append(l.order, m.ID)
	return m.ID
}

func (l *LayerSet) RemoveMarker(id MarkerID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.markers[id]; !ok {
		return
	}
	delete(l.markers, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Document returns a snapshot of the layer state.
func (l *LayerSet) Document() LayerDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()
	doc := LayerDocument{
		Ready:   l.ready,
		Center:  l.center,
		Zoom:    l.zoom,
		Tiles:   l.tiles,
		Markers: make([]Marker, 0, len(l.order)),
	}
	for _, id := range l.order {
		doc.Markers = append(doc.Markers, l.markers[id])
	}
	return doc
}
