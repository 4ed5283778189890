package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"

	"shoresquad/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// DisplayDateLayout formats event dates on cards.
const DisplayDateLayout = "Jan 2, 2006 15:04"

// CrewSource supplies crews and the identity used for the joined state.
type CrewSource interface {
	Crews() []*domain.Crew
	Actor() string
}

// ActorSource resolves the identity used for the joined state.
type ActorSource interface {
	Actor() string
}

type eventCard struct {
	ID          int64
	Name        string
	When        string
	Location    string
	CreatedBy   string
	Description string
	CrewSize    int
	JoinedCount int
	Joined      bool
}

type crewCard struct {
	ID          int64
	Initial     string
	Name        string
	Location    string
	MemberCount int
	Joined      bool
}

// WeatherCard is the view model of the weather widget.
type WeatherCard struct {
	Icon        string
	Label       string
	Temperature int
	WindSpeed   float64
}

// NewWeatherCard builds the widget view for w.
func NewWeatherCard(w *domain.CurrentWeather) *WeatherCard {
	return &WeatherCard{
		Icon:        domain.CodeToIcon(w.WeatherCode),
		Label:       domain.DescribeWeather(w.WeatherCode),
		Temperature: int(math.Round(w.Temperature)),
		WindSpeed:   w.WindSpeed,
	}
}

// EventListRenderer projects the event collection into a Region.
type EventListRenderer struct {
	source EventSource
	actor  ActorSource
	region *Region
}

func NewEventListRenderer(source EventSource, actor ActorSource, region *Region) *EventListRenderer {
	return &EventListRenderer{source: source, actor: actor, region: region}
}

// Render fully replaces the region content.
func (r *EventListRenderer) Render() error {
	actor := r.actor.Actor()
	events := r.source.Events()
	cards := make([]eventCard, 0, len(events))
	for _, e := range events {
		cards = append(cards, eventCard{
			ID:          e.ID,
			Name:        e.Name,
			When:        formatEventDate(e),
			Location:    e.Location,
			CreatedBy:   e.CreatedBy,
			Description: e.Description,
			CrewSize:    e.CrewSize,
			JoinedCount: len(e.Joined),
			Joined:      e.HasJoined(actor),
		})
	}
	html, err := execute("events", cards)
	if err != nil {
		return err
	}
	r.region.Replace(html)
	return nil
}

// CrewListRenderer projects the crew collection into a Region.
type CrewListRenderer struct {
	source CrewSource
	region *Region
}

func NewCrewListRenderer(source CrewSource, region *Region) *CrewListRenderer {
	return &CrewListRenderer{source: source, region: region}
}

// Render fully replaces the region content. Crews the current actor belongs
// to render as already joined.
func (r *CrewListRenderer) Render() error {
	actor := r.source.Actor()
	crews := r.source.Crews()
	cards := make([]crewCard, 0, len(crews))
	for _, c := range crews {
		cards = append(cards, crewCard{
			ID:          c.ID,
			Initial:     c.Initial(),
			Name:        c.Name,
			Location:    c.Location,
			MemberCount: len(c.Members),
			Joined:      c.HasMember(actor),
		})
	}
	html, err := execute("crews", cards)
	if err != nil {
		return err
	}
	r.region.Replace(html)
	return nil
}

// RenderWeather renders the widget; a nil card renders the unavailable state.
func RenderWeather(card *WeatherCard) (template.HTML, error) {
	return execute("weather", card)
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func formatEventDate(e *domain.Event) string {
	if t, ok := e.Time(); ok {
		return t.Format(DisplayDateLayout)
	}
	return e.Date
}
