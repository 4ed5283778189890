package domain

import (
	"slices"
	"strings"
	"time"
)

// EventDateLayout is the datetime-local format submitted by the event form.
const EventDateLayout = "2006-01-02T15:04"

// Event represents a beach-cleanup event.
// swagger:model Event
type Event struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	CrewSize    int      `json:"crewSize"`
	CreatedBy   string   `json:"createdBy"`
	Joined      []string `json:"joined"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
}

// NewEvent returns an Event built from input, attributed to createdBy and placed at loc.
// Joined starts empty, never nil.
func NewEvent(id int64, input CreateEventInput, createdBy string, loc Location) *Event {
	return &Event{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Date:        strings.TrimSpace(input.Date),
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		CrewSize:    input.CrewSize,
		CreatedBy:   createdBy,
		Joined:      []string{},
		Lat:         loc.Lat,
		Lng:         loc.Lng,
	}
}

// HasJoined reports whether name is already in the participant list.
func (e *Event) HasJoined(name string) bool {
	return slices.Contains(e.Joined, name)
}

// Time parses Date. The zero time and false are returned when it does not parse.
func (e *Event) Time() (time.Time, bool) {
	t, err := ParseEventDate(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (e *Event) Clone() *Event {
	c := *e
	c.Joined = slices.Clone(e.Joined)
	if c.Joined == nil {
		c.Joined = []string{}
	}
	return &c
}

// ParseEventDate accepts the form's datetime-local layout or RFC 3339.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(EventDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// CreateEventInput carries the fields captured by the event form.
type CreateEventInput struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	CrewSize    int    `json:"crewSize"`
}

// Validate implements the request validator. Returns error messages for required and format rules.
func (in CreateEventInput) Validate() []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		errs = append(errs, "date is required")
	} else if _, err := ParseEventDate(in.Date); err != nil {
		errs = append(errs, "date must be YYYY-MM-DDTHH:MM or RFC 3339")
	}
	if strings.TrimSpace(in.Location) == "" {
		errs = append(errs, "location is required")
	}
	if in.CrewSize < 1 {
		errs = append(errs, "crewSize must be a positive integer")
	}
	return errs
}
