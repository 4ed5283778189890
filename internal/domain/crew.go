package domain

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// CrewTimeLayout is the createdAt format, matching a JavaScript ISO string.
const CrewTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Crew is a user-formed team with its own membership list.
// swagger:model Crew
type Crew struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"createdAt"`
}

// NewCrew returns a Crew whose only member is its creator.
func NewCrew(id int64, name, location, creator string, createdAt time.Time) *Crew {
	return &Crew{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Location:  strings.TrimSpace(location),
		Members:   []string{creator},
		CreatedAt: createdAt.UTC().Format(CrewTimeLayout),
	}
}

// HasMember reports whether name is already a member.
func (c *Crew) HasMember(name string) bool {
	return slices.Contains(c.Members, name)
}

// Initial is the upper-cased first letter of the crew name, used as its avatar.
func (c *Crew) Initial() string {
	r, _ := utf8.DecodeRuneInString(c.Name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (c *Crew) Clone() *Crew {
	cp := *c
	cp.Members = slices.Clone(c.Members)
	if cp.Members == nil {
		cp.Members = []string{}
	}
	return &cp
}

// CreateCrewInput carries the fields captured by the crew form.
type CreateCrewInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Validate implements the request validator.
func (in CreateCrewInput) Validate() []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}
