package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveActor(t *testing.T) {
	tests := map[string]string{
		"":        AnonymousUser,
		"   ":     AnonymousUser,
		"Ravi":    "Ravi",
		"  Mei  ": "Mei",
	}
	for in, want := range tests {
		assert.Equal(t, want, ResolveActor(in), "%q", in)
	}
}

func TestCodeToIcon(t *testing.T) {
	tests := []struct {
		code  int
		icon  string
		label string
	}{
		{0, "☀️", "Clear sky"},
		{2, "⛅", "Partly cloudy"},
		{45, "🌫️", "Fog"},
		{61, "🌧️", "Light rain"},
		{65, "⛈️", "Heavy rain"},
		{86, "🌨️", "Heavy snow showers"},
		{99, DefaultWeatherIcon, "Variable"},
		{-1, DefaultWeatherIcon, "Variable"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.icon, CodeToIcon(tt.code), "code %d", tt.code)
		assert.Equal(t, tt.label, DescribeWeather(tt.code), "code %d", tt.code)
	}
}

func TestCreateEventInput_Validate(t *testing.T) {
	valid := CreateEventInput{Name: "Sentosa Cleanup", Date: "2025-03-01T09:00", Location: "Sentosa Beach", CrewSize: 10}
	tests := []struct {
		name    string
		mutate  func(*CreateEventInput)
		wantErr string
	}{
		{name: "valid", mutate: func(*CreateEventInput) {}},
		{name: "rfc3339 date", mutate: func(in *CreateEventInput) { in.Date = "2025-03-01T09:00:00+08:00" }},
		{name: "blank name", mutate: func(in *CreateEventInput) { in.Name = "  " }, wantErr: "name is required"},
		{name: "missing date", mutate: func(in *CreateEventInput) { in.Date = "" }, wantErr: "date is required"},
		{name: "bad date", mutate: func(in *CreateEventInput) { in.Date = "next saturday" }, wantErr: "date must be"},
		{name: "missing location", mutate: func(in *CreateEventInput) { in.Location = "" }, wantErr: "location is required"},
		{name: "zero crew", mutate: func(in *CreateEventInput) { in.CrewSize = 0 }, wantErr: "crewSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			errs := in.Validate()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.wantErr)
		})
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(7, CreateEventInput{Name: " Sweep ", Date: "2025-03-01T09:00", Location: "Changi", CrewSize: 4}, "Mei", Location{Lat: 1.39, Lng: 103.99})

	assert.Equal(t, "Sweep", e.Name)
	assert.Equal(t, "Mei", e.CreatedBy)
	assert.Equal(t, []string{}, e.Joined)
	assert.False(t, e.HasJoined("Mei"), "creators are not auto-joined")
	ts, ok := e.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), ts)

	clone := e.Clone()
	clone.Joined = append(clone.Joined, "Ravi")
	assert.Empty(t, e.Joined)
}

func TestCrew(t *testing.T) {
	c := NewCrew(3, " tide turners ", "East Coast", "Ravi", time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("SGT", 8*3600)))

	assert.Equal(t, "tide turners", c.Name)
	assert.Equal(t, []string{"Ravi"}, c.Members)
	assert.Equal(t, "2025-03-01T01:00:00.000Z", c.CreatedAt)
	assert.True(t, c.HasMember("Ravi"))
	assert.Equal(t, "T", c.Initial())
	assert.Equal(t, "É", (&Crew{Name: "écume"}).Initial())
	assert.Equal(t, "", (&Crew{}).Initial())

	assert.Equal(t, []string{"name is required"}, CreateCrewInput{Location: "x"}.Validate())
	assert.Empty(t, CreateCrewInput{Name: "Sand Savers"}.Validate())
}

func TestSnapshotCodec(t *testing.T) {
	b, err := EncodeSnapshot(Snapshot{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"events":[],"crews":[]}`, string(b))

	s, err := DecodeSnapshot([]byte(`{"events":[null,{"id":1,"name":"A"}],"crews":[{"id":2,"name":"B"},null]}`))
	require.NoError(t, err)
	require.Len(t, s.Events, 1)
	require.Len(t, s.Crews, 1)
	assert.Equal(t, []string{}, s.Events[0].Joined)
	assert.Equal(t, []string{}, s.Crews[0].Members)

	s, err = DecodeSnapshot([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, s.Events)
	assert.Empty(t, s.Crews)

	s, err = DecodeSnapshot([]byte(`{"events":[{"id":5,"name":"A","joined":["Anonymous","Anonymous"]},{"id":5,"name":"B"}],"crews":[{"id":5,"members":["Ravi","Ravi","Mei"]}]}`))
	require.NoError(t, err)
	require.Len(t, s.Events, 1)
	assert.Equal(t, "A", s.Events[0].Name)
	assert.Equal(t, []string{"Anonymous"}, s.Events[0].Joined)
	require.Len(t, s.Crews, 1, "crew ids are checked separately from event ids")
	assert.Equal(t, []string{"Ravi", "Mei"}, s.Crews[0].Members)

	_, err = DecodeSnapshot([]byte(`{"events":`))
	assert.Error(t, err)
}
