package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shoresquad/internal/domain"
)

// DefaultLookupURL is an IP geolocation endpoint returning lat/lon JSON.
const DefaultLookupURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// lookupResponse accepts both the ip-api shape (lat/lon) and the
// latitude/longitude shape used by most other lookup services.
type lookupResponse struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type ipLocator struct {
	client *http.Client
	url    string
}

// NewIPLocator returns a Geolocator that resolves the host's public IP location.
func NewIPLocator(client *http.Client, url string) domain.Geolocator {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultLookupURL
	}
	return &ipLocator{client: client, url: url}
}

func (l *ipLocator) Locate(ctx context.Context) (domain.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return domain.Location{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Location{}, fmt.Errorf("%w: lookup returned status %d", domain.ErrLocationUnavailable, resp.StatusCode)
	}

	var data lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return domain.Location{}, fmt.Errorf("%w: decode lookup response: %v", domain.ErrLocationUnavailable, err)
	}
	if data.Status == "fail" {
		return domain.Location{}, fmt.Errorf("%w: %s", domain.ErrLocationUnavailable, data.Message)
	}
	switch {
	case data.Lat != nil && data.Lon != nil:
		return domain.Location{Lat: *data.Lat, Lng: *data.Lon}, nil
	case data.Latitude != nil && data.Longitude != nil:
		return domain.Location{Lat: *data.Latitude, Lng: *data.Longitude}, nil
	}
	return domain.Location{}, fmt.Errorf("%w: lookup response has no coordinates", domain.ErrLocationUnavailable)
}

type staticLocator struct {
	loc domain.Location
}

// NewStaticLocator always reports loc.
func NewStaticLocator(loc domain.Location) domain.Geolocator {
	return staticLocator{loc: loc}
}

func (s staticLocator) Locate(context.Context) (domain.Location, error) {
	return s.loc, nil
}

type deniedLocator struct{}

// NewDeniedLocator behaves like a user who refused location access.
func NewDeniedLocator() domain.Geolocator {
	return deniedLocator{}
}

func (deniedLocator) Locate(context.Context) (domain.Location, error) {
	return domain.Location{}, fmt.Errorf("%w: permission denied", domain.ErrLocationUnavailable)
}
