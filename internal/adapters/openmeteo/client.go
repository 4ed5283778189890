package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shoresquad/internal/domain"
)

// DefaultBaseURL is the Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

const currentFields = "temperature_2m,weather_code,wind_speed_10m"

type forecastResponse struct {
	Current *domain.CurrentWeather `json:"current"`
}

type openMeteoClient struct {
	client  *http.Client
	baseURL string
}

// NewClient returns a WeatherProvider that calls the Open-Meteo forecast API.
func NewClient(client *http.Client, baseURL string) domain.WeatherProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &openMeteoClient{client: client, baseURL: baseURL}
}

func (c *openMeteoClient) FetchCurrent(ctx context.Context, lat, lng float64) (*domain.CurrentWeather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("current", currentFields)
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo api returned status: %d", resp.StatusCode)
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if data.Current == nil {
		return nil, fmt.Errorf("open-meteo response has no current conditions")
	}
	return data.Current, nil
}
