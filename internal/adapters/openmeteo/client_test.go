package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCurrent(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		wantTemp float64
		wantCode int
		wantWind float64
	}{
		{
			name:     "success",
			status:   http.StatusOK,
			body:     `{"latitude":1.35,"current":{"time":"2025-03-01T09:00","temperature_2m":29.4,"weather_code":61,"wind_speed_10m":12.3}}`,
			wantTemp: 29.4,
			wantCode: 61,
			wantWind: 12.3,
		},
		{name: "non-200", status: http.StatusBadGateway, body: `{}`, wantErr: true},
		{name: "malformed json", status: http.StatusOK, body: `{"current":`, wantErr: true},
		{name: "missing current", status: http.StatusOK, body: `{"latitude":1.35}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				gotQuery = map[string]string{
					"latitude":  q.Get("latitude"),
					"longitude": q.Get("longitude"),
					"current":   q.Get("current"),
					"timezone":  q.Get("timezone"),
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.Client(), srv.URL)
			got, err := client.FetchCurrent(context.Background(), 1.3521, 103.8198)

			require.Equal(t, "1.3521", gotQuery["latitude"])
			require.Equal(t, "103.8198", gotQuery["longitude"])
			require.Equal(t, "temperature_2m,weather_code,wind_speed_10m", gotQuery["current"])
			require.Equal(t, "auto", gotQuery["timezone"])

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemp, got.Temperature)
			assert.Equal(t, tt.wantCode, got.WeatherCode)
			assert.Equal(t, tt.wantWind, got.WindSpeed)
		})
	}
}

func TestFetchCurrent_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(nil, url)
	_, err := client.FetchCurrent(context.Background(), 0, 0)
	require.Error(t, err)
}
