package domain

import "context"

// CurrentWeather holds the current conditions returned by the forecast service.
type CurrentWeather struct {
	Temperature float64 `json:"temperature_2m"`
	WeatherCode int     `json:"weather_code"`
	WindSpeed   float64 `json:"wind_speed_10m"`
}

// WeatherProvider fetches current conditions for a coordinate pair.
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, lat, lng float64) (*CurrentWeather, error)
}

// DefaultWeatherIcon is shown for codes outside the WMO subset below.
const DefaultWeatherIcon = "🌤️"

// WMO weather interpretation codes.
var weatherIcons = map[int]string{
	0: "☀️", 1: "🌤️", 2: "⛅", 3: "☁️",
	45: "🌫️", 48: "🌫️",
	51: "🌧️", 53: "🌧️", 55: "🌧️",
	61: "🌧️", 63: "⛈️", 65: "⛈️",
	80: "🌧️", 81: "⛈️", 82: "⛈️",
	85: "🌨️", 86: "🌨️",
}

var weatherLabels = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Rime fog",
	51: "Light drizzle", 53: "Drizzle", 55: "Dense drizzle",
	61: "Light rain", 63: "Rain", 65: "Heavy rain",
	80: "Light showers", 81: "Showers", 82: "Violent showers",
	85: "Snow showers", 86: "Heavy snow showers",
}

// CodeToIcon maps a weather code to its display glyph.
func CodeToIcon(code int) string {
	if icon, ok := weatherIcons[code]; ok {
		return icon
	}
	return DefaultWeatherIcon
}

// DescribeWeather returns a short label for a weather code.
func DescribeWeather(code int) string {
	if label, ok := weatherLabels[code]; ok {
		return label
	}
	return "Variable"
}
