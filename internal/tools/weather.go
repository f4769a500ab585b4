// In file: internal/tools/weather.go
package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const openWeatherMapURL = "https://api.openweathermap.org/data/2.5/weather"

// openWeatherMapPlaceholderKey is the sample value shipped in .env.example;
// treat it the same as no key at all.
const openWeatherMapPlaceholderKey = "your_openweathermap_api_key"

// WeatherProvider is the contract both the real and the simulated weather
// clients satisfy.
type WeatherProvider interface {
	CurrentWeather(location, unit string) (Result, error)
}

// RealWeatherClient queries OpenWeatherMap directly by place name. It holds
// its own configured HTTP client so a slow provider cannot hang a request.
type RealWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ WeatherProvider = (*RealWeatherClient)(nil)

// NewRealWeatherClient creates a weather client. An empty apiKey is allowed;
// the client then reports a MissingCredentials error per lookup so the
// dispatcher can fall back to simulated data.
func NewRealWeatherClient(apiKey string) *RealWeatherClient {
	return &RealWeatherClient{
		apiKey:  apiKey,
		baseURL: openWeatherMapURL,
		httpClient: &http.Client{
			Timeout: dataClientTimeout,
		},
	}
}

// openWeatherMapResponse is the subset of the provider payload we map into
// the normalized result shape.
type openWeatherMapResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility int `json:"visibility"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int `json:"timezone"`
	Message  string `json:"message"`
}

// CurrentWeather fetches live conditions for a place name and maps them
// into the normalized shape.
func (c *RealWeatherClient) CurrentWeather(location, unit string) (Result, error) {
	if c.apiKey == "" || c.apiKey == openWeatherMapPlaceholderKey {
		return nil, NewToolError(ErrMissingCredentials, "OpenWeatherMap API key not provided")
	}

	units := "metric"
	if unit == "fahrenheit" {
		units = "imperial"
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("units", units)
	params.Set("appid", c.apiKey)

	log.Debug().Str("location", location).Msg("querying OpenWeatherMap")
	resp, err := c.httpClient.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, NewToolError(ErrUpstreamFailure, "Error accessing weather API: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewToolError(ErrUpstreamFailure, "Error accessing weather API: %v", err)
	}

	var data openWeatherMapResponse
	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("Error code: %d", resp.StatusCode)
		if json.Unmarshal(body, &data) == nil && data.Message != "" {
			message = data.Message
		}
		return nil, NewToolError(ErrUpstreamFailure, "Could not retrieve weather data: %s", message)
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, NewToolError(ErrUpstreamFailure, "Could not retrieve weather data: %v", err)
	}
	if len(data.Weather) == 0 {
		return nil, NewToolError(ErrUpstreamFailure, "Could not retrieve weather data: empty conditions")
	}

	tempSymbol := "°C"
	speedUnit := "m/s"
	if unit == "fahrenheit" {
		tempSymbol = "°F"
		speedUnit = "mph"
	}

	sunrise := time.Unix(data.Sys.Sunrise, 0)
	sunset := time.Unix(data.Sys.Sunset, 0)

	return Result{
		"location":       fmt.Sprintf("%s, %s", data.Name, data.Sys.Country),
		"coordinates":    fmt.Sprintf("Lat: %g, Lon: %g", data.Coord.Lat, data.Coord.Lon),
		"temperature":    fmt.Sprintf("%d%s", int(math.Round(data.Main.Temp)), tempSymbol),
		"feels_like":     fmt.Sprintf("%d%s", int(math.Round(data.Main.FeelsLike)), tempSymbol),
		"condition":      data.Weather[0].Main,
		"description":    capitalize(data.Weather[0].Description),
		"icon_url":       fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", data.Weather[0].Icon),
		"humidity":       fmt.Sprintf("%d%%", data.Main.Humidity),
		"wind_speed":     fmt.Sprintf("%g %s", data.Wind.Speed, speedUnit),
		"wind_direction": windDirection(data.Wind.Deg),
		"pressure":       fmt.Sprintf("%d hPa", data.Main.Pressure),
		"visibility":     fmt.Sprintf("%g km", float64(data.Visibility)/1000),
		"sunrise":        sunrise.Format("15:04"),
		"sunset":         sunset.Format("15:04"),
		"timezone":       formatUTCOffset(float64(data.Timezone) / 3600),
		"unit":           unit,
		"timestamp":      Timestamp(),
		"data_source":    "OpenWeatherMap API (real-time data)",
	}, nil
}

// compassPoints is the fixed 16-point rose used for wind bucketing.
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// windDirection buckets degrees into the 16-point compass:
// round(deg / 22.5) mod 16.
func windDirection(degrees float64) string {
	index := int(math.Round(degrees/22.5)) % len(compassPoints)
	if index < 0 {
		index += len(compassPoints)
	}
	return compassPoints[index]
}

// formatUTCOffset renders an hour offset as "UTC+9" / "UTC-4" / "UTC+5.5".
func formatUTCOffset(hours float64) string {
	sign := ""
	if hours >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("UTC%s%s", sign, trimFloat(hours))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
