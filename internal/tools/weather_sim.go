// In file: internal/tools/weather_sim.go
package tools

import (
	"fmt"
	"math"
)

// simWeatherEntry is one row of the canned conditions table.
type simWeatherEntry struct {
	Temp      float64
	Condition string
	Humidity  int
}

// simWeatherData covers a handful of well-known cities; anything else gets
// the default entry.
var simWeatherData = map[string]simWeatherEntry{
	"New York": {Temp: 22, Condition: "Partly Cloudy", Humidity: 65},
	"London":   {Temp: 18, Condition: "Rainy", Humidity: 80},
	"Tokyo":    {Temp: 26, Condition: "Sunny", Humidity: 70},
	"Sydney":   {Temp: 24, Condition: "Clear", Humidity: 60},
	"Paris":    {Temp: 20, Condition: "Cloudy", Humidity: 75},
}

var simWeatherDefault = simWeatherEntry{Temp: 23, Condition: "Sunny", Humidity: 68}

// SimWeatherClient serves canned weather data. It backs the get_weather
// tool and is the fallback when the real-time client has no API key.
type SimWeatherClient struct{}

var _ WeatherProvider = (*SimWeatherClient)(nil)

func NewSimWeatherClient() *SimWeatherClient {
	return &SimWeatherClient{}
}

// CurrentWeather looks the location up in the fixed table, converting
// Celsius to Fahrenheit on request. It never fails.
func (c *SimWeatherClient) CurrentWeather(location, unit string) (Result, error) {
	entry, ok := simWeatherData[location]
	if !ok {
		entry = simWeatherDefault
	}

	temp := entry.Temp
	symbol := "C"
	if unit == "fahrenheit" {
		temp = temp*9/5 + 32
		symbol = "F"
	}

	return Result{
		"location":    location,
		"temperature": fmt.Sprintf("%d°%s", int(math.Round(temp)), symbol),
		"condition":   entry.Condition,
		"humidity":    fmt.Sprintf("%d%%", entry.Humidity),
		"unit":        unit,
		"timestamp":   Timestamp(),
	}, nil
}
