// In file: internal/tools/timezone.go
package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	openCageURL   = "https://api.opencagedata.com/geocode/v1/json"
	timeZoneDBURL = "https://api.timezonedb.com/v2.1/get-time-zone"

	// openCagePlaceholderKey is the sample key from .env.example.
	openCagePlaceholderKey = "9e9a3a7c9e8a4c0e9a3a7c9e8a4c0e9a"
	// timeZoneDBPlaceholderKey is the sample key from .env.example.
	timeZoneDBPlaceholderKey = "your_timezonedb_api_key"
)

// RealTimeClient resolves a free-text location to coordinates through
// OpenCage, then asks TimeZoneDB for the zone at those coordinates.
//
// Failure policy: a missing API key is reported as a MissingCredentials
// error so the dispatcher can fall back; every other failure (geocode miss,
// non-2xx at either stage, transport error) degrades to the simulated
// result annotated with a diagnostic note, so the caller still gets an
// answer and can see why it is simulated.
type RealTimeClient struct {
	timeZoneDBKey string
	openCageKey   string
	geocodeURL    string
	timezoneURL   string
	httpClient    *http.Client
	sim           *SimTimeClient
}

var _ TimeProvider = (*RealTimeClient)(nil)

func NewRealTimeClient(timeZoneDBKey, openCageKey string, sim *SimTimeClient) *RealTimeClient {
	return &RealTimeClient{
		timeZoneDBKey: timeZoneDBKey,
		openCageKey:   openCageKey,
		geocodeURL:    openCageURL,
		timezoneURL:   timeZoneDBURL,
		httpClient: &http.Client{
			Timeout: dataClientTimeout,
		},
		sim: sim,
	}
}

type openCageResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
		Formatted string `json:"formatted"`
	} `json:"results"`
}

type timeZoneDBResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ZoneName     string `json:"zoneName"`
	Abbreviation string `json:"abbreviation"`
	GMTOffset    int    `json:"gmtOffset"`
	DST          string `json:"dst"`
	Timestamp    int64  `json:"timestamp"`
}

// CurrentTime runs the two-stage lookup and formats the zone-local time.
func (c *RealTimeClient) CurrentTime(location, format string) (Result, error) {
	if c.timeZoneDBKey == "" || c.timeZoneDBKey == timeZoneDBPlaceholderKey {
		return nil, NewToolError(ErrMissingCredentials, "TimeZoneDB API key not provided")
	}
	if c.openCageKey == "" || c.openCageKey == openCagePlaceholderKey {
		return nil, NewToolError(ErrMissingCredentials, "OpenCage API key not provided")
	}

	// Stage one: geocode the free-text location, first result only.
	geoParams := url.Values{}
	geoParams.Set("q", location)
	geoParams.Set("key", c.openCageKey)
	geoParams.Set("limit", "1")

	log.Debug().Str("location", location).Msg("geocoding via OpenCage")
	geoBody, status, err := c.get(c.geocodeURL + "?" + geoParams.Encode())
	if err != nil {
		return c.simulated(location, format, fmt.Sprintf("Error accessing geocoding API: %v", err))
	}
	if status != http.StatusOK {
		return c.simulated(location, format, fmt.Sprintf("Error getting coordinates: %d", status))
	}

	var geo openCageResponse
	if err := json.Unmarshal(geoBody, &geo); err != nil {
		return c.simulated(location, format, fmt.Sprintf("Error decoding geocoding response: %v", err))
	}
	if len(geo.Results) == 0 {
		return c.simulated(location, format, fmt.Sprintf("No geocoding results found for '%s'", location))
	}

	lat := geo.Results[0].Geometry.Lat
	lng := geo.Results[0].Geometry.Lng
	log.Debug().
		Str("location", location).
		Float64("lat", lat).
		Float64("lng", lng).
		Str("formatted", geo.Results[0].Formatted).
		Msg("geocoded location")

	// Stage two: timezone by coordinates.
	tzParams := url.Values{}
	tzParams.Set("key", c.timeZoneDBKey)
	tzParams.Set("format", "json")
	tzParams.Set("by", "position")
	tzParams.Set("lat", trimFloat(lat))
	tzParams.Set("lng", trimFloat(lng))

	tzBody, status, err := c.get(c.timezoneURL + "?" + tzParams.Encode())
	if err != nil {
		return c.simulated(location, format, fmt.Sprintf("Error accessing timezone API: %v", err))
	}
	if status != http.StatusOK {
		return c.simulated(location, format, fmt.Sprintf("Could not retrieve timezone data: %d", status))
	}

	var tz timeZoneDBResponse
	if err := json.Unmarshal(tzBody, &tz); err != nil {
		return c.simulated(location, format, fmt.Sprintf("Error decoding timezone response: %v", err))
	}
	if tz.Status != "OK" {
		message := tz.Message
		if message == "" {
			message = "Unknown error"
		}
		return c.simulated(location, format, fmt.Sprintf("TimeZoneDB API error: %s", message))
	}

	local := time.Unix(tz.Timestamp, 0).UTC()
	timeStr := local.Format("15:04")
	if format == "12h" {
		timeStr = local.Format("03:04 PM")
	}

	offsetHours := float64(tz.GMTOffset) / 3600
	sign := ""
	if offsetHours >= 0 {
		sign = "+"
	}

	dst := "No"
	if tz.DST == "1" {
		dst = "Yes"
	}

	return Result{
		"location":              location,
		"time":                  timeStr,
		"date":                  local.Format("Monday, January 02, 2006"),
		"timezone":              tz.ZoneName,
		"timezone_abbreviation": tz.Abbreviation,
		"gmt_offset":            fmt.Sprintf("GMT%s%s", sign, trimFloat(offsetHours)),
		"dst":                   dst,
		"format":                format,
	}, nil
}

// simulated degrades to the offset-table result, preserving the failure
// cause in a note.
func (c *RealTimeClient) simulated(location, format, note string) (Result, error) {
	log.Warn().Str("location", location).Str("note", note).Msg("falling back to simulated time data")
	res, _ := c.sim.CurrentTime(location, format)
	res["note"] = note + " (using simulated data as fallback)"
	return res, nil
}

func (c *RealTimeClient) get(rawURL string) ([]byte, int, error) {
	resp, err := c.httpClient.Get(rawURL)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
