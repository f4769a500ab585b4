// In file: internal/tools/timezone_sim.go
package tools

import (
	"strings"
	"time"
)

// simTimeOffset is one row of the city/country table.
type simTimeOffset struct {
	Name   string
	Offset float64
}

// simTimeOffsets lists well-known cities and countries with their UTC
// offset in hours. The order matters: lookups scan top to bottom and the
// first match wins. Fractional offsets (India) are supported.
var simTimeOffsets = []simTimeOffset{
	// North America
	{"New York", -4},
	{"Los Angeles", -7},
	{"Chicago", -5},
	{"Toronto", -4},
	{"Mexico City", -6},
	{"USA", -5},
	{"Canada", -5},
	{"Mexico", -6},

	// Europe
	{"London", 1},
	{"Paris", 2},
	{"Berlin", 2},
	{"Rome", 2},
	{"Madrid", 2},
	{"Moscow", 3},
	{"UK", 1},
	{"France", 2},
	{"Germany", 2},
	{"Italy", 2},
	{"Spain", 2},
	{"Russia", 3},

	// Asia
	{"Tokyo", 9},
	{"Beijing", 8},
	{"Shanghai", 8},
	{"Mumbai", 5.5},
	{"Delhi", 5.5},
	{"Bangalore", 5.5},
	{"Kolkata", 5.5},
	{"Chennai", 5.5},
	{"Hyderabad", 5.5},
	{"Singapore", 8},
	{"Hong Kong", 8},
	{"Seoul", 9},
	{"Dubai", 4},
	{"Japan", 9},
	{"China", 8},
	{"India", 5.5},
	{"South Korea", 9},
	{"UAE", 4},

	// Oceania
	{"Sydney", 10},
	{"Melbourne", 10},
	{"Brisbane", 10},
	{"Perth", 8},
	{"Auckland", 12},
	{"Australia", 10},
	{"New Zealand", 12},

	// South America
	{"Sao Paulo", -3},
	{"Rio de Janeiro", -3},
	{"Buenos Aires", -3},
	{"Lima", -5},
	{"Bogota", -5},
	{"Brazil", -3},
	{"Argentina", -3},
	{"Peru", -5},
	{"Colombia", -5},

	// Africa
	{"Cairo", 2},
	{"Lagos", 1},
	{"Johannesburg", 2},
	{"Nairobi", 3},
	{"Cape Town", 2},
	{"Egypt", 2},
	{"Nigeria", 1},
	{"South Africa", 2},
	{"Kenya", 3},
}

// simTimezoneNames labels the offsets the table above can produce.
var simTimezoneNames = map[float64]string{
	-8:  "PST (Pacific Standard Time)",
	-7:  "PDT (Pacific Daylight Time)",
	-6:  "CST (Central Standard Time)",
	-5:  "EST (Eastern Standard Time)",
	-4:  "EDT (Eastern Daylight Time)",
	0:   "GMT (Greenwich Mean Time)",
	1:   "BST/CET (British Summer Time/Central European Time)",
	2:   "CEST (Central European Summer Time)",
	3:   "MSK (Moscow Standard Time)",
	4:   "GST (Gulf Standard Time)",
	5:   "PKT (Pakistan Standard Time)",
	5.5: "IST (Indian Standard Time)",
	8:   "CST/SGT (China Standard Time/Singapore Time)",
	9:   "JST (Japan Standard Time)",
	10:  "AEST (Australian Eastern Standard Time)",
	12:  "NZST (New Zealand Standard Time)",
}

// TimeProvider is the contract both the real and the simulated time
// clients satisfy.
type TimeProvider interface {
	CurrentTime(location, format string) (Result, error)
}

// SimTimeClient computes local time from a fixed offset table. It backs
// the get_current_time tool and is the fallback for get_real_time.
type SimTimeClient struct {
	// now is injectable so tests can pin the clock.
	now func() time.Time
}

var _ TimeProvider = (*SimTimeClient)(nil)

func NewSimTimeClient() *SimTimeClient {
	return &SimTimeClient{now: time.Now}
}

// lookupOffset tries an exact case-insensitive match first, then a
// bidirectional substring match, each in table order so an ambiguous
// location always resolves the same way. Unknown locations default to
// UTC+0.
func lookupOffset(location string) float64 {
	lower := strings.ToLower(location)
	for _, entry := range simTimeOffsets {
		if strings.ToLower(entry.Name) == lower {
			return entry.Offset
		}
	}
	for _, entry := range simTimeOffsets {
		name := strings.ToLower(entry.Name)
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			return entry.Offset
		}
	}
	return 0
}

// CurrentTime applies the location's offset to the current UTC time and
// formats it per the 12h/24h preference. It never fails.
func (c *SimTimeClient) CurrentTime(location, format string) (Result, error) {
	offset := lookupOffset(location)

	utc := c.now().UTC()
	local := utc.Add(time.Duration(offset * float64(time.Hour)))

	timeStr := local.Format("15:04")
	if format == "12h" {
		timeStr = local.Format("03:04 PM")
	}

	tzLabel := formatUTCOffset(offset)
	name, ok := simTimezoneNames[offset]
	if !ok {
		name = tzLabel
	}

	return Result{
		"location":      location,
		"time":          timeStr,
		"date":          local.Format("Monday, January 02, 2006"),
		"timezone":      tzLabel,
		"timezone_name": name,
		"format":        format,
	}, nil
}
