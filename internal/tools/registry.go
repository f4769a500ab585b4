// In file: internal/tools/registry.go
package tools

import "strings"

// Category identifiers used by the alias table.
const (
	CategoryWeather   = "weather"
	CategoryTime      = "time"
	CategoryProducts  = "products"
	CategoryWikipedia = "wikipedia"
)

// Canonical tool names.
const (
	ToolRealWeather    = "get_real_weather"
	ToolSimWeather     = "get_weather"
	ToolRealTime       = "get_real_time"
	ToolSimTime        = "get_current_time"
	ToolSearchProducts = "search_products"
	ToolSearchWiki     = "search_wikipedia"
)

// aliasEntry maps a category to the phrases models emit for it, the
// canonical tool to run, and the simulated fallback (empty when the
// category has none).
type aliasEntry struct {
	category  string
	aliases   []string
	canonical string
	fallback  string
}

// Registry holds the immutable tool catalog and the alias table. It is
// built once at startup and read-only afterwards.
type Registry struct {
	definitions []Tool
	aliases     []aliasEntry
}

// NewRegistry constructs the standard catalog of six tools. The weather
// and time categories are paired: the real-time variant is preferred and
// the simulated variant is its fallback.
func NewRegistry() *Registry {
	return &Registry{
		definitions: []Tool{
			NewFunctionTool(
				ToolRealWeather,
				"Get real-time weather data for a location using OpenWeatherMap API with current conditions, temperature, humidity, wind, and more",
				JSONSchema{
					Type: "object",
					Properties: map[string]*JSONSchema{
						"location": {
							Type:        "string",
							Description: "The city name, e.g. London, Tokyo, New York",
						},
						"unit": {
							Type:        "string",
							Enum:        []string{"celsius", "fahrenheit"},
							Description: "The unit of temperature to use. Infer this from the user's location.",
						},
					},
					Required: []string{"location"},
				},
			),
			NewFunctionTool(
				ToolRealTime,
				"Get accurate real-time data for a location using TimeZoneDB API with precise timezone information",
				JSONSchema{
					Type: "object",
					Properties: map[string]*JSONSchema{
						"location": {
							Type:        "string",
							Description: "The location to get the current time for, e.g. 'New York' or 'Tokyo'",
						},
						"format": {
							Type:        "string",
							Enum:        []string{"12h", "24h"},
							Description: "The time format to use (12-hour or 24-hour)",
						},
					},
					Required: []string{"location"},
				},
			),
			NewFunctionTool(
				ToolSimWeather,
				"Get simulated weather data (only use if real-time data is unavailable)",
				JSONSchema{
					Type: "object",
					Properties: map[string]*JSONSchema{
						"location": {
							Type:        "string",
							Description: "The city and state, e.g. San Francisco, CA",
						},
						"unit": {
							Type:        "string",
							Enum:        []string{"celsius", "fahrenheit"},
							Description: "The unit of temperature to use. Infer this from the user's location.",
						},
					},
					Required: []string{"location"},
				},
			),
			NewFunctionTool(
				ToolSimTime,
				"Get simulated time data (only use if real-time data is unavailable)",
				JSONSchema{
					Type: "object",
					Properties: map[string]*JSONSchema{
						"location": {
							Type:        "string",
							Description: "The location to get the current time for, e.g. 'New York' or 'Tokyo'",
						},
						"format": {
							Type:        "string",
							Enum:        []string{"12h", "24h"},
							Description: "The time format to use (12-hour or 24-hour)",
						},
					},
					Required: []string{"location"},
				},
			),
			NewFunctionTool(
				ToolSearchProducts,
				"Search for products in an e-commerce catalog",
				JSONSchema{
					Type: "object",
					Properties: map[string]*JSONSchema{
						"query": {
							Type:        "string",
							Description: "The search query for products",
						},
						"category": {
							Type:        "string",
							Description: "The category to filter by (optional)",
						},
						"max_price": {
							Type:        "number",
							Description: "The maximum price to filter by (optional)",
						},
						"sort_by": {
							Type:        "string",
							Enum:        []string{"price_asc", "price_desc", "popularity", "rating"},
							Description: "How to sort the results (optional)",
						},
					},
					Required: []string{"query"},
				},
			),
			NewFunctionTool(
				ToolSearchWiki,
				"Search Wikipedia for information on a topic",
				JSONSchema{
					Type: "object",
					Properties: map[string]*JSONSchema{
						"query": {
							Type:        "string",
							Description: "The search query or topic to look up on Wikipedia",
						},
						"limit": {
							Type:        "integer",
							Default:     1,
							Description: "Maximum number of results to return (default: 1)",
						},
					},
					Required: []string{"query"},
				},
			),
		},
		// The order of both the entries and the alias phrases is load
		// bearing: the first category whose alias appears in the raw name
		// wins, and later rules are unreachable once an earlier one matches.
		aliases: []aliasEntry{
			{
				category:  CategoryWeather,
				aliases:   []string{"weather", "get weather", "current weather", "get the current weather", "get_weather", "get_real_weather", "real weather", "real-time weather"},
				canonical: ToolRealWeather,
				fallback:  ToolSimWeather,
			},
			{
				category:  CategoryTime,
				aliases:   []string{"time", "current time", "get time", "get the current time", "get_current_time", "get_real_time", "accurate time", "real time"},
				canonical: ToolRealTime,
				fallback:  ToolSimTime,
			},
			{
				category:  CategoryProducts,
				aliases:   []string{"products", "search products", "search for products", "get products", "find products", "search_products"},
				canonical: ToolSearchProducts,
				fallback:  "",
			},
			{
				category:  CategoryWikipedia,
				aliases:   []string{"wikipedia search", "search wikipedia", "wiki search", "search wiki", "search_wikipedia", "lookup wikipedia", "find on wikipedia", "wikipedia article"},
				canonical: ToolSearchWiki,
				fallback:  "",
			},
		},
	}
}

// Definitions returns the catalog in stable order, ready to be serialized
// into a completion request's tools list.
func (r *Registry) Definitions() []Tool {
	defs := make([]Tool, len(r.definitions))
	copy(defs, r.definitions)
	return defs
}

// Resolution is the outcome of mapping a raw, possibly aliased tool name
// to a canonical operation.
type Resolution struct {
	Category  string
	Canonical string
	Fallback  string
}

// Resolve scans the alias table for the first category whose alias phrase
// is contained in rawName. The caller is expected to lowercase rawName.
func (r *Registry) Resolve(rawName string) (Resolution, bool) {
	for _, entry := range r.aliases {
		for _, alias := range entry.aliases {
			if strings.Contains(rawName, alias) {
				return Resolution{
					Category:  entry.category,
					Canonical: entry.canonical,
					Fallback:  entry.fallback,
				}, true
			}
		}
	}
	return Resolution{}, false
}

// ToolCount returns the number of registered tool definitions.
func (r *Registry) ToolCount() int {
	return len(r.definitions)
}
