// In file: internal/tools/wikipedia.go
package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const wikipediaAPIURL = "https://en.wikipedia.org/w/api.php"

const (
	wikiMaxResults = 5
	wikiMaxRetries = 3
	wikiRetryDelay = 1 * time.Second
)

// ArticleSearcher is the contract the encyclopedia client satisfies.
type ArticleSearcher interface {
	Search(query string, limit int) (Result, error)
}

// WikipediaClient searches the public Wikipedia API (no key required) and
// fetches an intro summary per match. Network calls use a bounded retry
// with linearly increasing delay.
type WikipediaClient struct {
	baseURL    string
	httpClient *http.Client
	// sleep is injectable so tests do not wait out the retry delays.
	sleep func(time.Duration)
}

var _ ArticleSearcher = (*WikipediaClient)(nil)

func NewWikipediaClient() *WikipediaClient {
	return &WikipediaClient{
		baseURL: wikipediaAPIURL,
		httpClient: &http.Client{
			Timeout: dataClientTimeout,
		},
		sleep: time.Sleep,
	}
}

type wikiSearchResponse struct {
	Query struct {
		SearchInfo struct {
			Suggestion string `json:"suggestion"`
		} `json:"searchinfo"`
		Search []struct {
			Title     string `json:"title"`
			WordCount int    `json:"wordcount"`
			Timestamp string `json:"timestamp"`
		} `json:"search"`
	} `json:"query"`
}

type wikiContentResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	Extract     string `json:"extract"`
	FullURL     string `json:"fullurl"`
	Description string `json:"description"`
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
	Coordinates []struct {
		Lat   float64 `json:"lat"`
		Lon   float64 `json:"lon"`
		Globe string  `json:"globe"`
	} `json:"coordinates"`
	LangLinks []struct {
		Lang  string `json:"lang"`
		Title string `json:"*"`
	} `json:"langlinks"`
}

// Search queries for up to 5 matches and builds a summary per match. A
// zero-result search with a spelling suggestion is retried once with the
// suggested term.
func (c *WikipediaClient) Search(query string, limit int) (Result, error) {
	return c.search(query, limit, false)
}

func (c *WikipediaClient) search(query string, limit int, retried bool) (Result, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > wikiMaxResults {
		limit = wikiMaxResults
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprintf("%d", limit))
	params.Set("srprop", "snippet|titlesnippet|size|wordcount|timestamp|redirecttitle")
	params.Set("srinfo", "totalhits|suggestion")
	params.Set("srqiprofile", "classic_noboostlinks")
	params.Set("srwhat", "text")

	log.Info().Str("query", query).Msg("searching Wikipedia")
	body, err := c.getWithRetry(params)
	if err != nil {
		return nil, NewToolError(ErrUpstreamFailure, "Wikipedia search failed: %v", err)
	}

	var searchData wikiSearchResponse
	if err := json.Unmarshal(body, &searchData); err != nil {
		return nil, NewToolError(ErrUpstreamFailure, "Wikipedia search failed: %v", err)
	}

	matches := searchData.Query.Search
	if len(matches) == 0 {
		if suggestion := searchData.Query.SearchInfo.Suggestion; suggestion != "" && !retried {
			log.Info().Str("query", query).Str("suggestion", suggestion).Msg("retrying search with spelling suggestion")
			return c.search(suggestion, limit, true)
		}
		return Result{
			"query":         query,
			"results_count": 0,
			"message":       fmt.Sprintf("No Wikipedia articles found for '%s'", query),
			"results":       []Result{},
			"data_source":   "Wikipedia API (real-time data)",
			"timestamp":     Timestamp(),
		}, nil
	}

	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		page, err := c.fetchContent(match.Title)
		if err != nil {
			// One unreachable article should not fail the whole search.
			log.Error().Err(err).Str("title", match.Title).Msg("skipping article after failed content fetch")
			continue
		}

		entry := Result{
			"title":         match.Title,
			"extract":       page.Extract,
			"url":           page.FullURL,
			"word_count":    match.WordCount,
			"last_modified": match.Timestamp,
		}
		if entry["extract"] == "" {
			entry["extract"] = "No content available"
		}
		if entry["url"] == "" {
			entry["url"] = fmt.Sprintf("https://en.wikipedia.org/wiki/%s", strings.ReplaceAll(match.Title, " ", "_"))
		}
		if page.Description != "" {
			entry["description"] = page.Description
		}
		if page.Thumbnail != nil {
			entry["thumbnail"] = page.Thumbnail.Source
		}

		categories := make([]string, 0, wikiMaxResults)
		for _, cat := range page.Categories {
			if len(categories) == wikiMaxResults {
				break
			}
			if name, ok := strings.CutPrefix(cat.Title, "Category:"); ok {
				categories = append(categories, name)
			}
		}
		entry["categories"] = categories

		if len(page.Coordinates) > 0 {
			coord := page.Coordinates[0]
			globe := coord.Globe
			if globe == "" {
				globe = "earth"
			}
			entry["coordinates"] = Result{"lat": coord.Lat, "lon": coord.Lon, "globe": globe}
		}

		languageLinks := Result{}
		for _, lang := range page.LangLinks {
			if len(languageLinks) == wikiMaxResults {
				break
			}
			languageLinks[lang.Lang] = Result{
				"title": lang.Title,
				"url":   fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", lang.Lang, strings.ReplaceAll(lang.Title, " ", "_")),
			}
		}
		entry["language_links"] = languageLinks

		results = append(results, entry)
	}

	return Result{
		"query":         query,
		"results_count": len(results),
		"results":       results,
		"data_source":   "Wikipedia API (real-time data)",
		"timestamp":     Timestamp(),
	}, nil
}

// fetchContent retrieves the intro summary and metadata for one article.
func (c *WikipediaClient) fetchContent(title string) (*wikiPage, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts|info|pageimages|categories|coordinates|langlinks|description")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("inprop", "url|displaytitle")
	params.Set("pithumbsize", "500")
	params.Set("titles", title)
	params.Set("redirects", "1")
	params.Set("cllimit", "5")
	params.Set("lllimit", "5")
	params.Set("lllang", "fr|es|de|it|ja")

	body, err := c.getWithRetry(params)
	if err != nil {
		return nil, err
	}

	var contentData wikiContentResponse
	if err := json.Unmarshal(body, &contentData); err != nil {
		return nil, err
	}
	for _, page := range contentData.Query.Pages {
		return &page, nil
	}
	return nil, fmt.Errorf("no page returned for '%s'", title)
}

// getWithRetry performs a GET with up to 3 attempts; the wait between
// attempts grows linearly (1s, 2s).
func (c *WikipediaClient) getWithRetry(params url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= wikiMaxRetries; attempt++ {
		resp, err := c.httpClient.Get(c.baseURL + "?" + params.Encode())
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = readErr
			} else if resp.StatusCode == http.StatusOK {
				return body, nil
			} else {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
			}
		}
		if attempt < wikiMaxRetries {
			log.Warn().Err(lastErr).Int("attempt", attempt).Msg("Wikipedia request failed, retrying")
			c.sleep(wikiRetryDelay * time.Duration(attempt))
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", wikiMaxRetries, lastErr)
}
