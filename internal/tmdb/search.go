package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/config"
)

// SearchQuery mirrors the query string of the search endpoint.
type SearchQuery struct {
	Query    string
	Page     int
	Type     string // "movie", "tv", or anything else for a combined search
	Year     int    // 0 means no year filter
	ExID     string // when set, Query is an identifier from that source
	Language string
}

// externalSources maps the short exid codes accepted by the search endpoint
// to TMDB's external_source names for /find.
var externalSources = map[string]string{
	"imdb": "imdb_id",
	"fb":   "facebook_id",
	"ig":   "instagram_id",
	"tvdb": "tvdb_id",
	"tt":   "tiktok_id",
	"x":    "twitter_id",
	"wd":   "wikidata_id",
	"yt":   "youtube_id",
}

// findSources is the set of external_source values /find accepts.
var findSources = func() map[string]bool {
	m := make(map[string]bool, len(externalSources))
	for _, source := range externalSources {
		m[source] = true
	}
	return m
}()

// Search runs a title search.
//
// Without an exid: type=movie uses /search/movie with TMDB's own year filter;
// type=tv uses /search/tv and, when a year is given, keeps only results whose
// first_air_date starts with it; anything else uses /search/multi.
//
// With an exid the query is treated as an identifier: "tmdb" resolves to the
// detail payload of that id (movie unless type=tv), the other codes go
// through /find with the matching external source.
func (c *client) Search(ctx context.Context, q SearchQuery) ([]byte, error) {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return nil, apperrors.NewInvalidParameterError("query", "", "is required")
	}
	if q.Year != 0 && (q.Year < 1800 || q.Year > 9999) {
		return nil, apperrors.NewInvalidParameterError("year", strconv.Itoa(q.Year), "must be a four digit year")
	}

	if q.ExID != "" {
		return c.searchByExternalID(ctx, q)
	}

	params, err := pageParams(q.Page)
	if err != nil {
		return nil, err
	}
	params.Set("query", q.Query)

	switch q.Type {
	case string(Movie):
		if q.Year != 0 {
			params.Set("year", strconv.Itoa(q.Year))
		}
		return c.get(ctx, "/search/movie", params, q.Language)
	case string(TV):
		body, err := c.get(ctx, "/search/tv", params, q.Language)
		if err != nil || q.Year == 0 {
			return body, err
		}
		return filterByFirstAirYear(body, q.Year)
	default:
		return c.get(ctx, "/search/multi", params, q.Language)
	}
}

func (c *client) searchByExternalID(ctx context.Context, q SearchQuery) ([]byte, error) {
	exid := strings.ToLower(strings.TrimSpace(q.ExID))

	if exid == "tmdb" {
		id, err := strconv.ParseInt(q.Query, 10, 64)
		if err != nil {
			return nil, apperrors.NewInvalidParameterError("query", q.Query, "must be a numeric TMDB id when exid=tmdb")
		}
		kind := Movie
		if q.Type == string(TV) {
			kind = TV
		}
		return c.Details(ctx, kind, id, q.Language)
	}

	source, ok := externalSources[exid]
	if !ok {
		return nil, apperrors.NewInvalidParameterError("exid", q.ExID, "unknown external id source")
	}
	return c.Find(ctx, q.Query, source, q.Language)
}

// Find looks a title or person up by an identifier from another service.
func (c *client) Find(ctx context.Context, externalID, source, language string) ([]byte, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, apperrors.NewInvalidParameterError("id", "", "is required")
	}
	if !findSources[source] {
		return nil, apperrors.NewInvalidParameterError("source", source, "unknown external source")
	}
	params := url.Values{"external_source": {source}}
	return c.get(ctx, "/find/"+url.PathEscape(externalID), params, language)
}

// filterByFirstAirYear drops entries of the "results" array whose
// first_air_date does not start with year. Every other field of the payload,
// including the upstream totals, is left as received.
func filterByFirstAirYear(body []byte, year int) ([]byte, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode tv search: %w", err)
	}

	var results []json.RawMessage
	if raw, ok := payload["results"]; ok {
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, fmt.Errorf("decode tv search results: %w", err)
		}
	}

	prefix := strconv.Itoa(year)
	kept := make([]json.RawMessage, 0, len(results))
	for _, raw := range results {
		var entry struct {
			FirstAirDate string `json:"first_air_date"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if strings.HasPrefix(entry.FirstAirDate, prefix) {
			kept = append(kept, raw)
		}
	}

	filtered, err := json.Marshal(kept)
	if err != nil {
		return nil, err
	}
	payload["results"] = filtered

	logger := config.GetLogger()
	logger.Debug().Int("year", year).Int("before", len(results)).Int("after", len(kept)).Msg("Filtered tv search by first air year")

	return json.Marshal(payload)
}
