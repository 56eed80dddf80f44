package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/losingsanity/anyvod/internal/apperrors"
)

const tvSearchBody = `{
	"page": 1,
	"total_results": 3,
	"total_pages": 1,
	"results": [
		{"id": 1, "name": "The Office", "first_air_date": "2005-03-24"},
		{"id": 2, "name": "The Office", "first_air_date": "2001-07-09"},
		{"id": 3, "name": "The Office", "first_air_date": ""}
	]
}`

func TestSearch_Movie(t *testing.T) {
	c, fake := newFakeClient(t, map[string]string{"/3/search/movie": `{"results":[]}`}, "key", "")

	if _, err := c.Search(context.Background(), SearchQuery{Query: " dune ", Type: "movie", Year: 2021, Page: 3}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	req := fake.Last(t)
	if req.Path != "/3/search/movie" {
		t.Errorf("Expected /search/movie, got %s", req.Path)
	}
	q := req.Query()
	if q.Get("query") != "dune" || q.Get("year") != "2021" || q.Get("page") != "3" {
		t.Errorf("Unexpected query parameters: %v", q)
	}
}

func TestSearch_TVFiltersByFirstAirYear(t *testing.T) {
	c, fake := newFakeClient(t, map[string]string{"/3/search/tv": tvSearchBody}, "key", "")

	body, err := c.Search(context.Background(), SearchQuery{Query: "the office", Type: "tv", Year: 2005})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if fake.Last(t).Query().Get("year") != "" {
		t.Error("Year must not be forwarded to /search/tv")
	}

	results := decodeResults(t, body)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result after filtering, got %d", len(results))
	}
	if results[0]["id"].(float64) != 1 {
		t.Errorf("Expected id 1 to survive, got %v", results[0]["id"])
	}

	var payload map[string]any
	_ = json.Unmarshal(body, &payload)
	if payload["total_results"].(float64) != 3 {
		t.Errorf("Expected upstream totals to be left untouched, got %v", payload["total_results"])
	}
}

func TestSearch_TVWithoutYearIsUntouched(t *testing.T) {
	c, _ := newFakeClient(t, map[string]string{"/3/search/tv": tvSearchBody}, "key", "")

	body, err := c.Search(context.Background(), SearchQuery{Query: "the office", Type: "tv"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if string(body) != tvSearchBody {
		t.Error("Expected the upstream body byte for byte")
	}
}

func TestSearch_MultiByDefault(t *testing.T) {
	c, fake := newFakeClient(t, map[string]string{"/3/search/multi": `{"results":[]}`}, "key", "")

	for _, typ := range []string{"", "person", "all"} {
		if _, err := c.Search(context.Background(), SearchQuery{Query: "nolan", Type: typ}); err != nil {
			t.Fatalf("Search with type %q failed: %v", typ, err)
		}
		if got := fake.Last(t).Path; got != "/3/search/multi" {
			t.Errorf("type %q: expected /search/multi, got %s", typ, got)
		}
	}
}

func TestSearch_ExternalIDs(t *testing.T) {
	bodies := map[string]string{
		"/3/find/tt0137523": `{"movie_results":[{"id":550}]}`,
		"/3/find/@netflix":  `{"tv_results":[]}`,
		"/3/movie/550":      `{"id":550}`,
		"/3/tv/1399":        `{"id":1399}`,
	}
	c, fake := newFakeClient(t, bodies, "key", "")

	tests := []struct {
		name   string
		query  SearchQuery
		path   string
		source string
	}{
		{name: "imdb", query: SearchQuery{Query: "tt0137523", ExID: "imdb"}, path: "/3/find/tt0137523", source: "imdb_id"},
		{name: "tiktok", query: SearchQuery{Query: "@netflix", ExID: "tt"}, path: "/3/find/@netflix", source: "tiktok_id"},
		{name: "tmdb movie", query: SearchQuery{Query: "550", ExID: "TMDB"}, path: "/3/movie/550"},
		{name: "tmdb tv", query: SearchQuery{Query: "1399", ExID: "tmdb", Type: "tv"}, path: "/3/tv/1399"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := c.Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			req := fake.Last(t)
			if req.Path != tt.path {
				t.Errorf("Expected path %s, got %s", tt.path, req.Path)
			}
			if got := req.Query().Get("external_source"); got != tt.source {
				t.Errorf("Expected external_source %q, got %q", tt.source, got)
			}
			if string(body) != bodies[tt.path] {
				t.Errorf("Unexpected body %s", body)
			}
		})
	}
}

func TestSearch_Invalid(t *testing.T) {
	c, fake := newFakeClient(t, map[string]string{}, "key", "")

	tests := []struct {
		name  string
		query SearchQuery
		param string
	}{
		{name: "empty query", query: SearchQuery{Query: "   "}, param: "query"},
		{name: "bad year", query: SearchQuery{Query: "x", Year: 99}, param: "year"},
		{name: "unknown exid", query: SearchQuery{Query: "x", ExID: "myspace"}, param: "exid"},
		{name: "non numeric tmdb id", query: SearchQuery{Query: "fight club", ExID: "tmdb"}, param: "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Search(context.Background(), tt.query)
			var paramErr *apperrors.ErrInvalidParameter
			if !errors.As(err, &paramErr) {
				t.Fatalf("Expected invalid parameter error, got %v", err)
			}
			if paramErr.Name != tt.param {
				t.Errorf("Expected parameter %q, got %q", tt.param, paramErr.Name)
			}
		})
	}

	if fake.Count() != 0 {
		t.Errorf("Invalid searches must not reach upstream, got %d calls", fake.Count())
	}
}

func TestFilterByFirstAirYear_InvalidJSON(t *testing.T) {
	if _, err := filterByFirstAirYear([]byte(`not json`), 2020); err == nil {
		t.Error("Expected decode error")
	}
}
