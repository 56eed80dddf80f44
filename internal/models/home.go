package models

import "encoding/json"

// HomePage aggregates the sections of the landing page. Each list is the
// upstream results array as-is; a section whose fetch failed is an empty list.
type HomePage struct {
	Hero           json.RawMessage   `json:"hero"`
	Trending       []json.RawMessage `json:"trending"`
	PopularMovies  []json.RawMessage `json:"popular_movies"`
	PopularTV      []json.RawMessage `json:"popular_tv"`
	TopRatedMovies []json.RawMessage `json:"top_rated_movies"`
	TopRatedTV     []json.RawMessage `json:"top_rated_tv"`
	Upcoming       []json.RawMessage `json:"upcoming"`
	NowPlaying     []json.RawMessage `json:"now_playing"`
}
