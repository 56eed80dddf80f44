package models

// TitleSummary holds the handful of title fields the service itself reads.
// Everything else in an upstream payload is passed through untouched.
type TitleSummary struct {
	ID             int64  `json:"id"`
	MediaType      string `json:"media_type,omitempty"`
	Title          string `json:"title,omitempty"`
	Name           string `json:"name,omitempty"`
	Overview       string `json:"overview,omitempty"`
	PosterPath     string `json:"poster_path,omitempty"`
	BackdropPath   string `json:"backdrop_path,omitempty"`
	ReleaseDate    string `json:"release_date,omitempty"`
	FirstAirDate   string `json:"first_air_date,omitempty"`
	Runtime        int    `json:"runtime,omitempty"`
	EpisodeRunTime []int  `json:"episode_run_time,omitempty"`
}

// IsTV reports whether the summary describes a TV show. Trending results carry
// media_type; detail payloads only have first_air_date.
func (t TitleSummary) IsTV() bool {
	return t.MediaType == "tv" || t.FirstAirDate != ""
}

// DisplayName returns the movie title or the show name.
func (t TitleSummary) DisplayName() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

// Date returns the release date for movies or the first air date for shows.
func (t TitleSummary) Date() string {
	if t.ReleaseDate != "" {
		return t.ReleaseDate
	}
	return t.FirstAirDate
}

// RuntimeMinutes returns the movie runtime or the first listed episode runtime.
func (t TitleSummary) RuntimeMinutes() int {
	if t.Runtime > 0 {
		return t.Runtime
	}
	for _, minutes := range t.EpisodeRunTime {
		if minutes > 0 {
			return minutes
		}
	}
	return 0
}
