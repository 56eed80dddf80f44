// Package schema renders schema.org JSON-LD for title and episode pages so
// search engines can index them as video content.
package schema

import (
	"fmt"
	"time"

	"github.com/losingsanity/anyvod/internal/models"
)

const (
	contextURL = "https://schema.org"

	maxDescription = 200
)

// now is swapped in tests.
var now = time.Now

// Input describes the page a document is built for.
type Input struct {
	Type            string // "movie" or "tv"
	Name            string
	Description     string
	ThumbnailURL    string
	UploadDate      string // YYYY-MM-DD, today when empty
	DurationMinutes int
	ContentURL      string
	EmbedURL        string
	SeasonNumber    int
	EpisodeNumber   int
	SeriesName      string
}

type VideoObject struct {
	Context       string    `json:"@context"`
	Type          string    `json:"@type"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ThumbnailURL  string    `json:"thumbnailUrl"`
	UploadDate    string    `json:"uploadDate"`
	Duration      string    `json:"duration,omitempty"`
	ContentURL    string    `json:"contentUrl,omitempty"`
	EmbedURL      string    `json:"embedUrl,omitempty"`
	EpisodeNumber int       `json:"episodeNumber,omitempty"`
	PartOfSeason  *TVSeason `json:"partOfSeason,omitempty"`
}

type TVSeason struct {
	Type         string   `json:"@type"`
	SeasonNumber int      `json:"seasonNumber"`
	PartOfSeries TVSeries `json:"partOfSeries"`
}

type TVSeries struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Movie struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	DateCreated string `json:"dateCreated,omitempty"`
}

// Graph is the movie document: the video and the film it shows.
type Graph struct {
	Context string `json:"@context"`
	Graph   []any  `json:"@graph"`
}

// Build returns the JSON-LD document for in, or nil when name, description
// or thumbnail is missing. Movies get a Graph of VideoObject and Movie; a TV
// page with both season and episode numbers becomes a TVEpisode; any other
// TV page is a plain VideoObject.
func Build(in Input) any {
	if in.Name == "" || in.Description == "" || in.ThumbnailURL == "" {
		return nil
	}

	description := truncate(in.Description, maxDescription)
	video := &VideoObject{
		Context:      contextURL,
		Type:         "VideoObject",
		Name:         in.Name,
		Description:  description,
		ThumbnailURL: in.ThumbnailURL,
		UploadDate:   in.UploadDate,
		Duration:     Duration(in.DurationMinutes),
		ContentURL:   in.ContentURL,
		EmbedURL:     in.EmbedURL,
	}
	if video.UploadDate == "" {
		video.UploadDate = now().Format(time.DateOnly)
	}

	if in.Type == "tv" && in.SeasonNumber > 0 && in.EpisodeNumber > 0 {
		series := in.SeriesName
		if series == "" {
			series = in.Name
		}
		video.Type = "TVEpisode"
		video.EpisodeNumber = in.EpisodeNumber
		video.PartOfSeason = &TVSeason{
			Type:         "TVSeason",
			SeasonNumber: in.SeasonNumber,
			PartOfSeries: TVSeries{Type: "TVSeries", Name: series},
		}
	}

	if in.Type != "movie" {
		return video
	}
	return &Graph{
		Context: contextURL,
		Graph: []any{
			video,
			&Movie{
				Type:        "Movie",
				Name:        in.Name,
				Description: description,
				Image:       in.ThumbnailURL,
				DateCreated: in.UploadDate,
			},
		},
	}
}

// FromTitle fills an Input from a detail payload summary.
func FromTitle(title models.TitleSummary, thumbnailURL, embedURL string, season, episode int) Input {
	in := Input{
		Type:            "movie",
		Name:            title.DisplayName(),
		Description:     title.Overview,
		ThumbnailURL:    thumbnailURL,
		UploadDate:      title.Date(),
		DurationMinutes: title.RuntimeMinutes(),
		EmbedURL:        embedURL,
	}
	if title.IsTV() {
		in.Type = "tv"
		in.SeasonNumber = season
		in.EpisodeNumber = episode
		in.SeriesName = title.Name
	}
	return in
}

// Duration renders minutes as an ISO 8601 duration, PT1H30M or PT45M.
// Zero or negative minutes give "".
func Duration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if hours := minutes / 60; hours > 0 {
		return fmt.Sprintf("PT%dH%dM", hours, minutes%60)
	}
	return fmt.Sprintf("PT%dM", minutes)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
