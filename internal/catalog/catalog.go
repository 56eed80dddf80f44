// Package catalog composes several metadata calls into the aggregate views
// the front-end needs in a single round trip.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sourcegraph/conc/pool"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/config"
	"github.com/losingsanity/anyvod/internal/metrics"
	"github.com/losingsanity/anyvod/internal/models"
	"github.com/losingsanity/anyvod/internal/tmdb"
)

// heroCandidates is how many of the top trending titles may become the hero.
const heroCandidates = 5

// Service builds the home page and episode navigation on top of a tmdb.Client.
type Service struct {
	tmdb tmdb.Client
	// pick returns a number in [0, n); replaced in tests
	pick func(n int) int
}

func NewService(client tmdb.Client) *Service {
	return &Service{tmdb: client, pick: rand.IntN}
}

type section struct {
	name  string
	fetch func(ctx context.Context) ([]byte, error)
	dest  *[]json.RawMessage
}

// Home fetches the trending titles, resolves a hero among the first few of
// them and loads the curated lists in parallel. A failing section is logged
// and left empty; only a missing API key fails the whole page since no
// section could succeed without it.
func (s *Service) Home(ctx context.Context) (*models.HomePage, error) {
	logger := config.GetLogger()
	page := &models.HomePage{}

	trending, err := s.tmdb.Trending(ctx, "all", "day", tmdb.ListOptions{})
	if errors.Is(err, &apperrors.ErrMissingAPIKey{}) {
		return nil, err
	}
	if err != nil {
		sectionFailed("trending", err)
	} else if page.Trending, err = results(trending); err != nil {
		sectionFailed("trending", err)
	}

	sections := []section{
		{name: "popular_movies", dest: &page.PopularMovies, fetch: s.movieList("popular")},
		{name: "popular_tv", dest: &page.PopularTV, fetch: s.tvList("popular")},
		{name: "top_rated_movies", dest: &page.TopRatedMovies, fetch: s.movieList("top_rated")},
		{name: "top_rated_tv", dest: &page.TopRatedTV, fetch: s.tvList("top_rated")},
		{name: "upcoming", dest: &page.Upcoming, fetch: s.movieList("upcoming")},
		{name: "now_playing", dest: &page.NowPlaying, fetch: s.movieList("now_playing")},
	}

	p := pool.New().WithMaxGoroutines(len(sections) + 1)

	if len(page.Trending) > 0 {
		candidates := min(heroCandidates, len(page.Trending))
		chosen := page.Trending[s.pick(candidates)]
		p.Go(func() {
			hero, err := s.hero(ctx, chosen)
			if err != nil {
				sectionFailed("hero", err)
				return
			}
			page.Hero = hero
		})
	}

	for _, sec := range sections {
		p.Go(func() {
			body, err := sec.fetch(ctx)
			if err == nil {
				*sec.dest, err = results(body)
			}
			if err != nil {
				sectionFailed(sec.name, err)
			}
		})
	}
	p.Wait()

	for _, list := range []*[]json.RawMessage{
		&page.Trending, &page.PopularMovies, &page.PopularTV, &page.TopRatedMovies,
		&page.TopRatedTV, &page.Upcoming, &page.NowPlaying,
	} {
		if *list == nil {
			*list = []json.RawMessage{}
		}
	}
	if page.Hero == nil {
		page.Hero = json.RawMessage("null")
	}

	logger.Debug().
		Bool("hero", string(page.Hero) != "null").
		Int("trending", len(page.Trending)).
		Msg("Home page assembled")

	return page, nil
}

func (s *Service) movieList(list string) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		return s.tmdb.MovieList(ctx, list, tmdb.ListOptions{})
	}
}

func (s *Service) tvList(list string) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		return s.tmdb.TVList(ctx, list, tmdb.ListOptions{})
	}
}

// hero loads the full detail payload of a trending entry and marks it with
// isTv so the client knows which player and detail route to link.
func (s *Service) hero(ctx context.Context, entry json.RawMessage) (json.RawMessage, error) {
	var summary models.TitleSummary
	if err := json.Unmarshal(entry, &summary); err != nil {
		return nil, fmt.Errorf("decode hero candidate: %w", err)
	}

	kind := tmdb.Movie
	if summary.IsTV() {
		kind = tmdb.TV
	}

	details, err := s.tmdb.Details(ctx, kind, summary.ID, "")
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(details, &fields); err != nil {
		return nil, fmt.Errorf("decode hero details: %w", err)
	}
	fields["isTv"] = json.RawMessage(fmt.Sprintf("%t", kind == tmdb.TV))
	return json.Marshal(fields)
}

// results extracts the "results" array of a paginated payload.
func results(body []byte) ([]json.RawMessage, error) {
	var payload struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return payload.Results, nil
}

func sectionFailed(name string, err error) {
	logger := config.GetLogger()
	metrics.HomeSectionFailuresTotal.WithLabelValues(name).Inc()
	logger.Warn().Err(err).Str("section", name).Msg("Home section failed, leaving it empty")
}
