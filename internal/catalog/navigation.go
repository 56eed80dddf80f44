package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/models"
	"github.com/losingsanity/anyvod/internal/tmdb"
)

// EpisodeNavigation returns the episodes before and after season/episode of
// show tvID. Moving past the last episode of a season lands on episode 1 of
// the next one; moving before the first lands on the last episode of the
// previous season. Seasons are walked from 1 to number_of_seasons, so
// specials (season 0) are never reached.
func (s *Service) EpisodeNavigation(ctx context.Context, tvID int64, season, episode int) (*models.EpisodeNavigation, error) {
	if season < 1 {
		return nil, apperrors.NewInvalidParameterError("season", strconv.Itoa(season), "must be at least 1")
	}
	if episode < 1 {
		return nil, apperrors.NewInvalidParameterError("episode", strconv.Itoa(episode), "must be at least 1")
	}

	details, err := s.tmdb.Details(ctx, tmdb.TV, tvID, "")
	if err != nil {
		return nil, err
	}
	var show struct {
		NumberOfSeasons int `json:"number_of_seasons"`
	}
	if err := json.Unmarshal(details, &show); err != nil {
		return nil, fmt.Errorf("decode show %d: %w", tvID, err)
	}
	if season > show.NumberOfSeasons {
		return nil, apperrors.NewNotFoundError("season", fmt.Sprintf("%d/%d", tvID, season))
	}

	episodes, err := s.episodeNumbers(ctx, tvID, season)
	if err != nil {
		return nil, err
	}
	idx := slices.Index(episodes, episode)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("episode", fmt.Sprintf("%d/%d/%d", tvID, season, episode))
	}

	nav := &models.EpisodeNavigation{Current: models.EpisodeRef{Season: season, Episode: episode}}

	switch {
	case idx > 0:
		nav.Previous = &models.EpisodeRef{Season: season, Episode: episodes[idx-1]}
	case season > 1:
		previous, err := s.episodeNumbers(ctx, tvID, season-1)
		if err != nil {
			return nil, err
		}
		if len(previous) > 0 {
			nav.Previous = &models.EpisodeRef{Season: season - 1, Episode: previous[len(previous)-1]}
		}
	}

	switch {
	case idx < len(episodes)-1:
		nav.Next = &models.EpisodeRef{Season: season, Episode: episodes[idx+1]}
	case season < show.NumberOfSeasons:
		nav.Next = &models.EpisodeRef{Season: season + 1, Episode: 1}
	}

	return nav, nil
}

// episodeNumbers lists the episode numbers of one season in ascending order.
func (s *Service) episodeNumbers(ctx context.Context, tvID int64, season int) ([]int, error) {
	body, err := s.tmdb.Season(ctx, tvID, season, "")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Episodes []struct {
			EpisodeNumber int `json:"episode_number"`
		} `json:"episodes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode season %d of show %d: %w", season, tvID, err)
	}

	numbers := make([]int, 0, len(payload.Episodes))
	for _, ep := range payload.Episodes {
		numbers = append(numbers, ep.EpisodeNumber)
	}
	slices.Sort(numbers)
	return numbers, nil
}
