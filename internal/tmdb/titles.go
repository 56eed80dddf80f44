package tmdb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/losingsanity/anyvod/internal/apperrors"
)

var (
	movieLists = map[string]bool{"popular": true, "top_rated": true, "upcoming": true, "now_playing": true}
	tvLists    = map[string]bool{"popular": true, "top_rated": true, "on_the_air": true, "airing_today": true}

	trendingMedia   = map[string]bool{"all": true, "movie": true, "tv": true, "person": true}
	trendingWindows = map[string]bool{"day": true, "week": true}
)

// MovieList fetches /movie/{list}: popular, top_rated, upcoming or now_playing.
func (c *client) MovieList(ctx context.Context, list string, opts ListOptions) ([]byte, error) {
	if !movieLists[list] {
		return nil, apperrors.NewInvalidParameterError("list", list, "unknown movie list")
	}
	params, err := pageParams(opts.Page)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/movie/"+list, params, opts.Language)
}

// TVList fetches /tv/{list}: popular, top_rated, on_the_air or airing_today.
func (c *client) TVList(ctx context.Context, list string, opts ListOptions) ([]byte, error) {
	if !tvLists[list] {
		return nil, apperrors.NewInvalidParameterError("list", list, "unknown tv list")
	}
	params, err := pageParams(opts.Page)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "/tv/"+list, params, opts.Language)
}

func (c *client) Details(ctx context.Context, kind MediaKind, id int64, language string) ([]byte, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/%s/%d", kind, id), nil, language)
}

func (c *client) Similar(ctx context.Context, kind MediaKind, id int64, opts ListOptions) ([]byte, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	params, err := pageParams(opts.Page)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/%s/%d/similar", kind, id), params, opts.Language)
}

func (c *client) Credits(ctx context.Context, kind MediaKind, id int64, language string) ([]byte, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/%s/%d/credits", kind, id), nil, language)
}

func (c *client) Season(ctx context.Context, tvID int64, season int, language string) ([]byte, error) {
	if err := validateID("id", tvID); err != nil {
		return nil, err
	}
	if season < 0 {
		return nil, apperrors.NewInvalidParameterError("season", strconv.Itoa(season), "must not be negative")
	}
	return c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", tvID, season), nil, language)
}

func (c *client) Person(ctx context.Context, id int64, language string) ([]byte, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/person/%d", id), nil, language)
}

func (c *client) PersonCombinedCredits(ctx context.Context, id int64, language string) ([]byte, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/person/%d/combined_credits", id), nil, language)
}

// Trending fetches /trending/{media}/{window}.
func (c *client) Trending(ctx context.Context, media, window string, opts ListOptions) ([]byte, error) {
	if !trendingMedia[media] {
		return nil, apperrors.NewInvalidParameterError("media", media, "must be all, movie, tv or person")
	}
	if !trendingWindows[window] {
		return nil, apperrors.NewInvalidParameterError("window", window, "must be day or week")
	}
	params, err := pageParams(opts.Page)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, fmt.Sprintf("/trending/%s/%s", media, window), params, opts.Language)
}

// Genres fetches the official genre list for movies or shows.
func (c *client) Genres(ctx context.Context, kind MediaKind, language string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/genre/%s/list", kind), nil, language)
}

// Configuration returns the image base URLs and size tokens TMDB publishes.
func (c *client) Configuration(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/configuration", nil, "")
}
