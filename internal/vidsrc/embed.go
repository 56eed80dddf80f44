package vidsrc

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/models"
)

// BuildEmbedURL renders the player iframe source for req on the embed domain.
//
// With a TMDB id (preferred) or an IMDb id the path form is used:
// /embed/{kind}/{id}, and for shows with both season and episode
// /embed/tv/{id}/{season}-{episode}. Without an id the options alone are
// sent as query parameters. Player options always travel in the query string.
func BuildEmbedURL(scheme, domain string, req models.EmbedRequest) (string, error) {
	if req.Kind != models.EmbedMovie && req.Kind != models.EmbedTV {
		return "", apperrors.NewInvalidParameterError("kind", string(req.Kind), "must be movie or tv")
	}
	if err := validateEmbedRequest(req); err != nil {
		return "", err
	}

	u := url.URL{
		Scheme: scheme,
		Host:   domain,
		Path:   "/embed/" + string(req.Kind),
	}

	if id := firstNonEmpty(req.TMDBID, req.IMDBID); id != "" {
		u.Path += "/" + id
		if req.Kind == models.EmbedTV && req.Season != nil && req.Episode != nil {
			u.Path += "/" + strconv.Itoa(*req.Season) + "-" + strconv.Itoa(*req.Episode)
		}
	}

	u.RawQuery = playerOptions(req).Encode()
	return u.String(), nil
}

func playerOptions(req models.EmbedRequest) url.Values {
	q := url.Values{}
	if req.DSLang != "" {
		q.Set("ds_lang", req.DSLang)
	}
	if req.SubURL != "" {
		q.Set("sub_url", req.SubURL)
	}
	if req.Autoplay != nil {
		q.Set("autoplay", strconv.Itoa(*req.Autoplay))
	}
	if req.Kind == models.EmbedTV && req.Autonext != nil {
		q.Set("autonext", strconv.Itoa(*req.Autonext))
	}
	return q
}

func validateEmbedRequest(req models.EmbedRequest) error {
	if req.TMDBID != "" && !isDigits(req.TMDBID) {
		return apperrors.NewInvalidParameterError("tmdb", req.TMDBID, "must be a numeric TMDB id")
	}
	if req.IMDBID != "" && !isIMDBID(req.IMDBID) {
		return apperrors.NewInvalidParameterError("imdb", req.IMDBID, "must look like tt1234567")
	}
	if req.Season != nil && *req.Season < 0 {
		return apperrors.NewInvalidParameterError("season", strconv.Itoa(*req.Season), "must not be negative")
	}
	if req.Episode != nil && *req.Episode < 1 {
		return apperrors.NewInvalidParameterError("episode", strconv.Itoa(*req.Episode), "must be at least 1")
	}
	if req.Autoplay != nil && *req.Autoplay != 0 && *req.Autoplay != 1 {
		return apperrors.NewInvalidParameterError("autoplay", strconv.Itoa(*req.Autoplay), "must be 0 or 1")
	}
	if req.Autonext != nil && *req.Autonext != 0 && *req.Autonext != 1 {
		return apperrors.NewInvalidParameterError("autonext", strconv.Itoa(*req.Autonext), "must be 0 or 1")
	}
	if req.SubURL != "" {
		if u, err := url.Parse(req.SubURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return apperrors.NewInvalidParameterError("sub_url", req.SubURL, "must be an http(s) URL")
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIMDBID(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, "tt") && isDigits(s[2:])
}
