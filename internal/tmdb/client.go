// Package tmdb forwards metadata queries to The Movie Database API and hands
// the JSON bodies back unchanged, apart from the documented search filters.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/config"
	"github.com/losingsanity/anyvod/internal/upstream"
)

const (
	serviceName = "tmdb"

	// maxPage is the last page TMDB serves for any paginated endpoint.
	maxPage = 500
)

// MediaKind selects the movie or TV flavour of an endpoint
type MediaKind string

const (
	Movie MediaKind = "movie"
	TV    MediaKind = "tv"
)

// ParseMediaKind validates a movie/tv path or query value.
func ParseMediaKind(value string) (MediaKind, error) {
	switch kind := MediaKind(strings.ToLower(value)); kind {
	case Movie, TV:
		return kind, nil
	default:
		return "", apperrors.NewInvalidParameterError("kind", value, "must be movie or tv")
	}
}

// ListOptions are the pagination and localisation knobs shared by list endpoints
type ListOptions struct {
	Page     int
	Language string
}

// Client defines the TMDB operations exposed by the service. Every method
// returns the upstream JSON body.
type Client interface {
	MovieList(ctx context.Context, list string, opts ListOptions) ([]byte, error)
	TVList(ctx context.Context, list string, opts ListOptions) ([]byte, error)
	Details(ctx context.Context, kind MediaKind, id int64, language string) ([]byte, error)
	Similar(ctx context.Context, kind MediaKind, id int64, opts ListOptions) ([]byte, error)
	Credits(ctx context.Context, kind MediaKind, id int64, language string) ([]byte, error)
	Season(ctx context.Context, tvID int64, season int, language string) ([]byte, error)
	Person(ctx context.Context, id int64, language string) ([]byte, error)
	PersonCombinedCredits(ctx context.Context, id int64, language string) ([]byte, error)
	Trending(ctx context.Context, media, window string, opts ListOptions) ([]byte, error)
	Genres(ctx context.Context, kind MediaKind, language string) ([]byte, error)
	Configuration(ctx context.Context) ([]byte, error)
	Find(ctx context.Context, externalID, source, language string) ([]byte, error)
	Search(ctx context.Context, q SearchQuery) ([]byte, error)
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
}

// NewClient creates a TMDB client from configuration. A missing API key is not
// an error here; calls fail with *apperrors.ErrMissingAPIKey instead, so the
// rest of the service keeps working.
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	language, err := normalizeLanguage(cfg.TMDB.Language)
	if err != nil {
		logger.Warn().Err(err).Str("language", cfg.TMDB.Language).Msg("Invalid default TMDB language, using upstream default")
		language = ""
	}
	if strings.TrimSpace(cfg.TMDB.APIKey) == "" {
		logger.Warn().Msg("TMDB API key is not configured, metadata endpoints will fail")
	}

	return newClient(upstream.NewHTTPClient(cfg, serviceName), cfg.TMDB.BaseURL, cfg.TMDB.APIKey, language)
}

func newClient(httpClient *http.Client, baseURL, apiKey, language string) *client {
	if baseURL == "" {
		baseURL = config.DefaultTMDBBaseURL
	}
	return &client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		language:   language,
	}
}

// get issues GET {baseURL}{path} with params plus the API key and language.
func (c *client) get(ctx context.Context, path string, params url.Values, language string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &apperrors.ErrMissingAPIKey{Variable: "TMDB_API_KEY"}
	}

	lang, err := normalizeLanguage(language)
	if err != nil {
		return nil, err
	}
	if lang == "" {
		lang = c.language
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if lang != "" {
		params.Set("language", lang)
	}

	logger := config.GetLogger()
	logger.Debug().Str("path", path).Str("language", lang).Msg("TMDB request")

	body, err := upstream.GetJSON(ctx, c.httpClient, serviceName, c.baseURL+path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("tmdb %s: %w", path, err)
	}
	return body, nil
}

func pageParams(page int) (url.Values, error) {
	if page == 0 {
		page = 1
	}
	if page < 1 || page > maxPage {
		return nil, apperrors.NewInvalidParameterError("page", strconv.Itoa(page), fmt.Sprintf("must be between 1 and %d", maxPage))
	}
	return url.Values{"page": {strconv.Itoa(page)}}, nil
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return apperrors.NewInvalidParameterError(name, strconv.FormatInt(id, 10), "must be a positive integer")
	}
	return nil
}
