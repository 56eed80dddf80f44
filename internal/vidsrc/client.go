// Package vidsrc talks to the embeddable player service: it renders iframe
// URLs and proxies the service's "latest additions" listings.
package vidsrc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/config"
	"github.com/losingsanity/anyvod/internal/models"
	"github.com/losingsanity/anyvod/internal/upstream"
)

const serviceName = "vidsrc"

// Client defines the operations offered on top of the player service
type Client interface {
	EmbedURL(req models.EmbedRequest) (string, error)
	LatestMovies(ctx context.Context, page int) ([]byte, error)
	LatestTVShows(ctx context.Context, page int) ([]byte, error)
}

type client struct {
	httpClient *http.Client
	scheme     string
	domain     string
}

// NewClient creates a player service client from configuration
func NewClient(cfg *config.Config) Client {
	return newClient(upstream.NewHTTPClient(cfg, serviceName), cfg.Vidsrc.Scheme, cfg.Vidsrc.EmbedDomain)
}

func newClient(httpClient *http.Client, scheme, domain string) *client {
	if scheme == "" {
		scheme = "https"
	}
	if domain == "" {
		domain = config.DefaultVidsrcDomain
	}
	return &client{httpClient: httpClient, scheme: scheme, domain: domain}
}

func (c *client) EmbedURL(req models.EmbedRequest) (string, error) {
	return BuildEmbedURL(c.scheme, c.domain, req)
}

// LatestMovies returns the raw JSON of the service's latest movies page.
func (c *client) LatestMovies(ctx context.Context, page int) ([]byte, error) {
	return c.latest(ctx, "movies", page)
}

// LatestTVShows returns the raw JSON of the service's latest shows page.
func (c *client) LatestTVShows(ctx context.Context, page int) ([]byte, error) {
	return c.latest(ctx, "tvshows", page)
}

func (c *client) latest(ctx context.Context, listing string, page int) ([]byte, error) {
	if page < 1 {
		return nil, apperrors.NewInvalidParameterError("page", strconv.Itoa(page), "must be at least 1")
	}

	logger := config.GetLogger()
	endpoint := fmt.Sprintf("%s://%s/%s/latest/page-%d.json", c.scheme, c.domain, listing, page)
	logger.Debug().Str("url", endpoint).Msg("Fetching latest listing")

	body, err := upstream.GetJSON(ctx, c.httpClient, serviceName, endpoint)
	if err != nil {
		return nil, fmt.Errorf("latest %s page %d: %w", listing, page, err)
	}
	return body, nil
}
