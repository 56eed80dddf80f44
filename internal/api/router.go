// Package api exposes the metadata and player services over HTTP as JSON.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/losingsanity/anyvod/internal/catalog"
	"github.com/losingsanity/anyvod/internal/config"
	"github.com/losingsanity/anyvod/internal/images"
	"github.com/losingsanity/anyvod/internal/tmdb"
	"github.com/losingsanity/anyvod/internal/vidsrc"
)

// Path variable constraints. Numeric ids are registered before the named
// lists so /tmdb/movie/550 and /tmdb/movie/popular never collide.
const (
	idPattern   = "{id:[0-9]+}"
	listPattern = "{list:[a-z_]+}"
)

// Handler serves every API route.
type Handler struct {
	tmdb    tmdb.Client
	vidsrc  vidsrc.Client
	catalog *catalog.Service
	images  *images.Builder
}

func NewHandler(tmdbClient tmdb.Client, vidsrcClient vidsrc.Client, imageBaseURL string) *Handler {
	if imageBaseURL == "" {
		imageBaseURL = config.DefaultTMDBImageBaseURL
	}
	return &Handler{
		tmdb:    tmdbClient,
		vidsrc:  vidsrcClient,
		catalog: catalog.NewService(tmdbClient),
		images:  images.NewBuilder(imageBaseURL),
	}
}

// NewRouter wires the routes and wraps them in the middleware chain:
// logging and metrics, panic recovery, CORS, then rate limiting.
// Routes carry their full path on the root router so a method mismatch
// answers 405 rather than falling through to 404.
func NewRouter(cfg *config.Config, h *Handler) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	get := func(path string, f http.HandlerFunc) {
		r.HandleFunc(path, f).Methods(http.MethodGet)
	}

	get("/", h.root)
	get("/health", h.health)

	get("/tmdb/popular", h.popular)
	get("/tmdb/home", h.home)
	get("/tmdb/search", h.search)
	get("/tmdb/image_base", h.imageBase)
	get("/tmdb/images", h.imageSet)
	get("/tmdb/find/{id}", h.find)
	get("/tmdb/genres/{kind}", h.genres)
	get("/tmdb/trending/{media}/{window}", h.trending)
	get("/tmdb/person/"+idPattern, h.person)
	get("/tmdb/person/"+idPattern+"/combined_credits", h.personCredits)

	for _, kind := range []tmdb.MediaKind{tmdb.Movie, tmdb.TV} {
		prefix := "/tmdb/" + string(kind) + "/"
		get(prefix+idPattern, h.details(kind))
		get(prefix+idPattern+"/similar", h.similar(kind))
		get(prefix+idPattern+"/credits", h.credits(kind))
		get(prefix+idPattern+"/schema", h.structuredData(kind))
		get(prefix+listPattern, h.list(kind))
	}
	get("/tmdb/tv/"+idPattern+"/season/{season:[0-9]+}", h.season)
	get("/tmdb/tv/"+idPattern+"/season/{season:[0-9]+}/episode/{episode:[0-9]+}/navigation", h.episodeNavigation)

	get("/vidsrc/embed/movie", h.embed(tmdb.Movie))
	get("/vidsrc/embed/tv", h.embed(tmdb.TV))
	get("/vidsrc/latest/movies", h.latestMovies)
	get("/vidsrc/latest/tvshows", h.latestTVShows)

	var handler http.Handler = r
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.MaxClients)
		limiter.TrustProxies(parseTrustedProxies(cfg.RateLimit.TrustedProxies))
		handler = limiter.Middleware(handler)
	}
	handler = newCORSPolicy(cfg).Middleware(handler)
	handler = recoverPanics(handler)
	return instrument(r, handler)
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the AnyVod API"})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusNotFound, "Not Found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
