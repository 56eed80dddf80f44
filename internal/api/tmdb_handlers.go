package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/images"
	"github.com/losingsanity/anyvod/internal/models"
	"github.com/losingsanity/anyvod/internal/schema"
	"github.com/losingsanity/anyvod/internal/tmdb"
)

// popular is the movie popularity list; the front-end home page uses it
// under this short path.
func (h *Handler) popular(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.tmdb.MovieList(r.Context(), "popular", opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheLists)
}

func (h *Handler) list(kind tmdb.MediaKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		list := mux.Vars(r)["list"]
		var body []byte
		if kind == tmdb.TV {
			body, err = h.tmdb.TVList(r.Context(), list, opts)
		} else {
			body, err = h.tmdb.MovieList(r.Context(), list, opts)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeRaw(w, body, cacheLists)
	}
}

func (h *Handler) details(kind tmdb.MediaKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		body, err := h.tmdb.Details(r.Context(), kind, id, r.URL.Query().Get("language"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeRaw(w, body, cacheDetails)
	}
}

func (h *Handler) similar(kind tmdb.MediaKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		opts, err := listOptions(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		body, err := h.tmdb.Similar(r.Context(), kind, id, opts)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeRaw(w, body, cacheDetails)
	}
}

func (h *Handler) credits(kind tmdb.MediaKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		body, err := h.tmdb.Credits(r.Context(), kind, id, r.URL.Query().Get("language"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeRaw(w, body, cacheDetails)
	}
}

// structuredData answers with the JSON-LD document for a title page. For
// shows, season and episode query parameters select an episode page.
func (h *Handler) structuredData(kind tmdb.MediaKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		season, err := queryOptionalInt(r, "season")
		if err != nil {
			writeError(w, r, err)
			return
		}
		episode, err := queryOptionalInt(r, "episode")
		if err != nil {
			writeError(w, r, err)
			return
		}

		body, err := h.tmdb.Details(r.Context(), kind, id, r.URL.Query().Get("language"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		var title models.TitleSummary
		if err := json.Unmarshal(body, &title); err != nil {
			writeError(w, r, fmt.Errorf("decode %s %d: %w", kind, id, err))
			return
		}
		if kind == tmdb.TV {
			title.MediaType = string(tmdb.TV)
		}

		thumbnail := h.images.URL(title.PosterPath, images.Poster, images.Large)
		if thumbnail == "" {
			thumbnail = h.images.URL(title.BackdropPath, images.Backdrop, images.Large)
		}

		embedReq := models.EmbedRequest{Kind: models.EmbedKind(kind), TMDBID: strconv.FormatInt(id, 10)}
		if kind == tmdb.TV {
			embedReq.Season, embedReq.Episode = season, episode
		}
		embedURL, err := h.vidsrc.EmbedURL(embedReq)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var seasonNumber, episodeNumber int
		if season != nil && episode != nil {
			seasonNumber, episodeNumber = *season, *episode
		}
		doc := schema.Build(schema.FromTitle(title, thumbnail, embedURL, seasonNumber, episodeNumber))
		if doc == nil {
			writeError(w, r, apperrors.NewNotFoundError("structured data", id))
			return
		}

		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheDetails))
		writeJSON(w, http.StatusOK, doc)
	}
}

func (h *Handler) season(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	season, err := pathInt(r, "season")
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.tmdb.Season(r.Context(), id, season, r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheDetails)
}

func (h *Handler) episodeNavigation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	season, err := pathInt(r, "season")
	if err != nil {
		writeError(w, r, err)
		return
	}
	episode, err := pathInt(r, "episode")
	if err != nil {
		writeError(w, r, err)
		return
	}

	nav, err := h.catalog.EpisodeNavigation(r.Context(), id, season, episode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheDetails))
	writeJSON(w, http.StatusOK, nav)
}

func (h *Handler) person(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.tmdb.Person(r.Context(), id, r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheDetails)
}

func (h *Handler) personCredits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.tmdb.PersonCombinedCredits(r.Context(), id, r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheDetails)
}

func (h *Handler) trending(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	vars := mux.Vars(r)
	body, err := h.tmdb.Trending(r.Context(), vars["media"], vars["window"], opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheLists)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	year, err := queryInt(r, "year", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := h.tmdb.Search(r.Context(), tmdb.SearchQuery{
		Query:    q.Get("query"),
		Page:     page,
		Type:     q.Get("type"),
		Year:     year,
		ExID:     q.Get("exid"),
		Language: q.Get("language"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheLists)
}

// find resolves an identifier from another service; source is a TMDB
// external_source name and defaults to imdb_id.
func (h *Handler) find(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "imdb_id"
	}
	body, err := h.tmdb.Find(r.Context(), mux.Vars(r)["id"], source, r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheDetails)
}

func (h *Handler) genres(w http.ResponseWriter, r *http.Request) {
	kind, err := tmdb.ParseMediaKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.tmdb.Genres(r.Context(), kind, r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheConfiguration)
}

func (h *Handler) imageBase(w http.ResponseWriter, r *http.Request) {
	body, err := h.tmdb.Configuration(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheConfiguration)
}

// imageSet sizes one artwork path: ?path=/abc.jpg&type=poster&size=large.
func (h *Handler) imageSet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	set := h.images.Resolve(q.Get("path"), images.ParseKind(q.Get("type")), images.ParseSize(q.Get("size")))
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheConfiguration))
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Home(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheLists))
	writeJSON(w, http.StatusOK, page)
}
