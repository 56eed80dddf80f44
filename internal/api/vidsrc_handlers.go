package api

import (
	"net/http"

	"github.com/losingsanity/anyvod/internal/models"
	"github.com/losingsanity/anyvod/internal/tmdb"
)

// embed returns the player iframe URL. Movies ignore the episode options.
func (h *Handler) embed(kind tmdb.MediaKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := models.EmbedRequest{
			Kind:   models.EmbedKind(kind),
			TMDBID: q.Get("tmdb"),
			IMDBID: q.Get("imdb"),
			DSLang: q.Get("ds_lang"),
			SubURL: q.Get("sub_url"),
		}

		var err error
		if req.Autoplay, err = queryOptionalInt(r, "autoplay"); err != nil {
			writeError(w, r, err)
			return
		}
		if kind == tmdb.TV {
			if req.Season, err = queryOptionalInt(r, "season"); err != nil {
				writeError(w, r, err)
				return
			}
			if req.Episode, err = queryOptionalInt(r, "episode"); err != nil {
				writeError(w, r, err)
				return
			}
			if req.Autonext, err = queryOptionalInt(r, "autonext"); err != nil {
				writeError(w, r, err)
				return
			}
		}

		embedURL, err := h.vidsrc.EmbedURL(req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, models.EmbedResponse{EmbedURL: embedURL})
	}
}

func (h *Handler) latestMovies(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.vidsrc.LatestMovies(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheLatest)
}

func (h *Handler) latestTVShows(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.vidsrc.LatestTVShows(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRaw(w, body, cacheLatest)
}
