package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/tmdb"
)

// queryInt reads an optional integer query parameter. Absent or blank
// values return def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewInvalidParameterError(name, raw, "must be an integer")
	}
	return v, nil
}

// queryOptionalInt is queryInt for options where 0 and unset differ.
func queryOptionalInt(r *http.Request, name string) (*int, error) {
	if strings.TrimSpace(r.URL.Query().Get(name)) == "" {
		return nil, nil
	}
	v, err := queryInt(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// pathID reads a numeric path variable. The route regexp guarantees digits,
// so only overflow can fail here.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidParameterError(name, raw, "must be a positive integer")
	}
	return v, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewInvalidParameterError(name, raw, "must be an integer")
	}
	return v, nil
}

// listOptions reads the page and language query parameters.
func listOptions(r *http.Request) (tmdb.ListOptions, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return tmdb.ListOptions{}, err
	}
	return tmdb.ListOptions{Page: page, Language: r.URL.Query().Get("language")}, nil
}
