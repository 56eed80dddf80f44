package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/config"
	"github.com/losingsanity/anyvod/internal/models"
	"github.com/losingsanity/anyvod/internal/tmdb"
	"github.com/losingsanity/anyvod/internal/vidsrc"
)

// fakeTMDB answers every call from bodies keyed by a short call description
// such as "details movie 550", or with the matching entry of errs.
type fakeTMDB struct {
	mu       sync.Mutex
	bodies   map[string]string
	errs     map[string]error
	calls    []string
	searches []tmdb.SearchQuery
	options  []tmdb.ListOptions
}

func (f *fakeTMDB) answer(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if err, ok := f.errs["*"]; ok {
		return nil, err
	}
	if body, ok := f.bodies[key]; ok {
		return []byte(body), nil
	}
	return nil, apperrors.NewUpstreamStatusError("tmdb", key, 404, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
}

func (f *fakeTMDB) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeTMDB) MovieList(_ context.Context, list string, opts tmdb.ListOptions) ([]byte, error) {
	f.mu.Lock()
	f.options = append(f.options, opts)
	f.mu.Unlock()
	return f.answer("movies " + list)
}

func (f *fakeTMDB) TVList(_ context.Context, list string, opts tmdb.ListOptions) ([]byte, error) {
	f.mu.Lock()
	f.options = append(f.options, opts)
	f.mu.Unlock()
	return f.answer("tvs " + list)
}

func (f *fakeTMDB) Details(_ context.Context, kind tmdb.MediaKind, id int64, _ string) ([]byte, error) {
	return f.answer(fmt.Sprintf("details %s %d", kind, id))
}

func (f *fakeTMDB) Similar(_ context.Context, kind tmdb.MediaKind, id int64, _ tmdb.ListOptions) ([]byte, error) {
	return f.answer(fmt.Sprintf("similar %s %d", kind, id))
}

func (f *fakeTMDB) Credits(_ context.Context, kind tmdb.MediaKind, id int64, _ string) ([]byte, error) {
	return f.answer(fmt.Sprintf("credits %s %d", kind, id))
}

func (f *fakeTMDB) Season(_ context.Context, tvID int64, season int, _ string) ([]byte, error) {
	return f.answer(fmt.Sprintf("season %d %d", tvID, season))
}

func (f *fakeTMDB) Person(_ context.Context, id int64, _ string) ([]byte, error) {
	return f.answer(fmt.Sprintf("person %d", id))
}

func (f *fakeTMDB) PersonCombinedCredits(_ context.Context, id int64, _ string) ([]byte, error) {
	return f.answer(fmt.Sprintf("person credits %d", id))
}

func (f *fakeTMDB) Trending(_ context.Context, media, window string, _ tmdb.ListOptions) ([]byte, error) {
	return f.answer(fmt.Sprintf("trending %s %s", media, window))
}

func (f *fakeTMDB) Genres(_ context.Context, kind tmdb.MediaKind, _ string) ([]byte, error) {
	return f.answer(fmt.Sprintf("genres %s", kind))
}

func (f *fakeTMDB) Configuration(context.Context) ([]byte, error) {
	return f.answer("configuration")
}

func (f *fakeTMDB) Find(_ context.Context, externalID, source, _ string) ([]byte, error) {
	return f.answer(fmt.Sprintf("find %s %s", externalID, source))
}

func (f *fakeTMDB) Search(_ context.Context, q tmdb.SearchQuery) ([]byte, error) {
	f.mu.Lock()
	f.searches = append(f.searches, q)
	f.mu.Unlock()
	return f.answer("search")
}

// fakeVidsrc builds real embed URLs and serves canned latest listings.
type fakeVidsrc struct {
	latest map[string]string
}

func (f *fakeVidsrc) EmbedURL(req models.EmbedRequest) (string, error) {
	return vidsrc.BuildEmbedURL("https", config.DefaultVidsrcDomain, req)
}

func (f *fakeVidsrc) LatestMovies(_ context.Context, page int) ([]byte, error) {
	return f.page("movies", page)
}

func (f *fakeVidsrc) LatestTVShows(_ context.Context, page int) ([]byte, error) {
	return f.page("tvshows", page)
}

func (f *fakeVidsrc) page(listing string, page int) ([]byte, error) {
	if body, ok := f.latest[fmt.Sprintf("%s %d", listing, page)]; ok {
		return []byte(body), nil
	}
	return nil, apperrors.NewUpstreamStatusError("vidsrc", listing, 404, "<html>not found</html>")
}
