package models

// EmbedKind is the player page type on the embed service
type EmbedKind string

const (
	EmbedMovie EmbedKind = "movie"
	EmbedTV    EmbedKind = "tv"
)

// EmbedRequest carries the identifiers and player options for an embed URL.
// Optional numeric options are pointers so that 0 stays distinguishable from unset.
type EmbedRequest struct {
	Kind     EmbedKind
	TMDBID   string
	IMDBID   string
	Season   *int
	Episode  *int
	DSLang   string // Default subtitle language
	SubURL   string // External subtitle file URL
	Autoplay *int
	Autonext *int
}

// EmbedResponse is the JSON body returned by the embed endpoints
type EmbedResponse struct {
	EmbedURL string `json:"embed_url"`
}
