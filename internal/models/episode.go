package models

// EpisodeRef points at one episode of a show
type EpisodeRef struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// EpisodeNavigation is the previous/next pair around the current episode.
// Previous is nil on the first episode of the first season, Next on the last
// episode of the last season.
type EpisodeNavigation struct {
	Current  EpisodeRef  `json:"current"`
	Previous *EpisodeRef `json:"previous"`
	Next     *EpisodeRef `json:"next"`
}
