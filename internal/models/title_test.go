package models

import "testing"

func TestTitleSummary_IsTV(t *testing.T) {
	tests := []struct {
		name    string
		summary TitleSummary
		want    bool
	}{
		{name: "trending tv", summary: TitleSummary{MediaType: "tv"}, want: true},
		{name: "trending movie", summary: TitleSummary{MediaType: "movie", ReleaseDate: "2024-01-01"}, want: false},
		{name: "detail payload of a show", summary: TitleSummary{FirstAirDate: "2008-01-20"}, want: true},
		{name: "empty", summary: TitleSummary{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.IsTV(); got != tt.want {
				t.Errorf("IsTV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTitleSummary_Accessors(t *testing.T) {
	movie := TitleSummary{Title: "Dune", ReleaseDate: "2021-09-15", Runtime: 155}
	if movie.DisplayName() != "Dune" || movie.Date() != "2021-09-15" || movie.RuntimeMinutes() != 155 {
		t.Errorf("Unexpected movie accessors: %q %q %d", movie.DisplayName(), movie.Date(), movie.RuntimeMinutes())
	}

	show := TitleSummary{Name: "Severance", FirstAirDate: "2022-02-17", EpisodeRunTime: []int{0, 55}}
	if show.DisplayName() != "Severance" || show.Date() != "2022-02-17" || show.RuntimeMinutes() != 55 {
		t.Errorf("Unexpected show accessors: %q %q %d", show.DisplayName(), show.Date(), show.RuntimeMinutes())
	}
}
