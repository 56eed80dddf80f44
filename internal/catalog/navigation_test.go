package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/losingsanity/anyvod/internal/apperrors"
	"github.com/losingsanity/anyvod/internal/models"
)

func navigationFake() *fakeTMDB {
	return &fakeTMDB{bodies: map[string]string{
		"tv/1399":          `{"id":1399,"number_of_seasons":3}`,
		"tv/1399/season/1": `{"episodes":[{"episode_number":1},{"episode_number":2},{"episode_number":3}]}`,
		"tv/1399/season/2": `{"episodes":[{"episode_number":2},{"episode_number":1}]}`,
		"tv/1399/season/3": `{"episodes":[{"episode_number":1},{"episode_number":2}]}`,
	}}
}

func ref(season, episode int) *models.EpisodeRef {
	return &models.EpisodeRef{Season: season, Episode: episode}
}

func sameRef(a, b *models.EpisodeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestEpisodeNavigation(t *testing.T) {
	tests := []struct {
		name     string
		season   int
		episode  int
		previous *models.EpisodeRef
		next     *models.EpisodeRef
	}{
		{name: "first episode of the show", season: 1, episode: 1, previous: nil, next: ref(1, 2)},
		{name: "middle of a season", season: 1, episode: 2, previous: ref(1, 1), next: ref(1, 3)},
		{name: "last episode crosses forward", season: 1, episode: 3, previous: ref(1, 2), next: ref(2, 1)},
		{name: "first episode crosses back", season: 2, episode: 1, previous: ref(1, 3), next: ref(2, 2)},
		{name: "unsorted season list", season: 2, episode: 2, previous: ref(2, 1), next: ref(3, 1)},
		{name: "last episode of the show", season: 3, episode: 2, previous: ref(3, 1), next: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, err := NewService(navigationFake()).EpisodeNavigation(context.Background(), 1399, tt.season, tt.episode)
			if err != nil {
				t.Fatalf("EpisodeNavigation failed: %v", err)
			}
			if nav.Current != (models.EpisodeRef{Season: tt.season, Episode: tt.episode}) {
				t.Errorf("Unexpected current %+v", nav.Current)
			}
			if !sameRef(nav.Previous, tt.previous) {
				t.Errorf("Previous = %+v, want %+v", nav.Previous, tt.previous)
			}
			if !sameRef(nav.Next, tt.next) {
				t.Errorf("Next = %+v, want %+v", nav.Next, tt.next)
			}
		})
	}
}

func TestEpisodeNavigation_Errors(t *testing.T) {
	svc := NewService(navigationFake())
	ctx := context.Background()

	if _, err := svc.EpisodeNavigation(ctx, 1399, 0, 1); !errors.Is(err, &apperrors.ErrInvalidParameter{}) {
		t.Errorf("Expected invalid season, got %v", err)
	}
	if _, err := svc.EpisodeNavigation(ctx, 1399, 1, 0); !errors.Is(err, &apperrors.ErrInvalidParameter{}) {
		t.Errorf("Expected invalid episode, got %v", err)
	}
	if _, err := svc.EpisodeNavigation(ctx, 1399, 4, 1); !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected missing season, got %v", err)
	}
	if _, err := svc.EpisodeNavigation(ctx, 1399, 1, 9); !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected missing episode, got %v", err)
	}
	if _, err := svc.EpisodeNavigation(ctx, 42, 1, 1); !errors.Is(err, &apperrors.ErrUpstreamStatus{}) {
		t.Errorf("Expected upstream error for unknown show, got %v", err)
	}
}
