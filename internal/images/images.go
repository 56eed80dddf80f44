// Package images builds sized TMDB artwork URLs and responsive srcset strings.
package images

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/losingsanity/anyvod/internal/models"
)

// Kind is the artwork category; each one has its own size ladder.
type Kind string

const (
	Poster   Kind = "poster"
	Backdrop Kind = "backdrop"
	Profile  Kind = "profile"
	Still    Kind = "still"
)

// Size selects a rung on a Kind's ladder.
type Size string

const (
	Small    Size = "small"
	Medium   Size = "medium"
	Large    Size = "large"
	Original Size = "original"
)

// defaultWidth is used for srcset descriptors when a size token carries no digits.
const defaultWidth = 500

// ladder holds the TMDB size token for each Size, smallest first.
type ladder struct {
	small, medium, large string
}

var ladders = map[Kind]ladder{
	Poster:   {small: "w185", medium: "w342", large: "w500"},
	Backdrop: {small: "w300", medium: "w780", large: "w1280"},
	Profile:  {small: "w45", medium: "w185", large: "h632"},
	Still:    {small: "w185", medium: "w300", large: "w500"},
}

func (l ladder) token(size Size) string {
	switch size {
	case Small:
		return l.small
	case Large:
		return l.large
	case Original:
		return "original"
	default:
		return l.medium
	}
}

func ladderFor(kind Kind) ladder {
	if l, ok := ladders[kind]; ok {
		return l
	}
	return ladders[Poster]
}

// Builder renders image URLs against a TMDB image base such as
// "https://image.tmdb.org/t/p".
type Builder struct {
	baseURL string
}

func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the sized WebP URL for path, or "" when path is empty so the
// caller renders a placeholder. Unknown kinds fall back to poster and unknown
// sizes to medium.
func (b *Builder) URL(path string, kind Kind, size Size) string {
	if path == "" {
		return ""
	}
	return b.render(ladderFor(kind).token(size), path)
}

// SrcSet lists every non-original size of kind as "<url> <width>w", comma separated.
func (b *Builder) SrcSet(path string, kind Kind) string {
	if path == "" {
		return ""
	}
	l := ladderFor(kind)
	tokens := []string{l.small, l.medium, l.large}
	entries := make([]string, 0, len(tokens))
	for _, token := range tokens {
		entries = append(entries, fmt.Sprintf("%s %dw", b.render(token, path), tokenWidth(token)))
	}
	return strings.Join(entries, ", ")
}

// Resolve bundles URL and SrcSet; Placeholder is set when there is no artwork.
func (b *Builder) Resolve(path string, kind Kind, size Size) models.ImageSet {
	if path == "" {
		return models.ImageSet{Placeholder: true}
	}
	return models.ImageSet{
		URL:    b.URL(path, kind, size),
		SrcSet: b.SrcSet(path, kind),
	}
}

func (b *Builder) render(token, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + "/" + token + path + ".webp"
}

// tokenWidth extracts the pixel count from a size token ("w342" → 342, "h632" → 632).
func tokenWidth(token string) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, token)
	width, err := strconv.Atoi(digits)
	if err != nil || width == 0 {
		return defaultWidth
	}
	return width
}

// ParseKind maps a request value to a Kind; anything unknown is a poster.
func ParseKind(value string) Kind {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := ladders[kind]; ok {
		return kind
	}
	return Poster
}

// ParseSize maps a request value to a Size; anything unknown is medium.
func ParseSize(value string) Size {
	switch size := Size(strings.ToLower(strings.TrimSpace(value))); size {
	case Small, Medium, Large, Original:
		return size
	default:
		return Medium
	}
}
