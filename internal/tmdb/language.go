package tmdb

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/losingsanity/anyvod/internal/apperrors"
)

// normalizeLanguage turns user supplied tags ("en", "pt_br", "fr-FR") into the
// ISO 639-1 + ISO 3166-1 form TMDB expects ("en-US", "pt-BR", "fr-FR").
// A tag without a region gets the most likely one. Empty input stays empty.
func normalizeLanguage(value string) (string, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", "-"))
	if value == "" {
		return "", nil
	}

	tag, err := language.Parse(value)
	if err != nil {
		return "", apperrors.NewInvalidParameterError("language", value, "must be a language tag such as en-US")
	}

	base, _ := tag.Base()
	region, confidence := tag.Region()
	if confidence == language.No {
		return base.String(), nil
	}
	return base.String() + "-" + region.String(), nil
}
