package services

import (
	"sort"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// OrderedHighlights returns the article's highlights in render order.
//
// Update-time ordering keeps the slice exactly as the remote returned
// it. Location ordering sorts file captures by their position in the
// source file; for web and other captures it decodes each highlight's
// position token, falling back to the file comparison whenever either
// side of a comparison cannot be decoded. The sort is stable, so ties
// keep their input order, and the input slice is never mutated.
func OrderedHighlights(
	article domain.Article,
	order domain.HighlightOrder,
	locator driven.HighlightLocator,
) []domain.Highlight {
	highlights := make([]domain.Highlight, len(article.Highlights))
	copy(highlights, article.Highlights)

	if order != domain.HighlightOrderLocation {
		return highlights
	}

	byFilePosition := func(a, b domain.Highlight) bool {
		return a.FilePosition < b.FilePosition
	}

	less := byFilePosition
	if article.PageKind != domain.PageKindFile && locator != nil {
		less = func(a, b domain.Highlight) bool {
			offsetA, errA := locator.Location(a.Patch)
			offsetB, errB := locator.Location(b.Patch)
			if errA != nil || errB != nil {
				return byFilePosition(a, b)
			}
			return offsetA < offsetB
		}
	}

	sort.SliceStable(highlights, func(i, j int) bool {
		return less(highlights[i], highlights[j])
	})
	return highlights
}
