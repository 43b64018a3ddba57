// Package patch decodes highlight location tokens.
//
// The remote encodes where a highlight sits inside rendered page
// content as a diff-match-patch token; the offset recovered from the
// token's first hunk is what location-ordered rendering sorts by.
package patch

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// Ensure Locator implements the interface.
var _ driven.HighlightLocator = (*Locator)(nil)

// Locator derives content offsets from diff-match-patch tokens.
type Locator struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewLocator creates a new highlight locator.
func NewLocator() *Locator {
	return &Locator{dmp: diffmatchpatch.New()}
}

// Location returns the offset encoded by the patch token. Tokens that
// are empty or fail to decode return an error; callers fall back to
// another ordering.
func (l *Locator) Location(patch string) (int, error) {
	patches, err := l.dmp.PatchFromText(patch)
	if err != nil {
		return 0, fmt.Errorf("decode patch: %w", err)
	}
	if len(patches) == 0 {
		return 0, fmt.Errorf("decode patch: empty token")
	}
	return patches[0].Start1, nil
}
