package driven

// HighlightLocator decodes the opaque positional token carried by web
// highlights into a start offset within the page text. The token
// format belongs to the remote; core never inspects it.
type HighlightLocator interface {
	// Location returns the start offset encoded in the token.
	// It returns an error when the token cannot be decoded.
	Location(patch string) (int, error)
}
