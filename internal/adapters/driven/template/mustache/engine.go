// Package mustache provides a template engine adapter using mustache
// templates.
package mustache

import (
	"fmt"

	cbmustache "github.com/cbroglie/mustache"

	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.TemplateEngine = (*Engine)(nil)

// Engine renders mustache templates. Variables missing from the context
// render as empty output rather than errors, so user templates degrade
// gracefully when optional values are absent.
type Engine struct{}

// NewEngine creates a new mustache template engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Render renders the template with the given context.
func (e *Engine) Render(template string, context map[string]any) (string, error) {
	out, err := cbmustache.Render(template, context)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}
