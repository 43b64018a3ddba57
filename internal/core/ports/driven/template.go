package driven

// TemplateEngine renders user-editable templates.
// The template syntax is the engine's concern; core supplies a template
// string and a context of named values and treats the rest as opaque.
type TemplateEngine interface {
	// Render substitutes context values into the template.
	// Missing keys render as absent, not as errors: user templates may
	// reference values an article does not carry.
	Render(template string, context map[string]any) (string, error)
}
