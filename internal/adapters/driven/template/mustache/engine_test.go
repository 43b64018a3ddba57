package mustache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

func TestEngine_Render_Variable(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("hello {{{name}}}", map[string]any{"name": "world"})

	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestEngine_Render_TripleBracesDoNotEscape(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("{{{url}}}", map[string]any{"url": "https://example.com?a=1&b=2"})

	require.NoError(t, err)
	assert.Equal(t, "https://example.com?a=1&b=2", out)
}

func TestEngine_Render_MissingKeyRendersEmpty(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("before {{{missing}}} after", map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "before  after", out)
}

func TestEngine_Render_SectionWithList(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("{{#labels}}#{{{name}}} {{/labels}}", map[string]any{
		"labels": []map[string]string{
			{"name": "go"},
			{"name": "sync"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "#go #sync ", out)
}

func TestEngine_Render_SectionAbsentKeyRendersNothing(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("a{{#author}}: {{{author}}}{{/author}}b", map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestEngine_Render_SectionWithValue(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("{{#author}}by {{{author}}}{{/author}}", map[string]any{
		"author": "Jane Doe",
	})

	require.NoError(t, err)
	assert.Equal(t, "by Jane Doe", out)
}

func TestEngine_Render_InvertedSection(t *testing.T) {
	engine := NewEngine()

	out, err := engine.Render("{{^note}}no note{{/note}}", map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "no note", out)
}

func TestEngine_Render_MalformedTemplate(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Render("{{#unclosed}}", map[string]any{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "render template")
}

// TestEngine_Render_DefaultArticleTemplate exercises the shipped article
// template against a realistic context.
func TestEngine_Render_DefaultArticleTemplate(t *testing.T) {
	engine := NewEngine()
	context := map[string]any{
		"title":       "Deep Dive into Goroutines",
		"omnivoreURL": "https://omnivore.app/me/deep-dive",
		"originalURL": "https://blog.example.com/goroutines",
		"siteName":    "Example Blog",
		"author":      "Jane Doe",
		"dateSaved":   "2024-05-01 12:30:00",
		"labels": []map[string]string{
			{"name": "machine_learning"},
			{"name": "go"},
		},
	}

	out, err := engine.Render(domain.DefaultArticleTemplate, context)

	require.NoError(t, err)
	assert.Contains(t, out, "# Deep Dive into Goroutines")
	assert.Contains(t, out, "[Read on Omnivore](https://omnivore.app/me/deep-dive)")
	assert.Contains(t, out, "[Read Original](https://blog.example.com/goroutines)")
	assert.Contains(t, out, "site: Example Blog")
	assert.Contains(t, out, "author: Jane Doe")
	assert.Contains(t, out, "tag: #machine_learning")
	assert.Contains(t, out, "tag: #go")
	assert.Contains(t, out, "saved: 2024-05-01 12:30:00")
}

// TestEngine_Render_DefaultArticleTemplate_NoAuthor tests that the
// author line disappears when the context omits the key.
func TestEngine_Render_DefaultArticleTemplate_NoAuthor(t *testing.T) {
	engine := NewEngine()
	context := map[string]any{
		"title":       "Untitled",
		"omnivoreURL": "https://omnivore.app/me/untitled",
		"originalURL": "https://example.com",
		"siteName":    "example.com",
		"dateSaved":   "2024-05-01 12:30:00",
		"labels":      []map[string]string{},
	}

	out, err := engine.Render(domain.DefaultArticleTemplate, context)

	require.NoError(t, err)
	assert.NotContains(t, out, "author:")
	assert.NotContains(t, out, "tag:")
	assert.Contains(t, out, "saved: 2024-05-01 12:30:00")
}

// TestEngine_Render_DefaultHighlightTemplate exercises the shipped
// highlight template with and without a note.
func TestEngine_Render_DefaultHighlightTemplate(t *testing.T) {
	engine := NewEngine()

	withNote, err := engine.Render(domain.DefaultHighlightTemplate, map[string]any{
		"text":         "a memorable quote",
		"highlightURL": "https://omnivore.app/me/slug#h1",
		"note":         "worth re-reading",
	})
	require.NoError(t, err)
	assert.Contains(t, withNote, "> a memorable quote [⤴️](https://omnivore.app/me/slug#h1)")
	assert.Contains(t, withNote, "worth re-reading")

	withoutNote, err := engine.Render(domain.DefaultHighlightTemplate, map[string]any{
		"text":         "a memorable quote",
		"highlightURL": "https://omnivore.app/me/slug#h1",
	})
	require.NoError(t, err)
	assert.NotContains(t, withoutNote, "worth re-reading")
}
