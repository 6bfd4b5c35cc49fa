// Package note implements the note preprocessor. It collects
// {{#note <key>}}...{{#note end}} regions from every chapter of a book,
// strips the markers out of the prose, and appends one generated chapter
// that groups the collected notes into sub-chapters by key path.
package note

import (
	"fmt"

	"github.com/scrollwise/mdbook-note/internal/book"
	"github.com/scrollwise/mdbook-note/internal/preprocess"
)

// Name is the key the preprocessor is configured under in book.toml.
const Name = "note"

// DefaultChapterName labels the generated chapter when the config table has
// no "name" entry. It doubles as the chapter's path.
const DefaultChapterName = "note"

// Processor implements preprocess.Preprocessor for note collection.
type Processor struct{}

// New returns a ready Processor.
func New() *Processor {
	return &Processor{}
}

// Name implements preprocess.Preprocessor.
func (p *Processor) Name() string {
	return Name
}

// SupportsRenderer implements preprocess.Preprocessor. The generated chapter
// is plain markdown, so every renderer is accepted except the literal
// "not-supported" probe used in testing.
func (p *Processor) SupportsRenderer(renderer string) bool {
	return renderer != "not-supported"
}

// Run implements preprocess.Preprocessor. Every chapter is scanned for note
// regions and cleaned in place, nested sub-chapters included; when any notes
// were collected, the generated chapter is appended as a new top-level item.
// A book without notes passes through untouched.
func (p *Processor) Run(ctx *preprocess.Context, b *book.Book) (*book.Book, error) {
	name, err := ChapterName(ctx.PreprocessorConfig(p.Name()))
	if err != nil {
		return nil, err
	}

	var extracts []Extract
	b.ForEachChapter(func(ch *book.Chapter) {
		extracts = append(extracts, Scan(ch.Content, ch.Name)...)
		ch.Content = Strip(ch.Content)
	})

	if len(extracts) == 0 {
		return b, nil
	}

	b.PushItem(book.ChapterItem(BuildTree(extracts, name)))
	return b, nil
}

// ChapterName resolves the generated chapter's name from a preprocessor
// config table. A nil table or a table without a "name" entry falls back to
// DefaultChapterName; a "name" of any other type than string is a
// configuration error.
func ChapterName(table map[string]any) (string, error) {
	v, ok := table["name"]
	if !ok {
		return DefaultChapterName, nil
	}
	name, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("config option name must be a string, got %T", v)
	}
	return name, nil
}
