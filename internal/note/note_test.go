package note

import (
	"reflect"
	"strings"
	"testing"

	"github.com/scrollwise/mdbook-note/internal/book"
	"github.com/scrollwise/mdbook-note/internal/preprocess"
)

func ctxWithTable(table preprocess.Table) *preprocess.Context {
	return &preprocess.Context{
		Config: preprocess.Config{
			Preprocessor: map[string]preprocess.Table{Name: table},
		},
	}
}

func TestRunCollectsAndCleans(t *testing.T) {
	nested := &book.Chapter{
		Name:    "Nested",
		Content: "deep {{#note inner}}nested note{{#note end}} prose",
	}
	top := &book.Chapter{
		Name:     "Top",
		Content:  "intro {{#note inner}}top note{{#note end}} outro",
		SubItems: []book.BookItem{book.ChapterItem(nested)},
	}
	b := &book.Book{Sections: []book.BookItem{
		book.ChapterItem(top),
		book.SeparatorItem(),
		book.PartTitleItem("Part Two"),
	}}

	got, err := New().Run(ctxWithTable(nil), b)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(got.Sections) != 4 {
		t.Fatalf("got %d sections, want original 3 plus the generated chapter", len(got.Sections))
	}
	if got.Sections[1].Kind != book.KindSeparator {
		t.Errorf("section 1 kind = %q, want separator kept in place", got.Sections[1].Kind)
	}
	if got.Sections[2].Kind != book.KindPartTitle {
		t.Errorf("section 2 kind = %q, want part title kept in place", got.Sections[2].Kind)
	}

	if top.Content != "intro top note outro" {
		t.Errorf("top content = %q, want markers stripped", top.Content)
	}
	if nested.Content != "deep nested note prose" {
		t.Errorf("nested content = %q, want markers stripped", nested.Content)
	}
	if len(top.SubItems) != 1 || top.SubItems[0].Chapter != nested {
		t.Error("nesting was not preserved")
	}

	generated := got.Sections[3]
	if generated.Kind != book.KindChapter {
		t.Fatalf("last section kind = %q, want the generated chapter", generated.Kind)
	}
	root := generated.Chapter
	if root.Name != DefaultChapterName {
		t.Errorf("generated name = %q, want %q", root.Name, DefaultChapterName)
	}
	if !reflect.DeepEqual(root.Number, book.SectionNumber{99}) {
		t.Errorf("generated number = %v, want [99]", root.Number)
	}
	if len(root.SubItems) != 1 {
		t.Fatalf("got %d generated sub chapters, want 1", len(root.SubItems))
	}

	// Both chapters contributed under the same key; headings attribute each
	// payload to its source chapter, in scan order.
	inner := root.SubItems[0].Chapter
	expected := "## note / inner\n\n### Top\n\ntop note\n\n### Nested\n\nnested note"
	if inner.Content != expected {
		t.Errorf("inner content = %q, want %q", inner.Content, expected)
	}
}

func TestRunWithoutNotesPassesBookThrough(t *testing.T) {
	content := "plain prose with no markers"
	b := &book.Book{Sections: []book.BookItem{
		book.ChapterItem(&book.Chapter{Name: "Only", Content: content}),
		book.SeparatorItem(),
	}}

	got, err := New().Run(ctxWithTable(nil), b)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(got.Sections) != 2 {
		t.Fatalf("got %d sections, want 2 untouched", len(got.Sections))
	}
	if got.Sections[0].Chapter.Content != content {
		t.Errorf("content = %q, want untouched original", got.Sections[0].Chapter.Content)
	}
}

func TestRunUsesConfiguredName(t *testing.T) {
	b := &book.Book{Sections: []book.BookItem{
		book.ChapterItem(&book.Chapter{
			Name:    "ch",
			Content: "{{#note k}}v{{#note end}}",
		}),
	}}

	got, err := New().Run(ctxWithTable(preprocess.Table{"name": "Collected"}), b)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	root := got.Sections[len(got.Sections)-1].Chapter
	if root.Name != "Collected" {
		t.Errorf("generated name = %q, want Collected", root.Name)
	}
}

func TestRunRejectsNonStringName(t *testing.T) {
	b := &book.Book{Sections: []book.BookItem{
		book.ChapterItem(&book.Chapter{
			Name:    "ch",
			Content: "{{#note k}}v{{#note end}}",
		}),
	}}

	_, err := New().Run(ctxWithTable(preprocess.Table{"name": 7}), b)
	if err == nil {
		t.Fatal("expected a config error")
	}
	if !strings.Contains(err.Error(), "must be a string") {
		t.Errorf("error = %q, want a name type complaint", err)
	}
	if got := b.Sections[0].Chapter.Content; got != "{{#note k}}v{{#note end}}" {
		t.Errorf("content = %q, want untouched on config error", got)
	}
}

func TestSupportsRenderer(t *testing.T) {
	p := New()

	tests := []struct {
		renderer string
		expected bool
	}{
		{renderer: "html", expected: true},
		{renderer: "markdown", expected: true},
		{renderer: "", expected: true},
		{renderer: "not-supported", expected: false},
	}

	for _, tt := range tests {
		if got := p.SupportsRenderer(tt.renderer); got != tt.expected {
			t.Errorf("SupportsRenderer(%q) = %v, want %v", tt.renderer, got, tt.expected)
		}
	}
}

func TestChapterName(t *testing.T) {
	tests := []struct {
		name     string
		table    map[string]any
		expected string
		wantErr  bool
	}{
		{
			name:     "nil table defaults",
			table:    nil,
			expected: DefaultChapterName,
		},
		{
			name:     "missing entry defaults",
			table:    map[string]any{"other": "x"},
			expected: DefaultChapterName,
		},
		{
			name:     "string entry wins",
			table:    map[string]any{"name": "Collected Notes"},
			expected: "Collected Notes",
		},
		{
			name:    "non-string entry is an error",
			table:   map[string]any{"name": 42},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChapterName(tt.table)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ChapterName failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ChapterName() = %q, want %q", got, tt.expected)
			}
		})
	}
}
