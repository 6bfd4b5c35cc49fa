// Package book models an mdBook book: the ordered item list mdbook
// serializes when it invokes a preprocessor. The JSON encoding mirrors
// mdbook's serde output exactly, so a decoded book can be processed and
// written back without mdbook noticing the round trip.
package book

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionNumber is a chapter's hierarchical section number, e.g. {1, 2} for
// chapter 1.2. A nil number marks an unnumbered chapter and serializes as
// null, matching mdbook's Option<SectionNumber>.
type SectionNumber []uint32

// String renders the number the way mdbook displays it: every part followed
// by a dot ("1.2."), or "0" when the number is empty.
func (s SectionNumber) String() string {
	if len(s) == 0 {
		return "0"
	}
	var b strings.Builder
	for _, n := range s {
		fmt.Fprintf(&b, "%d.", n)
	}
	return b.String()
}

// Chapter is one content document of a book: its display name, raw markdown
// content, position metadata, and nested sub-items.
type Chapter struct {
	Name        string        `json:"name"`
	Content     string        `json:"content"`
	Number      SectionNumber `json:"number"`
	SubItems    []BookItem    `json:"sub_items"`
	Path        *string       `json:"path"`
	SourcePath  *string       `json:"source_path"`
	ParentNames []string      `json:"parent_names"`
}

// MarshalJSON keeps the encoding mdbook can deserialize: sub_items and
// parent_names must be arrays even when empty (serde rejects null for Vec),
// while number and the path fields stay null when unset.
func (c Chapter) MarshalJSON() ([]byte, error) {
	type chapter Chapter
	cc := chapter(c)
	if cc.SubItems == nil {
		cc.SubItems = []BookItem{}
	}
	if cc.ParentNames == nil {
		cc.ParentNames = []string{}
	}
	return json.Marshal(cc)
}

// Book is the root of the model: the ordered top-level items of a book.
type Book struct {
	Sections []BookItem `json:"sections"`

	// mdbook marks Book non-exhaustive and serializes the marker as null;
	// it is carried here so output matches what mdbook sent.
	NonExhaustive nonExhaustive `json:"__non_exhaustive"`
}

type nonExhaustive struct{}

func (nonExhaustive) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (*nonExhaustive) UnmarshalJSON([]byte) error { return nil }

// MarshalJSON guarantees sections encodes as an array even when the book is
// empty.
func (b Book) MarshalJSON() ([]byte, error) {
	type bb Book
	out := bb(b)
	if out.Sections == nil {
		out.Sections = []BookItem{}
	}
	return json.Marshal(out)
}

// PushItem appends a top-level item.
func (b *Book) PushItem(it BookItem) {
	b.Sections = append(b.Sections, it)
}

// ForEachChapter visits every chapter in depth-first pre-order, nested
// sub-chapters included. Separators and part titles are skipped. The visited
// chapter may be mutated in place.
func (b *Book) ForEachChapter(fn func(*Chapter)) {
	var walk func(items []BookItem)
	walk = func(items []BookItem) {
		for i := range items {
			ch := items[i].Chapter
			if items[i].Kind != KindChapter || ch == nil {
				continue
			}
			fn(ch)
			walk(ch.SubItems)
		}
	}
	walk(b.Sections)
}
