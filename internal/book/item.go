package book

import (
	"encoding/json"
	"fmt"
)

// ItemKind discriminates the BookItem variants. The values double as the
// serde tags mdbook puts on the wire.
type ItemKind string

const (
	KindChapter   ItemKind = "Chapter"
	KindSeparator ItemKind = "Separator"
	KindPartTitle ItemKind = "PartTitle"
)

// BookItem is one entry of a book: a chapter, a separator rule, or a part
// title. mdbook encodes the variants as an externally tagged union, so a
// chapter arrives as {"Chapter": {...}}, a separator as the bare string
// "Separator", and a part title as {"PartTitle": "..."}.
type BookItem struct {
	Kind      ItemKind
	Chapter   *Chapter // set when Kind is KindChapter
	PartTitle string   // set when Kind is KindPartTitle
}

// ChapterItem wraps a chapter as a book item.
func ChapterItem(ch *Chapter) BookItem {
	return BookItem{Kind: KindChapter, Chapter: ch}
}

// SeparatorItem returns a separator item.
func SeparatorItem() BookItem {
	return BookItem{Kind: KindSeparator}
}

// PartTitleItem wraps a part title as a book item.
func PartTitleItem(title string) BookItem {
	return BookItem{Kind: KindPartTitle, PartTitle: title}
}

func (it BookItem) MarshalJSON() ([]byte, error) {
	switch it.Kind {
	case KindChapter:
		ch := it.Chapter
		if ch == nil {
			ch = &Chapter{}
		}
		return json.Marshal(map[string]*Chapter{string(KindChapter): ch})
	case KindSeparator:
		return json.Marshal(string(KindSeparator))
	case KindPartTitle:
		return json.Marshal(map[string]string{string(KindPartTitle): it.PartTitle})
	default:
		return nil, fmt.Errorf("cannot marshal book item of kind %q", it.Kind)
	}
}

func (it *BookItem) UnmarshalJSON(data []byte) error {
	// A unit variant arrives as a bare string.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != string(KindSeparator) {
			return fmt.Errorf("unknown book item %q", s)
		}
		*it = SeparatorItem()
		return nil
	}

	var tagged struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("malformed book item: %w", err)
	}
	switch {
	case tagged.Chapter != nil:
		*it = ChapterItem(tagged.Chapter)
	case tagged.PartTitle != nil:
		*it = PartTitleItem(*tagged.PartTitle)
	default:
		return fmt.Errorf("book item carries no known variant")
	}
	return nil
}
