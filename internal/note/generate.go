package note

import (
	"sort"
	"strings"

	"github.com/scrollwise/mdbook-note/internal/book"
)

// rootNumber positions the generated chapter after any ordinary numbered
// content.
var rootNumber = book.SectionNumber{99}

// extractGroup is one pending sub-chapter: the extracts that share a
// grouping segment, keyed by that segment's value.
type extractGroup struct {
	name string
	list []Extract
}

// BuildTree builds the generated note chapter from every extract collected
// across a book. name labels the root; sub-chapters are derived from the
// extract key paths.
func BuildTree(extracts []Extract, name string) *book.Chapter {
	return generateChapter(extracts, name, nil, rootNumber)
}

// generateChapter turns extracts into one chapter. Extracts with an empty
// key path become the chapter's own body paragraphs; the rest are grouped by
// their last remaining segment and recursed into sub-chapters, sorted by
// name and numbered in that order.
func generateChapter(extracts []Extract, name string, parents []string, number book.SectionNumber) *book.Chapter {
	labels := append(append([]string{}, parents...), name)

	path := name
	chapter := &book.Chapter{
		Name:        name,
		Content:     "## " + strings.Join(labels, " / "),
		Number:      append(book.SectionNumber{}, number...),
		Path:        &path,
		ParentNames: append([]string{}, parents...),
	}

	byKey := make(map[string][]Extract)
	for _, extract := range extracts {
		if len(extract.Key) == 0 {
			if chapter.Content != "" {
				chapter.Content += "\n\n" + extract.Val
			} else {
				chapter.Content = extract.Val
			}
			continue
		}
		last := len(extract.Key) - 1
		k := extract.Key[last]
		byKey[k] = append(byKey[k], Extract{Key: extract.Key[:last], Val: extract.Val})
	}

	groups := make([]extractGroup, 0, len(byKey))
	for k, list := range byKey {
		groups = append(groups, extractGroup{name: k, list: list})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })

	for i, group := range groups {
		childNumber := append(append(book.SectionNumber{}, number...), uint32(i+1))
		child := generateChapter(group.list, group.name, labels, childNumber)
		chapter.SubItems = append(chapter.SubItems, book.ChapterItem(child))
	}

	return chapter
}
