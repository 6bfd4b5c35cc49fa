package bookfs

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/scrollwise/mdbook-note/internal/book"
)

// parseSummary parses SUMMARY.md source into book items, mirroring how
// mdbook reads it: the leading heading is the summary title and is dropped,
// later headings open parts, lists hold the numbered chapters (numbering
// runs on across parts), thematic breaks become separators, and bare link
// paragraphs become unnumbered prefix or suffix chapters.
//
// Chapter contents are not loaded here. Path carries the link destination
// relative to the book's src directory; a link with an empty destination is
// a draft chapter and gets no path.
func parseSummary(src []byte) []book.BookItem {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	p := &summaryParser{src: src, next: 1}
	var items []book.BookItem
	first := true
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if !first {
				items = append(items, book.PartTitleItem(string(node.Text(src))))
			}
		case *ast.ThematicBreak:
			items = append(items, book.SeparatorItem())
		case *ast.List:
			items = append(items, p.parseList(node, nil, nil)...)
		case *ast.Paragraph:
			for _, link := range childLinks(node) {
				items = append(items, book.ChapterItem(p.chapterFor(link, nil, nil)))
			}
		}
		first = false
	}
	return items
}

type summaryParser struct {
	src []byte

	// next is the number the next top-level chapter takes; it keeps
	// counting across lists so numbering continues through parts.
	next uint32
}

// parseList turns one markdown list into numbered chapter items. parents and
// parentNumber identify the enclosing chapter; top-level lists pass nil for
// both and draw numbers from the running counter instead.
func (p *summaryParser) parseList(list *ast.List, parents []string, parentNumber book.SectionNumber) []book.BookItem {
	var items []book.BookItem
	index := uint32(0)
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		item, ok := li.(*ast.ListItem)
		if !ok {
			continue
		}
		link := itemLink(item)
		if link == nil {
			continue
		}

		var number book.SectionNumber
		if parentNumber == nil {
			number = book.SectionNumber{p.next}
			p.next++
		} else {
			index++
			number = append(append(book.SectionNumber{}, parentNumber...), index)
		}

		ch := p.chapterFor(link, parents, number)
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				subParents := append(append([]string{}, parents...), ch.Name)
				ch.SubItems = append(ch.SubItems, p.parseList(sub, subParents, number)...)
			}
		}
		items = append(items, book.ChapterItem(ch))
	}
	return items
}

// chapterFor builds an unloaded chapter from one summary link.
func (p *summaryParser) chapterFor(link *ast.Link, parents []string, number book.SectionNumber) *book.Chapter {
	ch := &book.Chapter{
		Name:        string(link.Text(p.src)),
		Number:      number,
		ParentNames: append([]string{}, parents...),
	}
	if dest := string(link.Destination); dest != "" {
		ch.Path = &dest
		ch.SourcePath = &dest
	}
	return ch
}

// itemLink finds a list item's own link, skipping nested lists since those
// are the item's sub-chapters, not part of the entry itself.
func itemLink(n ast.Node) *ast.Link {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.List); ok {
			continue
		}
		if link, ok := c.(*ast.Link); ok {
			return link
		}
		if link := itemLink(c); link != nil {
			return link
		}
	}
	return nil
}

// childLinks collects the links under a paragraph, one prefix or suffix
// chapter per link.
func childLinks(n ast.Node) []*ast.Link {
	var links []*ast.Link
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if link, ok := c.(*ast.Link); ok {
			links = append(links, link)
			continue
		}
		links = append(links, childLinks(c)...)
	}
	return links
}
