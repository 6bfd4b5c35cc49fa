// Package render formats preview and check output for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/scrollwise/mdbook-note/internal/book"
)

var (
	// bannerStyle for section banners
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25")).
			Padding(0, 2)

	// numberStyle for section numbers in the tree
	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	// nameStyle for chapter names
	nameStyle = lipgloss.NewStyle().
			Bold(true)

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// addStyle for added diff lines
	addStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// delStyle for removed diff lines
	delStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// FormatBanner renders a section banner
func FormatBanner(w io.Writer, text string) {
	fmt.Fprintln(w, bannerStyle.Render(" "+text+" "))
	fmt.Fprintln(w)
}

// FormatTree renders the generated chapter outline with section numbers
func FormatTree(w io.Writer, root *book.Chapter) {
	var walk func(ch *book.Chapter, depth int)
	walk = func(ch *book.Chapter, depth int) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s %s\n",
			indent,
			numberStyle.Render(ch.Number.String()),
			nameStyle.Render(ch.Name),
		)
		for _, it := range ch.SubItems {
			if it.Kind == book.KindChapter && it.Chapter != nil {
				walk(it.Chapter, depth+1)
			}
		}
	}
	walk(root, 0)
}

// FormatChapterReport renders one chapter's pending changes
func FormatChapterReport(w io.Writer, name string, notes int, diff string) {
	fmt.Fprintf(w, "%s %s\n", nameStyle.Render(name), dimStyle.Render(countNotes(notes)))
	if diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, addStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, delStyle.Render(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

// FormatSummary renders the closing line for preview and check. chapters is
// the number of chapters that contributed notes.
func FormatSummary(w io.Writer, notes, chapters int, chapterName string) {
	if notes == 0 {
		fmt.Fprintln(w, dimStyle.Render("no note regions found; the book passes through unchanged"))
		return
	}
	word := "chapters"
	if chapters == 1 {
		word = "chapter"
	}
	fmt.Fprintf(w, "%s across %d %s; a %q chapter will be appended\n",
		countNotes(notes), chapters, word, chapterName)
}

// UnifiedDiff produces a classic unified patch between a chapter's original
// and cleaned content. Identical inputs yield an empty string.
func UnifiedDiff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(before),
		B:        splitLinesKeepNL(after),
		FromFile: name,
		ToFile:   name + " (cleaned)",
		Context:  4,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", name, err)
	}
	return s, nil
}

// splitLinesKeepNL splits into lines keeping the newline characters, which
// produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

func countNotes(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}
