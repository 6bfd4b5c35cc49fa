package bookfs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scrollwise/mdbook-note/internal/book"
)

// Load reads the book rooted at dir: its book.toml, the SUMMARY.md under the
// configured src directory, and every chapter file the summary links to.
func Load(dir string) (*book.Book, *Config, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		return nil, nil, err
	}

	srcDir := filepath.Join(dir, cfg.Book.Src)
	summary, err := os.ReadFile(filepath.Join(srcDir, "SUMMARY.md"))
	if err != nil {
		return nil, nil, fmt.Errorf("reading summary: %w", err)
	}

	b := &book.Book{Sections: parseSummary(summary)}
	if err := loadContents(b, srcDir); err != nil {
		return nil, nil, err
	}

	slog.Debug("loaded book",
		"dir", dir,
		"title", cfg.Book.Title,
		"items", len(b.Sections),
	)
	return b, cfg, nil
}

// loadContents fills every chapter's content from its source file. Draft
// chapters have no path and stay empty.
func loadContents(b *book.Book, srcDir string) error {
	var failed error
	b.ForEachChapter(func(ch *book.Chapter) {
		if failed != nil || ch.Path == nil {
			return
		}
		data, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(*ch.Path)))
		if err != nil {
			failed = fmt.Errorf("loading chapter %q: %w", ch.Name, err)
			return
		}
		ch.Content = string(data)
	})
	return failed
}
