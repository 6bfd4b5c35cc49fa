// Package bookfs loads an mdBook book from its source directory: book.toml,
// src/SUMMARY.md, and the chapter files the summary links to. It exists so
// the preview and check commands can run against a book on disk without
// mdbook in the loop.
package bookfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the slice of book.toml this tool reads.
type Config struct {
	Book         BookSection               `toml:"book"`
	Preprocessor map[string]map[string]any `toml:"preprocessor"`
}

// BookSection is the [book] table.
type BookSection struct {
	Title    string   `toml:"title"`
	Authors  []string `toml:"authors"`
	Language string   `toml:"language"`
	Src      string   `toml:"src"`
}

// PreprocessorTable returns the [preprocessor.<name>] table, or nil when the
// config has none.
func (c *Config) PreprocessorTable(name string) map[string]any {
	if c == nil {
		return nil
	}
	return c.Preprocessor[name]
}

// LoadConfig reads dir/book.toml. A missing file yields the defaults mdbook
// assumes; a malformed one is an error.
func LoadConfig(dir string) (*Config, error) {
	cfg := &Config{Book: BookSection{Src: "src"}}

	path := filepath.Join(dir, "book.toml")
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if cfg.Book.Src == "" {
		cfg.Book.Src = "src"
	}
	return cfg, nil
}
