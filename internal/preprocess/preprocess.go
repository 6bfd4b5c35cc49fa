// Package preprocess implements the mdBook preprocessor protocol: mdbook
// writes a JSON [context, book] pair to the preprocessor's stdin and reads
// the processed book back from its stdout. Renderer support is negotiated
// separately through the `supports` subcommand's exit code.
package preprocess

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/scrollwise/mdbook-note/internal/book"
)

// mdbookVersion is the mdbook release line this protocol implementation
// tracks. A different major.minor in the incoming context is logged, not
// fatal; the wire format has been stable across 0.4.x.
const mdbookVersion = "0.4.52"

// Table is one [preprocessor.<name>] configuration table. Its shape is
// owned by the preprocessor, not by mdbook.
type Table map[string]any

// BookConfig mirrors the [book] table of book.toml as mdbook serializes it
// into the preprocessor context.
type BookConfig struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Src         string   `json:"src"`
	Language    string   `json:"language"`
}

// Config is the slice of mdbook's configuration a preprocessor can see.
type Config struct {
	Book         BookConfig       `json:"book"`
	Preprocessor map[string]Table `json:"preprocessor"`
}

// Context is the metadata mdbook sends alongside the book being built.
type Context struct {
	Root          string `json:"root"`
	Config        Config `json:"config"`
	Renderer      string `json:"renderer"`
	MdbookVersion string `json:"mdbook_version"`
}

// PreprocessorConfig returns the named preprocessor's config table, or nil
// when the context carries none.
func (c *Context) PreprocessorConfig(name string) Table {
	if c == nil {
		return nil
	}
	return c.Config.Preprocessor[name]
}

// Preprocessor transforms a book once per build.
type Preprocessor interface {
	// Name is the key the preprocessor is configured under in book.toml.
	Name() string

	// Run transforms the book. The returned book may be the input mutated
	// in place.
	Run(ctx *Context, b *book.Book) (*book.Book, error)

	// SupportsRenderer reports whether the preprocessor's output is valid
	// for the given renderer.
	SupportsRenderer(renderer string) bool
}

// ParseInput decodes the [context, book] pair mdbook writes on stdin.
func ParseInput(r io.Reader) (*Context, *book.Book, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decoding preprocessor input: %w", err)
	}
	if len(raw) != 2 {
		return nil, nil, fmt.Errorf("preprocessor input must be a [context, book] pair, got %d elements", len(raw))
	}

	var ctx Context
	if err := json.Unmarshal(raw[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("decoding preprocessor context: %w", err)
	}
	var b book.Book
	if err := json.Unmarshal(raw[1], &b); err != nil {
		return nil, nil, fmt.Errorf("decoding book: %w", err)
	}
	return &ctx, &b, nil
}

// Handle runs one protocol exchange: parse the pair from r, run p, and
// write the processed book to w.
func Handle(p Preprocessor, r io.Reader, w io.Writer) error {
	ctx, b, err := ParseInput(r)
	if err != nil {
		return err
	}

	if drifts(ctx.MdbookVersion) {
		slog.Warn("mdbook version differs from the one this preprocessor tracks",
			"mdbook", ctx.MdbookVersion,
			"tracked", mdbookVersion,
		)
	}
	slog.Debug("preprocessing book",
		"preprocessor", p.Name(),
		"renderer", ctx.Renderer,
		"items", len(b.Sections),
	)

	processed, err := p.Run(ctx, b)
	if err != nil {
		return fmt.Errorf("running preprocessor %s: %w", p.Name(), err)
	}

	if err := json.NewEncoder(w).Encode(processed); err != nil {
		return fmt.Errorf("encoding processed book: %w", err)
	}
	return nil
}

// drifts reports whether v belongs to a different mdbook major.minor line
// than the tracked one.
func drifts(v string) bool {
	return majorMinor(v) != majorMinor(mdbookVersion)
}

func majorMinor(v string) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return v
	}
	return parts[0] + "." + parts[1]
}
