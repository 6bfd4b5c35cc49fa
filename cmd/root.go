package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrollwise/mdbook-note/internal/note"
	"github.com/scrollwise/mdbook-note/internal/preprocess"
	"github.com/scrollwise/mdbook-note/internal/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mdbook-note",
	Short: "mdBook preprocessor that gathers {{#note}} regions into a generated chapter",
	Long: `mdbook-note is an mdBook preprocessor. It collects {{#note <key>}}...{{#note end}}
regions from every chapter, strips the markers out of the prose, and appends a
generated chapter that groups the collected notes by their pipe separated key
path ("a|b" files a note under a / b).

mdbook runs this binary once per build, writing a JSON [context, book] pair to
its stdin and reading the processed book back from stdout. Install it in
book.toml:

    [preprocessor.note]
    # name = "note"   # optional: label of the generated chapter`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return preprocess.Handle(note.New(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("mdbook-note %s\n", version.String()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// The protocol owns stdout, so logs always go to stderr.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
