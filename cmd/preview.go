package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrollwise/mdbook-note/internal/book"
	"github.com/scrollwise/mdbook-note/internal/bookfs"
	"github.com/scrollwise/mdbook-note/internal/note"
	"github.com/scrollwise/mdbook-note/internal/render"
)

var previewName string

var previewCmd = &cobra.Command{
	Use:   "preview <book-dir>",
	Short: "Show the note chapter a build would generate",
	Long: `Preview loads the book from its source directory and prints the outline of
the chapter the preprocessor would append, without touching any files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cfg, err := bookfs.Load(args[0])
		if err != nil {
			return err
		}

		name := previewName
		if name == "" {
			if name, err = note.ChapterName(cfg.PreprocessorTable(note.Name)); err != nil {
				return err
			}
		}

		var extracts []note.Extract
		notes, touched := 0, 0
		b.ForEachChapter(func(ch *book.Chapter) {
			extracts = append(extracts, note.Scan(ch.Content, ch.Name)...)
			if n := note.CountRegions(ch.Content); n > 0 {
				notes += n
				touched++
			}
		})

		out := cmd.OutOrStdout()
		if len(extracts) == 0 {
			render.FormatSummary(out, 0, 0, name)
			return nil
		}

		render.FormatBanner(out, "generated chapter")
		render.FormatTree(out, note.BuildTree(extracts, name))
		fmt.Fprintln(out)
		render.FormatSummary(out, notes, touched, name)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewName, "name", "", "Override the generated chapter's name")
	rootCmd.AddCommand(previewCmd)
}
