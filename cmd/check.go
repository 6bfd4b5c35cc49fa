package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scrollwise/mdbook-note/internal/book"
	"github.com/scrollwise/mdbook-note/internal/bookfs"
	"github.com/scrollwise/mdbook-note/internal/note"
	"github.com/scrollwise/mdbook-note/internal/render"
)

var checkCmd = &cobra.Command{
	Use:   "check <book-dir>",
	Short: "Show what the preprocessor would change, chapter by chapter",
	Long: `Check loads the book from its source directory and prints a unified diff of
every chapter the preprocessor would clean. Nothing is written back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cfg, err := bookfs.Load(args[0])
		if err != nil {
			return err
		}
		name, err := note.ChapterName(cfg.PreprocessorTable(note.Name))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		notes, touched := 0, 0
		var failed error
		b.ForEachChapter(func(ch *book.Chapter) {
			if failed != nil {
				return
			}
			n := note.CountRegions(ch.Content)
			if n == 0 {
				return
			}
			notes += n
			touched++

			target := ch.Name
			if ch.Path != nil {
				target = *ch.Path
			}
			diff, err := render.UnifiedDiff(target, ch.Content, note.Strip(ch.Content))
			if err != nil {
				failed = err
				return
			}
			render.FormatChapterReport(out, ch.Name, n, diff)
		})
		if failed != nil {
			return failed
		}

		render.FormatSummary(out, notes, touched, name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
