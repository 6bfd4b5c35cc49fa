package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scrollwise/mdbook-note/internal/note"
)

var supportsCmd = &cobra.Command{
	Use:   "supports <renderer>",
	Short: "Report whether a renderer is supported",
	Long: `mdbook probes each preprocessor with "supports <renderer>" before a build.
The answer is the exit code: 0 to participate in the build, 1 to be skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !note.New().SupportsRenderer(args[0]) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(supportsCmd)
}
