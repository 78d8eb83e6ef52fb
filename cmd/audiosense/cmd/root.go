package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audiosense/cmd/audiosense/cmd/export"
	"audiosense/cmd/audiosense/cmd/transcribe"
	"audiosense/cmd/audiosense/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audiosense",
	Short: "Transcribe audio files with OpenAI Whisper",
	Long: `Transcribe audio files with OpenAI Whisper.

- Detects the source format, segments long audio and re-encodes each segment
  to a cost-optimal codec before upload
- Short m4a files skip re-encoding entirely
- Results are printed in original temporal order and saved to sqlite.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
