package export

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"audiosense/internal/app/export"
	"audiosense/internal/app/repository/sqlite"
	"audiosense/internal/app/util/files"
)

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcription history to excel",
	Long: `Export the transcription history to excel

- Exports every recorded invocation, oldest first`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, err := files.GetDataDir()
		if err != nil {
			log.Fatalf("Failed to locate data directory: %v\n", err)
		}

		db, err := sqlite.NewSQLiteDB(filepath.Join(dataDir, "transcription.db"))
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		records, err := db.GetAll()
		if err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(records, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
