package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"audiosense/internal/app"
	appconfig "audiosense/internal/app/config"
	"audiosense/internal/app/model"
	"audiosense/internal/app/progress"
	"audiosense/internal/app/repository/sqlite"
	"audiosense/internal/app/sense"
	"audiosense/internal/app/storage"
	"audiosense/internal/app/util/files"
	"audiosense/internal/config"
)

var (
	filePath    string
	configPath  string
	modelName   string
	speedFactor float64
	noProgress  bool
)

func init() {
	Cmd.Flags().StringVarP(&filePath, "file", "f", "", "audio file to transcribe")
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline config file (yaml)")
	Cmd.Flags().StringVarP(&modelName, "model", "m", "", "remote transcription model")
	Cmd.Flags().Float64VarP(&speedFactor, "speed", "s", 1.0, "speed-up factor applied before transcription")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	Cmd.MarkFlagRequired("file")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe one audio file to text",
	Long: `Transcribe one audio file to text

- Long audio is split into 30-minute segments transcribed concurrently
- Output keeps the original temporal order
- The result is printed to stdout and recorded in the local history database`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd); err != nil {
			log.Fatalln(err)
		}
	},
}

func run(cmd *cobra.Command) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	apiKeys, err := config.GetAPIKeys()
	if err != nil {
		return err
	}
	if err := config.RequireAPIKeys(apiKeys); err != nil {
		return err
	}

	cfg, err := appconfig.LoadPipelineConfig(configPath)
	if err != nil {
		return err
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("speed") {
		cfg.SpeedFactor = speedFactor
	}

	src, err := sense.OpenSourceFile(filePath)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pm := progress.NewManager(progress.Config{
		Enabled: !noProgress && progress.IsTTY(os.Stderr),
	})
	defer pm.Shutdown()

	var barOnce sync.Once
	var bar *progress.Bar
	onSegment := func(completed, total int) {
		barOnce.Do(func() {
			bar = pm.CreateBar(total, "transcribing")
		})
		bar.SetCurrent(int64(completed))
	}

	orchestrator := app.InitializeAudioSense(cfg,
		sense.WithSegmentTimeout(time.Duration(cfg.SegmentTimeoutSec)*time.Second),
		sense.WithSegmentProgress(onSegment),
	)

	results, err := orchestrator.Transcribe(ctx, src, cfg.SpeedFactor)
	if bar != nil {
		bar.Complete()
	}
	pm.Wait()

	recordRun(src, results, err)
	if err != nil {
		return err
	}

	fmt.Println(model.JoinText(results))

	if cfg.Archive.Enabled {
		if archiveErr := archive(ctx, cfg, src, results); archiveErr != nil {
			log.Printf("archiving failed: %v\n", archiveErr)
		}
	}
	return nil
}

// recordRun saves this invocation to the history database; failures to
// persist are logged, never fatal.
func recordRun(src *sense.SourceFile, results []model.Transcription, runErr error) {
	dataDir, err := files.GetDataDir()
	if err != nil {
		log.Printf("history disabled: %v\n", err)
		return
	}

	db, err := sqlite.NewSQLiteDB(filepath.Join(dataDir, "transcription.db"))
	if err != nil {
		log.Printf("history disabled: %v\n", err)
		return
	}
	defer db.Close()

	rec := model.TranscriptionRecord{
		FileName:     src.Filename,
		Format:       string(sense.DetectFormat(src.Filename, src.ContentType)),
		SegmentCount: len(results),
		CreatedAt:    time.Now(),
	}
	for _, r := range results {
		rec.AudioDuration += r.Duration
	}
	if runErr != nil {
		rec.HasError = 1
		rec.ErrorMessage = runErr.Error()
	} else {
		rec.Transcription = model.JoinText(results)
	}

	if err := db.Record(rec); err != nil {
		log.Printf("failed to record transcription: %v\n", err)
	}
}

func archive(ctx context.Context, cfg *appconfig.PipelineConfig, src *sense.SourceFile, results []model.Transcription) error {
	store, err := storage.NewArchiveStore(cfg.Archive)
	if err != nil {
		return err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}

	if err := src.ResetPosition(); err != nil {
		return err
	}
	if _, err := store.ArchiveAudio(ctx, src.Filename, src, src.Size, src.ContentType); err != nil {
		return err
	}
	_, err = store.ArchiveTranscript(ctx, src.Filename, model.JoinText(results))
	return err
}
