package app

import (
	"go.uber.org/zap"

	"audiosense/internal/app/api"
	openaiclient "audiosense/internal/app/api/openai"
	"audiosense/internal/app/api/openai/whisper"
	"audiosense/internal/app/audio"
	"audiosense/internal/app/config"
	"audiosense/internal/app/logging"
)

// provideTranscriber builds the OpenAI remote transcriber on the shared
// client. OPENAI_API_KEY must be set.
func provideTranscriber(cfg *config.PipelineConfig) api.Transcriber {
	return whisper.NewRemoteTranscriber(openaiclient.GetClient(), cfg.Model)
}

func provideCodec(cfg *config.PipelineConfig) *audio.FFmpeg {
	return audio.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath)
}

func provideLogger() *zap.Logger {
	return logging.MustNewLogger(false)
}
