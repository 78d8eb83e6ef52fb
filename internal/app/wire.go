//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"audiosense/internal/app/config"
	"audiosense/internal/app/sense"
)

// InitializeAudioSense assembles the transcription orchestrator with the
// OpenAI remote transcriber and an ffmpeg codec wrapper.
func InitializeAudioSense(cfg *config.PipelineConfig, opts ...sense.Option) *sense.AudioSense {
	wire.Build(sense.New, provideTranscriber, provideCodec, provideLogger)
	return nil
}
