package api

import (
	"context"

	"audiosense/internal/app/model"
)

// Transcriber defines a transcription interface for converting one encoded
// audio chunk to text. Implementations must be safe for concurrent use; the
// pipeline submits many chunks at once.
type Transcriber interface {
	Transcribe(ctx context.Context, chunk model.EncodedChunk) (model.Transcription, error)
}
