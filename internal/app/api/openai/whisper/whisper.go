package whisper

import (
	"bytes"
	"context"

	"github.com/sashabaranov/go-openai"

	"audiosense/internal/app/errors"
	"audiosense/internal/app/model"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance. An empty
// model falls back to whisper-1.
func NewRemoteTranscriber(client *openai.Client, model string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: model}
}

// Transcribe submits one encoded chunk to the OpenAI transcription endpoint
// and returns the verbose result. Failures are reported as remote service
// errors; retry policy, if any, belongs to the caller.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, chunk model.EncodedChunk) (model.Transcription, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		Reader:   bytes.NewReader(chunk.Data),
		FilePath: chunk.Filename,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		},
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return model.Transcription{}, errors.Attachf(errors.ErrRemoteService, err,
			"createTranscription failed for %s", chunk.Filename)
	}

	return fromAudioResponse(resp), nil
}

func fromAudioResponse(resp openai.AudioResponse) model.Transcription {
	t := model.Transcription{
		Task:     resp.Task,
		Language: resp.Language,
		Duration: resp.Duration,
		Text:     resp.Text,
	}
	for _, seg := range resp.Segments {
		t.Segments = append(t.Segments, model.TranscriptionSegment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return t
}
