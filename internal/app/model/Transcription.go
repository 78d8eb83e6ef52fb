package model

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// TranscriptionSegment is one timestamped span inside a verbose transcription
// response. Start and End are seconds relative to the submitted audio.
type TranscriptionSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcription is the remote service's output for one submitted audio chunk.
// Segments is populated only when the service returns a verbose response.
type Transcription struct {
	Task     string                 `json:"task,omitempty"`
	Language string                 `json:"language,omitempty"`
	Duration float64                `json:"duration,omitempty"`
	Text     string                 `json:"text"`
	Segments []TranscriptionSegment `json:"segments,omitempty"`
}

// JoinText concatenates the text of ordered transcriptions into one transcript.
func JoinText(transcriptions []Transcription) string {
	parts := lo.Map(transcriptions, func(t Transcription, _ int) string {
		return strings.TrimSpace(t.Text)
	})
	return strings.Join(parts, " ")
}

// TranscriptionRecord is one persisted pipeline invocation.
type TranscriptionRecord struct {
	ID            int
	FileName      string
	Format        string
	SegmentCount  int
	AudioDuration float64
	Transcription string
	CreatedAt     time.Time
	HasError      int
	ErrorMessage  string
}
