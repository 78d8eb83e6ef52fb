package sense

import (
	"sort"

	"github.com/samber/lo"

	"audiosense/internal/app/model"
)

// IndexedTranscription pairs a transcription result with the ordinal index of
// the segment that produced it.
type IndexedTranscription struct {
	Index         int
	Transcription model.Transcription
}

// Assemble orders concurrently-produced results by their ordinal index and
// drops the index column. Pure; the input slice is not modified.
func Assemble(pairs []IndexedTranscription) []model.Transcription {
	ordered := make([]IndexedTranscription, len(pairs))
	copy(ordered, pairs)

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	return lo.Map(ordered, func(p IndexedTranscription, _ int) model.Transcription {
		return p.Transcription
	})
}
