package sense

import (
	"audiosense/internal/app/audio"
)

// MaxChunkDurationMs is the hard ceiling the remote service accepts per call:
// 30 minutes.
const MaxChunkDurationMs int64 = 30 * 60 * 1000

// Segment is a time-bounded slice of decoded audio. Index is the 0-based
// position in the original chronological sequence; it is captured here, before
// dispatch, and is the only thing that restores output order later.
type Segment struct {
	Index int
	Audio *audio.PCM
}

// ChunkDuration calculates the chunk duration for a given total duration:
// the whole audio when it fits, the service ceiling otherwise.
func ChunkDuration(totalDurationMs int64) int64 {
	if totalDurationMs <= MaxChunkDurationMs {
		return totalDurationMs
	}
	return MaxChunkDurationMs
}

// Split slices audio into contiguous, non-overlapping segments of chunkMs
// milliseconds covering the full duration. The final segment may be shorter.
// Degenerate inputs (empty audio, non-positive chunk) yield a single segment
// holding the whole audio.
func Split(p *audio.PCM, chunkMs int64) []Segment {
	total := p.DurationMs()
	if chunkMs <= 0 || total == 0 {
		return []Segment{{Index: 0, Audio: p}}
	}

	var segments []Segment
	for start := int64(0); start < total; start += chunkMs {
		end := start + chunkMs
		if end > total {
			end = total
		}
		segments = append(segments, Segment{
			Index: len(segments),
			Audio: p.Slice(start, end),
		})
	}
	return segments
}
