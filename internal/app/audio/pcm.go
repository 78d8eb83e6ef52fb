package audio

// The pipeline normalizes every decode to 16 kHz mono signed 16-bit PCM.
// A fixed intermediate representation keeps duration and slicing arithmetic
// exact and is transparent to the re-encode stage.
const (
	SampleRate     = 16000
	Channels       = 1
	bytesPerSample = 2
)

// bytesPerMs is the size of one millisecond of normalized PCM.
const bytesPerMs = SampleRate * Channels * bytesPerSample / 1000

// PCM is decoded audio held in memory: raw s16le samples at the normalized
// sample rate. It is owned by a single pipeline invocation and never shared.
type PCM struct {
	data []byte
}

// NewPCM wraps raw s16le bytes. Trailing bytes that do not fill a whole
// sample frame are dropped.
func NewPCM(data []byte) *PCM {
	frame := Channels * bytesPerSample
	if rem := len(data) % frame; rem != 0 {
		data = data[:len(data)-rem]
	}
	return &PCM{data: data}
}

// Data returns the raw sample bytes.
func (p *PCM) Data() []byte {
	return p.data
}

// DurationMs returns the audio duration in milliseconds.
func (p *PCM) DurationMs() int64 {
	frames := len(p.data) / (Channels * bytesPerSample)
	return int64(frames) * 1000 / SampleRate
}

// Slice returns the audio between startMs (inclusive) and endMs (exclusive).
// Bounds are clamped to the available duration. The returned PCM shares the
// underlying buffer; segments are consumed once so no copy is needed.
func (p *PCM) Slice(startMs, endMs int64) *PCM {
	if startMs < 0 {
		startMs = 0
	}
	start := startMs * bytesPerMs
	end := endMs * bytesPerMs
	if start > int64(len(p.data)) {
		start = int64(len(p.data))
	}
	if end > int64(len(p.data)) {
		end = int64(len(p.data))
	}
	if end < start {
		end = start
	}
	return &PCM{data: p.data[start:end]}
}
