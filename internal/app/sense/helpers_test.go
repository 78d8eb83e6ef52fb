package sense

import (
	"context"
	"io"
	"sync"

	"audiosense/internal/app/model"
)

// fakeRunner stands in for the ffmpeg binary. Every call is recorded; onRun
// decides the outcome.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	onRun func(stdin io.Reader, name string, args []string) ([]byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	return f.onRun(stdin, name, args)
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// hasArg reports whether any recorded call contains the given argument.
func (f *fakeRunner) hasArg(arg string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.calls {
		for _, a := range call {
			if a == arg {
				return true
			}
		}
	}
	return false
}

// pcmBytes returns ms milliseconds of silence in the normalized PCM layout
// (16 kHz mono s16le = 32 bytes per millisecond).
func pcmBytes(ms int) []byte {
	return make([]byte, ms*32)
}

// fakeTranscriber returns canned results keyed by chunk index, optionally
// delaying each call. Concurrency-safe.
type fakeTranscriber struct {
	mu      sync.Mutex
	chunks  []model.EncodedChunk
	results map[int]model.Transcription
	errs    map[int]error
	delay   func(index int)
}

func newFakeTranscriber() *fakeTranscriber {
	return &fakeTranscriber{
		results: make(map[int]model.Transcription),
		errs:    make(map[int]error),
	}
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, chunk model.EncodedChunk) (model.Transcription, error) {
	if f.delay != nil {
		f.delay(chunk.Index)
	}

	f.mu.Lock()
	f.chunks = append(f.chunks, chunk)
	f.mu.Unlock()

	if err, ok := f.errs[chunk.Index]; ok {
		return model.Transcription{}, err
	}
	if res, ok := f.results[chunk.Index]; ok {
		return res, nil
	}
	return model.Transcription{Text: "ok"}, nil
}

func (f *fakeTranscriber) received() []model.EncodedChunk {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.EncodedChunk, len(f.chunks))
	copy(out, f.chunks)
	return out
}
