package sense

import (
	"context"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"audiosense/internal/app/api"
	"audiosense/internal/app/audio"
	"audiosense/internal/app/errors"
	"audiosense/internal/app/model"
)

// DefaultSegmentTimeout bounds a single segment's export + remote call.
const DefaultSegmentTimeout = 5 * time.Minute

// AudioSense is the transcription orchestrator. Given an uploaded file it
// detects the format, picks the fast path or the full decode pipeline, fans
// segments out to the remote service concurrently and returns the results in
// original temporal order. The contract is all-or-nothing per invocation:
// the first segment failure cancels the rest and fails the whole call.
type AudioSense struct {
	transcriber api.Transcriber
	loader      *Loader
	speed       *SpeedModifier
	exporter    *Exporter
	steps       *StepTimer
	logger      *zap.SugaredLogger

	segmentTimeout time.Duration
	chunkMs        int64
	onSegmentDone  func(completed, total int)
}

// Option configures an AudioSense.
type Option func(*AudioSense)

// WithSegmentTimeout bounds each segment's export + remote call. Zero
// disables the per-segment timeout.
func WithSegmentTimeout(d time.Duration) Option {
	return func(s *AudioSense) { s.segmentTimeout = d }
}

// WithChunkDuration overrides the computed chunk duration in milliseconds.
// Zero keeps the default of min(total, MaxChunkDurationMs).
func WithChunkDuration(ms int64) Option {
	return func(s *AudioSense) { s.chunkMs = ms }
}

// WithSegmentProgress registers a callback invoked after each segment
// completes, with the number completed so far and the total. Called from the
// segment goroutines; the callback must be safe for concurrent use.
func WithSegmentProgress(fn func(completed, total int)) Option {
	return func(s *AudioSense) { s.onSegmentDone = fn }
}

// New creates an AudioSense orchestrator.
func New(transcriber api.Transcriber, codec *audio.FFmpeg, logger *zap.Logger, opts ...Option) *AudioSense {
	s := &AudioSense{
		transcriber:    transcriber,
		loader:         NewLoader(codec, logger),
		speed:          NewSpeedModifier(codec),
		exporter:       NewExporter(codec, logger),
		steps:          NewStepTimer(logger),
		logger:         logger.Sugar(),
		segmentTimeout: DefaultSegmentTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transcribe runs the full pipeline on one uploaded file and returns one
// transcription per chronological chunk of the source audio. No partial
// results are ever returned.
func (s *AudioSense) Transcribe(ctx context.Context, src *SourceFile, speedFactor float64) ([]model.Transcription, error) {
	results, err := s.transcribe(ctx, src, speedFactor)
	if err != nil {
		recordInvocation("failure")
		return nil, err
	}
	recordInvocation("success")
	return results, nil
}

func (s *AudioSense) transcribe(ctx context.Context, src *SourceFile, speedFactor float64) ([]model.Transcription, error) {
	if speedFactor <= 0 {
		return nil, errors.Attach(errors.ErrInvalidArgument,
			errors.Newf("speed factor must be positive, got %v", speedFactor))
	}

	if err := src.ResetPosition(); err != nil {
		return nil, errors.Attach(errors.ErrFileReadFailed, err)
	}

	format := DetectFormat(src.Filename, src.ContentType)
	s.logger.Infow("audio received",
		"filename", src.Filename,
		"format", format,
		"size_kb", src.SizeKB())

	// The branch decision is made once here and never re-evaluated.
	if UseFastPath(format, speedFactor, src.Size) {
		s.logger.Infow("using m4a fast path, skipping re-encode")
		return s.transcribeDirect(ctx, src)
	}

	decoded, err := s.decode(ctx, src, format)
	if err != nil {
		return nil, err
	}

	decoded, err = s.applySpeed(ctx, decoded, speedFactor)
	if err != nil {
		return nil, err
	}

	chunkMs := s.chunkMs
	if chunkMs <= 0 {
		chunkMs = ChunkDuration(decoded.DurationMs())
	}
	segments := Split(decoded, chunkMs)
	s.logger.Infow("processing segments",
		"count", len(segments),
		"chunk_seconds", float64(chunkMs)/1000)

	pairs, err := s.processSegmentsConcurrently(ctx, segments, format)
	if err != nil {
		return nil, err
	}
	return Assemble(pairs), nil
}

func (s *AudioSense) decode(ctx context.Context, src *SourceFile, format audio.Format) (*audio.PCM, error) {
	defer s.steps.Track("decode")()
	return s.loader.Load(ctx, src, format)
}

func (s *AudioSense) applySpeed(ctx context.Context, decoded *audio.PCM, factor float64) (*audio.PCM, error) {
	if factor == 1.0 {
		return decoded, nil
	}
	defer s.steps.Track("speed")()
	return s.speed.Apply(ctx, decoded, factor)
}

// transcribeDirect submits the original bytes verbatim as a single segment.
func (s *AudioSense) transcribeDirect(ctx context.Context, src *SourceFile) ([]model.Transcription, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Attach(errors.ErrFileReadFailed, err)
	}

	filename := src.Filename
	if filename == "" {
		filename = "audio.m4a"
	}
	chunk := model.EncodedChunk{
		Index:       0,
		Data:        data,
		Filename:    filename,
		ContentType: "audio/m4a",
	}

	segCtx, cancel := s.segmentContext(ctx)
	defer cancel()

	defer s.steps.Track("transcribe")()
	result, err := s.transcriber.Transcribe(segCtx, chunk)
	if err != nil {
		return nil, err
	}
	segmentsTranscribed.Inc()
	if s.onSegmentDone != nil {
		s.onSegmentDone(1, 1)
	}
	return []model.Transcription{result}, nil
}

// processSegmentsConcurrently fans out one task per segment, each capturing
// its ordinal index before dispatch, and joins on all of them. Completion
// order is unconstrained; ordering is restored later by Assemble. The first
// error cancels every in-flight segment.
func (s *AudioSense) processSegmentsConcurrently(ctx context.Context, segments []Segment, format audio.Format) ([]IndexedTranscription, error) {
	defer s.steps.Track("transcribe")()

	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	pairs := make([]IndexedTranscription, 0, len(segments))
	completed := 0

	for _, seg := range segments {
		seg := seg
		g.Go(func() error {
			segCtx, cancel := s.segmentContext(ctx)
			defer cancel()

			chunk, exportFormat, bitrate, err := s.exporter.Export(segCtx, seg, format)
			if err != nil {
				return err
			}

			result, err := s.transcriber.Transcribe(segCtx, chunk)
			if err != nil {
				return err
			}
			segmentsTranscribed.Inc()

			s.logger.Debugw("segment transcribed",
				"segment", seg.Index,
				"codec", exportFormat,
				"bitrate", bitrate)

			mu.Lock()
			pairs = append(pairs, IndexedTranscription{Index: seg.Index, Transcription: result})
			completed++
			done := completed
			mu.Unlock()

			if s.onSegmentDone != nil {
				s.onSegmentDone(done, len(segments))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (s *AudioSense) segmentContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.segmentTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.segmentTimeout)
}
