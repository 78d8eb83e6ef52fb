package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes an external command and returns its stdout. Extracted so
// tests can substitute a fake in place of a real ffmpeg binary.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s error: %v, stderr: %s", name, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// FFmpeg decodes, encodes and probes audio by invoking the ffmpeg/ffprobe
// binaries. Safe for concurrent use; every call spawns its own process.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	runner      Runner
}

// NewFFmpeg creates an FFmpeg wrapper. Empty paths fall back to looking up
// "ffmpeg" and "ffprobe" on PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	return NewFFmpegWithRunner(ffmpegPath, ffprobePath, execRunner{})
}

// NewFFmpegWithRunner creates an FFmpeg wrapper with a custom process runner.
func NewFFmpegWithRunner(ffmpegPath, ffprobePath string, runner Runner) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath, runner: runner}
}

// pcmOutputArgs emit normalized s16le PCM on stdout.
var pcmOutputArgs = []string{
	"-vn",
	"-f", "s16le",
	"-acodec", "pcm_s16le",
	"-ar", strconv.Itoa(SampleRate),
	"-ac", strconv.Itoa(Channels),
	"pipe:1",
}

// pcmInputArgs describe normalized s16le PCM arriving on stdin.
var pcmInputArgs = []string{
	"-f", "s16le",
	"-ar", strconv.Itoa(SampleRate),
	"-ac", strconv.Itoa(Channels),
	"-i", "pipe:0",
}

// DecodePipe decodes audio read from r into normalized PCM, forcing the
// demuxer that matches the detected format. Container formats that keep their
// index at the end of the file (mp4 family) routinely fail here; callers fall
// back to DecodeFile for those.
func (f *FFmpeg) DecodePipe(ctx context.Context, r io.Reader, format Format) (*PCM, error) {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", DemuxerName(format),
		"-i", "pipe:0",
	}
	args = append(args, pcmOutputArgs...)

	out, err := f.runner.Run(ctx, r, f.ffmpegPath, args...)
	if err != nil {
		return nil, err
	}
	return NewPCM(out), nil
}

// DecodeFile decodes audio from a file on disk into normalized PCM, letting
// ffmpeg sniff the container itself.
func (f *FFmpeg) DecodeFile(ctx context.Context, path string) (*PCM, error) {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", path,
	}
	args = append(args, pcmOutputArgs...)

	out, err := f.runner.Run(ctx, nil, f.ffmpegPath, args...)
	if err != nil {
		return nil, err
	}
	return NewPCM(out), nil
}

// muxerArgs maps an export container to its muxer and codec flags. The mp4
// muxer needs fragmented output to write to a non-seekable pipe.
var muxerArgs = map[string][]string{
	"ogg": {"-f", "ogg", "-acodec", "libopus"},
	"mp4": {"-f", "mp4", "-movflags", "+frag_keyframe+empty_moov", "-acodec", "aac"},
	"mp3": {"-f", "mp3", "-acodec", "libmp3lame"},
	"wav": {"-f", "wav", "-acodec", "pcm_s16le"},
}

// Encode re-encodes normalized PCM into the given container at the given
// bitrate (e.g. "64k") and returns the encoded bytes.
func (f *FFmpeg) Encode(ctx context.Context, p *PCM, container, bitrate string) ([]byte, error) {
	codec, ok := muxerArgs[container]
	if !ok {
		return nil, fmt.Errorf("unsupported export container: %s", container)
	}

	args := []string{"-hide_banner", "-loglevel", "error"}
	args = append(args, pcmInputArgs...)
	args = append(args, codec...)
	if bitrate != "" {
		args = append(args, "-b:a", bitrate)
	}
	args = append(args, "pipe:1")

	return f.runner.Run(ctx, bytes.NewReader(p.Data()), f.ffmpegPath, args...)
}

// Atempo applies a pitch-preserving tempo change to normalized PCM. The
// atempo filter accepts 0.5-2.0 per stage, so larger factors are chained.
func (f *FFmpeg) Atempo(ctx context.Context, p *PCM, factor float64) (*PCM, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("atempo factor must be positive, got %v", factor)
	}

	args := []string{"-hide_banner", "-loglevel", "error"}
	args = append(args, pcmInputArgs...)
	args = append(args, "-filter:a", atempoChain(factor))
	args = append(args,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"pipe:1",
	)

	out, err := f.runner.Run(ctx, bytes.NewReader(p.Data()), f.ffmpegPath, args...)
	if err != nil {
		return nil, err
	}
	return NewPCM(out), nil
}

// atempoChain decomposes a tempo factor into atempo stages within the filter's
// 0.5-2.0 range.
func atempoChain(factor float64) string {
	var stages []string
	for factor > 2.0 {
		stages = append(stages, "atempo=2.0")
		factor /= 2.0
	}
	for factor < 0.5 {
		stages = append(stages, "atempo=0.5")
		factor /= 0.5
	}
	stages = append(stages, fmt.Sprintf("atempo=%s", strconv.FormatFloat(factor, 'f', -1, 64)))
	return strings.Join(stages, ",")
}

// ProbeDuration returns the duration of an audio file in seconds.
func (f *FFmpeg) ProbeDuration(ctx context.Context, path string) (float64, error) {
	out, err := f.runner.Run(ctx, nil, f.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	if err != nil {
		return 0, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(duration) || duration < 0 {
		return 0, fmt.Errorf("ffprobe returned invalid duration: %q", strings.TrimSpace(string(out)))
	}
	return duration, nil
}
