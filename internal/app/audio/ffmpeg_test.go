package audio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

type stubRunner struct {
	calls []recordedCall
	out   []byte
	err   error
}

func (s *stubRunner) Run(_ context.Context, _ io.Reader, name string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, recordedCall{name: name, args: args})
	return s.out, s.err
}

func (s *stubRunner) lastArgs() []string {
	return s.calls[len(s.calls)-1].args
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestAtempoChain(t *testing.T) {
	tests := []struct {
		factor float64
		want   string
	}{
		{1.5, "atempo=1.5"},
		{2.0, "atempo=2"},
		{3.0, "atempo=2.0,atempo=1.5"},
		{4.0, "atempo=2.0,atempo=2"},
		{5.0, "atempo=2.0,atempo=2.0,atempo=1.25"},
		{0.5, "atempo=0.5"},
		{0.25, "atempo=0.5,atempo=0.5"},
		{0.75, "atempo=0.75"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, atempoChain(tt.factor), "factor %v", tt.factor)
	}
}

func TestDecodePipeForcesDemuxer(t *testing.T) {
	runner := &stubRunner{out: ms(100)}
	f := NewFFmpegWithRunner("", "", runner)

	p, err := f.DecodePipe(context.Background(), strings.NewReader("data"), FormatM4A)
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.DurationMs())

	args := runner.lastArgs()
	assert.Equal(t, "ffmpeg", runner.calls[0].name)
	assert.Equal(t, "mov,mp4,m4a,3gp,3g2,mj2", argAfter(args, "-f"))
	assert.Equal(t, "pipe:0", argAfter(args, "-i"))
	assert.Equal(t, "pipe:1", args[len(args)-1])
	assert.Equal(t, "16000", argAfter(args, "-ar"))
	assert.Equal(t, "1", argAfter(args, "-ac"))
}

func TestDecodeFileSniffsContainer(t *testing.T) {
	runner := &stubRunner{out: ms(50)}
	f := NewFFmpegWithRunner("/opt/ffmpeg", "", runner)

	_, err := f.DecodeFile(context.Background(), "/tmp/in.m4a")
	require.NoError(t, err)

	args := runner.lastArgs()
	assert.Equal(t, "/opt/ffmpeg", runner.calls[0].name)
	assert.Equal(t, "/tmp/in.m4a", argAfter(args, "-i"))
	assert.NotContains(t, args[:2], "-f")
}

func TestEncodeArgs(t *testing.T) {
	runner := &stubRunner{out: []byte("encoded")}
	f := NewFFmpegWithRunner("", "", runner)

	out, err := f.Encode(context.Background(), NewPCM(ms(10)), "ogg", "48k")
	require.NoError(t, err)
	assert.Equal(t, []byte("encoded"), out)

	args := runner.lastArgs()
	assert.Equal(t, "libopus", argAfter(args, "-acodec"))
	assert.Equal(t, "48k", argAfter(args, "-b:a"))
	assert.Equal(t, "pipe:1", args[len(args)-1])
}

func TestEncodeMP4UsesFragmentedMuxer(t *testing.T) {
	runner := &stubRunner{out: []byte("x")}
	f := NewFFmpegWithRunner("", "", runner)

	_, err := f.Encode(context.Background(), NewPCM(ms(10)), "mp4", "64k")
	require.NoError(t, err)
	assert.Equal(t, "+frag_keyframe+empty_moov", argAfter(runner.lastArgs(), "-movflags"))
}

func TestEncodeUnknownContainer(t *testing.T) {
	f := NewFFmpegWithRunner("", "", &stubRunner{})
	_, err := f.Encode(context.Background(), NewPCM(ms(1)), "aiff", "96k")
	assert.Error(t, err)
}

func TestAtempoRejectsNonPositiveFactor(t *testing.T) {
	f := NewFFmpegWithRunner("", "", &stubRunner{})
	_, err := f.Atempo(context.Background(), NewPCM(ms(1)), 0)
	assert.Error(t, err)
}

func TestAtempoAppliesFilter(t *testing.T) {
	runner := &stubRunner{out: ms(500)}
	f := NewFFmpegWithRunner("", "", runner)

	p, err := f.Atempo(context.Background(), NewPCM(ms(1000)), 2.0)
	require.NoError(t, err)
	assert.Equal(t, int64(500), p.DurationMs())
	assert.Equal(t, "atempo=2", argAfter(runner.lastArgs(), "-filter:a"))
}

func TestProbeDuration(t *testing.T) {
	runner := &stubRunner{out: []byte("123.456\n")}
	f := NewFFmpegWithRunner("", "/opt/ffprobe", runner)

	d, err := f.ProbeDuration(context.Background(), "/tmp/in.mp3")
	require.NoError(t, err)
	assert.InDelta(t, 123.456, d, 1e-9)
	assert.Equal(t, "/opt/ffprobe", runner.calls[0].name)
}

func TestProbeDurationMalformedOutput(t *testing.T) {
	runner := &stubRunner{out: []byte("N/A\n")}
	f := NewFFmpegWithRunner("", "", runner)

	_, err := f.ProbeDuration(context.Background(), "/tmp/in.mp3")
	assert.Error(t, err)
}

func TestRunnerErrorPropagates(t *testing.T) {
	runner := &stubRunner{err: errors.New("ffmpeg error: exit status 1")}
	f := NewFFmpegWithRunner("", "", runner)

	_, err := f.DecodePipe(context.Background(), strings.NewReader(""), FormatMP3)
	assert.Error(t, err)
}
