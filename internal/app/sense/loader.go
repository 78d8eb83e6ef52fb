package sense

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"audiosense/internal/app/audio"
	"audiosense/internal/app/errors"
)

// Loader decodes an uploaded stream into in-memory PCM. It tries a direct
// pipe decode first and falls back to a temporary file, since some containers
// (mp4 family in particular) cannot be demuxed from a non-seekable pipe.
type Loader struct {
	codec  *audio.FFmpeg
	logger *zap.SugaredLogger
}

// NewLoader creates a Loader.
func NewLoader(codec *audio.FFmpeg, logger *zap.Logger) *Loader {
	return &Loader{codec: codec, logger: logger.Sugar()}
}

// Load decodes the source into normalized PCM using the detected format as a
// demuxer hint. A decode error is returned only when both the direct and the
// temp-file path fail.
func (l *Loader) Load(ctx context.Context, src *SourceFile, format audio.Format) (*audio.PCM, error) {
	decoded, directErr := l.codec.DecodePipe(ctx, src, format)
	if directErr == nil {
		return decoded, nil
	}

	l.logger.Debugw("direct decode failed, falling back to temporary file",
		"format", format, "error", directErr)

	if err := src.ResetPosition(); err != nil {
		return nil, errors.Attach(errors.ErrDecode, err)
	}
	return l.loadViaTempFile(ctx, src, format, directErr)
}

// loadViaTempFile persists the stream to a uniquely-named temporary file and
// lets ffmpeg sniff the container from disk. The file is removed on every
// exit path, including a failed decode.
func (l *Loader) loadViaTempFile(ctx context.Context, src *SourceFile, format audio.Format, directErr error) (*audio.PCM, error) {
	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("audiosense-%s.%s", uuid.NewString(), format))

	f, err := os.Create(tempPath)
	if err != nil {
		return nil, errors.Attach(errors.ErrDecode, err)
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			l.logger.Warnw("failed to remove temporary audio file", "path", tempPath, "error", err)
		}
	}()

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return nil, errors.Attach(errors.ErrDecode, err)
	}
	if err := f.Close(); err != nil {
		return nil, errors.Attach(errors.ErrDecode, err)
	}

	decoded, err := l.codec.DecodeFile(ctx, tempPath)
	if err != nil {
		return nil, errors.Attachf(errors.ErrDecode, err,
			"fallback decode failed (direct decode error: %v)", directErr)
	}
	return decoded, nil
}
