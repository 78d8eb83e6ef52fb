package sense

import (
	"io"
	"os"

	"audiosense/internal/app/errors"
)

// SourceFile is the uploaded-file handle the pipeline consumes: a seekable
// byte stream plus whatever the uploader declared about it. The pipeline reads
// it in a single pass after a position reset and never mutates it.
type SourceFile struct {
	reader      io.ReadSeeker
	Filename    string
	ContentType string
	Size        int64

	// closer is set only for sources the pipeline opened itself; callers who
	// hand in a reader own its lifecycle.
	closer io.Closer
}

// NewSourceFile wraps a seekable stream with its declared metadata. Filename,
// contentType and size may all be zero values.
func NewSourceFile(r io.ReadSeeker, filename, contentType string, size int64) *SourceFile {
	return &SourceFile{
		reader:      r,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}
}

// OpenSourceFile opens a local file as a pipeline source. The caller must
// call Close when the pipeline invocation finishes.
func OpenSourceFile(path string) (*SourceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Attach(errors.ErrFileNotFound, err)
		}
		return nil, errors.Attach(errors.ErrFileReadFailed, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Attach(errors.ErrFileReadFailed, err)
	}

	src := NewSourceFile(f, info.Name(), "", info.Size())
	src.closer = f
	return src, nil
}

// Read implements io.Reader.
func (s *SourceFile) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// ResetPosition rewinds the stream to the start.
func (s *SourceFile) ResetPosition() error {
	_, err := s.reader.Seek(0, io.SeekStart)
	return err
}

// SizeKB returns the declared size in kilobytes for diagnostics.
func (s *SourceFile) SizeKB() float64 {
	return float64(s.Size) / 1024
}

// Close releases the underlying file if this source was opened from disk.
func (s *SourceFile) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
