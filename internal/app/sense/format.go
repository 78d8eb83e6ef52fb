package sense

import (
	"path/filepath"
	"strings"

	"audiosense/internal/app/audio"
)

// DetectFormat determines the source audio format from the filename extension
// or, failing that, the declared content type. Detection never fails: with no
// usable signal it degrades to mp3, which every downstream decision accepts.
func DetectFormat(filename, contentType string) audio.Format {
	if f, ok := formatFromFilename(filename); ok {
		return f
	}
	if f, ok := formatFromContentType(contentType); ok {
		return f
	}
	return audio.FormatMP3
}

func formatFromFilename(filename string) (audio.Format, bool) {
	if filename == "" {
		return "", false
	}
	suffix := strings.ToLower(filepath.Ext(filename))
	for _, f := range audio.SupportedFormats {
		if suffix == "."+string(f) {
			return f, true
		}
	}
	return "", false
}

func formatFromContentType(contentType string) (audio.Format, bool) {
	if contentType == "" {
		return "", false
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "mp4") || strings.Contains(ct, "m4a"):
		return audio.FormatM4A, true
	case strings.Contains(ct, "mp3"):
		return audio.FormatMP3, true
	case strings.Contains(ct, "wav"):
		return audio.FormatWAV, true
	}
	return "", false
}
