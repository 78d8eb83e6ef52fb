package sense

import (
	"context"

	"go.uber.org/zap"

	"audiosense/internal/app/audio"
	"audiosense/internal/app/errors"
	"audiosense/internal/app/model"
)

// exportFormatBySource maps the detected source format to the cheapest export
// codec the remote service transcribes well. mp3 goes through mp4/aac; all
// other sources go through ogg/opus.
var exportFormatBySource = map[audio.Format]string{
	audio.FormatM4A:  "ogg",
	audio.FormatMP4:  "ogg",
	audio.FormatMP3:  "mp4",
	audio.FormatWAV:  "ogg",
	audio.FormatFLAC: "ogg",
	audio.FormatOGG:  "ogg",
	audio.FormatWEBM: "ogg",
}

// OptimalExportFormat chooses the export codec for a source format. Unknown
// sources export to ogg.
func OptimalExportFormat(source audio.Format) string {
	if f, ok := exportFormatBySource[source]; ok {
		return f
	}
	return "ogg"
}

// OptimalBitrate matches the bitrate to the efficiency of the chosen codec at
// typical speech quality: AAC holds up at 64k, opus at 48k, everything else
// gets 96k headroom.
func OptimalBitrate(source audio.Format) string {
	switch source {
	case audio.FormatM4A, audio.FormatMP4:
		return "64k"
	case audio.FormatOGG:
		return "48k"
	default:
		return "96k"
	}
}

// EstimatedDurationMs estimates audio duration from byte size, assuming
// roughly 1 MiB per 8 minutes at typical speech bitrates.
func EstimatedDurationMs(sizeBytes int64) int64 {
	return int64(float64(sizeBytes) / (1024 * 1024) * 8 * 60 * 1000)
}

// UseFastPath reports whether the source can skip decode/segment/export and
// be submitted verbatim: m4a is already near-optimal for the remote service,
// so a short, unmodified m4a needs no re-encode and no chunking.
func UseFastPath(format audio.Format, speedFactor float64, sizeBytes int64) bool {
	return format == audio.FormatM4A &&
		speedFactor == 1.0 &&
		EstimatedDurationMs(sizeBytes) <= MaxChunkDurationMs
}

// Exporter re-encodes segments into their cost-optimal upload format.
type Exporter struct {
	codec  *audio.FFmpeg
	logger *zap.SugaredLogger
}

// NewExporter creates an Exporter.
func NewExporter(codec *audio.FFmpeg, logger *zap.Logger) *Exporter {
	return &Exporter{codec: codec, logger: logger.Sugar()}
}

// Export encodes one segment using the codec and bitrate selected for the
// detected source format and returns the chunk together with the chosen
// codec/bitrate pair.
func (e *Exporter) Export(ctx context.Context, seg Segment, source audio.Format) (model.EncodedChunk, string, string, error) {
	exportFormat := OptimalExportFormat(source)
	bitrate := OptimalBitrate(source)

	data, err := e.codec.Encode(ctx, seg.Audio, exportFormat, bitrate)
	if err != nil {
		return model.EncodedChunk{}, "", "", errors.Wrapf(err, "export of segment %d to %s failed", seg.Index, exportFormat)
	}

	e.logger.Debugw("segment exported",
		"segment", seg.Index,
		"format", exportFormat,
		"bitrate", bitrate,
		"size_kb", float64(len(data))/1024)

	chunk := model.EncodedChunk{
		Index:       seg.Index,
		Data:        data,
		Filename:    "audio." + exportFormat,
		ContentType: "audio/" + exportFormat,
	}
	return chunk, exportFormat, bitrate, nil
}
