package audio

// Format defines supported source audio formats
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatMP4  Format = "mp4"
	FormatM4A  Format = "m4a"
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
	FormatOGG  Format = "ogg"
	FormatWEBM Format = "webm"
)

// SupportedFormats lists every format the pipeline recognizes from a filename
// extension, in no particular order.
var SupportedFormats = []Format{
	FormatMP3, FormatMP4, FormatM4A, FormatWAV, FormatFLAC, FormatOGG, FormatWEBM,
}

// demuxerNames maps a detected format to the ffmpeg demuxer to force when
// decoding from a pipe. mp4-family and webm use their multi-name demuxers.
var demuxerNames = map[Format]string{
	FormatMP3:  "mp3",
	FormatMP4:  "mov,mp4,m4a,3gp,3g2,mj2",
	FormatM4A:  "mov,mp4,m4a,3gp,3g2,mj2",
	FormatWAV:  "wav",
	FormatFLAC: "flac",
	FormatOGG:  "ogg",
	FormatWEBM: "matroska,webm",
}

// DemuxerName returns the ffmpeg demuxer name for a format, or the format
// itself when no mapping exists.
func DemuxerName(f Format) string {
	if name, ok := demuxerNames[f]; ok {
		return name
	}
	return string(f)
}
