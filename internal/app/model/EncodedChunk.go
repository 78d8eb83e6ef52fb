package model

// EncodedChunk is one encoded audio segment ready for upload: raw bytes plus
// the synthetic filename/MIME pair the remote service expects. Index is the
// segment's 0-based position in the original chronological order.
type EncodedChunk struct {
	Index       int
	Data        []byte
	Filename    string
	ContentType string
}
