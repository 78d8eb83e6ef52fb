package sense

import (
	"context"

	"audiosense/internal/app/audio"
	"audiosense/internal/app/errors"
)

// SpeedModifier optionally time-compresses decoded audio before transcription
// to cut upstream processing cost. The transform is pitch-preserving.
type SpeedModifier struct {
	codec *audio.FFmpeg
}

// NewSpeedModifier creates a SpeedModifier.
func NewSpeedModifier(codec *audio.FFmpeg) *SpeedModifier {
	return &SpeedModifier{codec: codec}
}

// Apply returns the audio sped up by factor. A factor of exactly 1.0 is the
// identity: the input is returned unchanged without a re-encode. Non-positive
// factors are rejected.
func (m *SpeedModifier) Apply(ctx context.Context, p *audio.PCM, factor float64) (*audio.PCM, error) {
	if factor <= 0 {
		return nil, errors.Attach(errors.ErrInvalidArgument,
			errors.Newf("speed factor must be positive, got %v", factor))
	}
	if factor == 1.0 {
		return p, nil
	}

	out, err := m.codec.Atempo(ctx, p, factor)
	if err != nil {
		return nil, errors.Wrapf(err, "speed modification x%v failed", factor)
	}
	return out, nil
}
