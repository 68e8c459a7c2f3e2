package transcode

import (
	"context"
	"io"
)

// Options configures one transcode run.
type Options struct {
	// Bitrate is the MP3 output bitrate in kbit/s.
	Bitrate int
	// Filters is an optional ffmpeg -af chain applied to the audio.
	Filters []string
}

// StudioFilters is the fixed enhancement chain used by the studio endpoint:
// gain boost, resample to 48kHz, high-pass at 80Hz, low-pass at 16kHz, and a
// final resample with async drift correction.
var StudioFilters = []string{
	"volume=1.5",
	"aresample=48000",
	"highpass=f=80",
	"lowpass=f=16000",
	"aresample=async=1",
}

// Transcoder converts a raw audio byte stream to MP3.
type Transcoder interface {
	// Transcode starts the conversion and returns the output stream. A
	// pipeline failure surfaces as an error on Read; Close reaps the
	// underlying process.
	Transcode(ctx context.Context, input io.Reader, opts Options) (io.ReadCloser, error)
}
