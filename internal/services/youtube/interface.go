package youtube

import (
	"context"
	"io"
	"time"
)

// YouTubeClient interface for YouTube operations
type YouTubeClient interface {
	// ParseVideoID extracts the canonical 11-character video ID from a URL
	// or a bare ID string
	ParseVideoID(input string) (string, error)

	// GetVideoInfo retrieves video metadata and the projected format list
	GetVideoInfo(ctx context.Context, videoID string) (*VideoMetadata, error)

	// GetAudioStream opens the source audio stream for the requested quality
	GetAudioStream(ctx context.Context, videoID string, quality string) (io.ReadCloser, *StreamFormat, error)

	// GetVideoStream opens a muxed video stream matching the quality label
	GetVideoStream(ctx context.Context, videoID string, quality string) (io.ReadCloser, *StreamFormat, error)
}

// VideoMetadata contains YouTube video metadata
type VideoMetadata struct {
	ID           string
	Title        string
	Author       string
	Duration     time.Duration
	Views        int
	ThumbnailURL string
	Formats      []StreamFormat
}

// StreamFormat is the projection of one retrievable media variant.
type StreamFormat struct {
	Itag          int
	Kind          string // audio, video or muxed
	MimeType      string
	Quality       string
	Bitrate       int
	FPS           int
	Width         int
	Height        int
	AudioChannels int
	ContentLength int64
	URL           string
}

// AudioFormats returns the audio-only descriptors.
func (m *VideoMetadata) AudioFormats() []StreamFormat {
	return m.formatsOfKind(KindAudio)
}

// VideoFormats returns the video-only and muxed descriptors.
func (m *VideoMetadata) VideoFormats() []StreamFormat {
	formats := m.formatsOfKind(KindVideo)
	return append(formats, m.formatsOfKind(KindMuxed)...)
}

func (m *VideoMetadata) formatsOfKind(kind string) []StreamFormat {
	var formats []StreamFormat
	for _, f := range m.Formats {
		if f.Kind == kind {
			formats = append(formats, f)
		}
	}
	return formats
}
