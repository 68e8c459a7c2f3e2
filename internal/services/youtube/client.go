package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	gocache "github.com/patrickmn/go-cache"
)

// Stream kinds
const (
	KindAudio = "audio"
	KindVideo = "video"
	KindMuxed = "muxed"
)

// ErrNoMatchingFormat is returned when a recognized quality label has no
// matching stream format.
var ErrNoMatchingFormat = errors.New("no matching stream format")

var (
	videoIDFromURL = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`)
	bareVideoID    = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// knownVideoQualities are the labels /api/video matches exactly; anything
// else falls back to the highest available format.
var knownVideoQualities = map[string]bool{
	"144p": true, "240p": true, "360p": true,
	"480p": true, "720p": true, "1080p": true,
}

type Client struct {
	client     *youtube.Client
	httpClient *http.Client
	meta       *gocache.Cache
}

// NewClient creates a new YouTube client with a short-lived in-memory
// metadata cache in front of the extractor.
func NewClient() *Client {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	ytClient := &youtube.Client{
		HTTPClient: httpClient,
	}

	return &Client{
		client:     ytClient,
		httpClient: httpClient,
		meta:       gocache.New(time.Hour, 10*time.Minute),
	}
}

// ParseVideoID extracts the canonical video ID from a watch URL, short link,
// embed URL, or a bare 11-character ID. Pure function, no network access.
func ParseVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty video reference")
	}

	if matches := videoIDFromURL.FindStringSubmatch(input); len(matches) > 1 {
		return matches[1], nil
	}

	if bareVideoID.MatchString(input) {
		return input, nil
	}

	return "", fmt.Errorf("could not extract video ID from %q", input)
}

func (c *Client) ParseVideoID(input string) (string, error) {
	return ParseVideoID(input)
}

// GetVideoInfo retrieves video metadata, serving repeated lookups from the
// in-memory cache.
func (c *Client) GetVideoInfo(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if cached, found := c.meta.Get(videoID); found {
		if info, ok := cached.(*VideoMetadata); ok {
			return info, nil
		}
	}

	video, err := c.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	info := &VideoMetadata{
		ID:           video.ID,
		Title:        video.Title,
		Author:       video.Author,
		Duration:     video.Duration,
		Views:        video.Views,
		ThumbnailURL: bestThumbnail(video.Thumbnails),
		Formats:      projectFormats(video.Formats),
	}

	c.meta.Set(videoID, info, gocache.DefaultExpiration)

	return info, nil
}

// GetAudioStream opens the source audio stream for the requested quality.
// "low" selects the lowest available audio bitrate; "medium" and "high" both
// select the highest.
func (c *Client) GetAudioStream(ctx context.Context, videoID string, quality string) (io.ReadCloser, *StreamFormat, error) {
	video, err := c.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get video: %w", err)
	}

	format := selectAudioFormat(video.Formats, quality)
	if format == nil {
		return nil, nil, fmt.Errorf("no suitable audio format found")
	}

	stream, _, err := c.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get audio stream: %w", err)
	}

	projected := projectFormat(format)
	return stream, &projected, nil
}

// GetVideoStream opens a muxed stream matching the quality label. A
// recognized label with no matching format returns ErrNoMatchingFormat; an
// unrecognized label falls back to the highest available format.
func (c *Client) GetVideoStream(ctx context.Context, videoID string, quality string) (io.ReadCloser, *StreamFormat, error) {
	video, err := c.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get video: %w", err)
	}

	format, err := selectVideoFormat(video.Formats, quality)
	if err != nil {
		return nil, nil, err
	}

	stream, _, err := c.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get video stream: %w", err)
	}

	projected := projectFormat(format)
	return stream, &projected, nil
}

// selectAudioFormat picks an audio-only format by bitrate.
func selectAudioFormat(formats youtube.FormatList, quality string) *youtube.Format {
	var selected *youtube.Format

	for _, format := range formats {
		if format.MimeType == "" || !strings.Contains(format.MimeType, "audio") {
			continue
		}

		if selected == nil {
			selected = &format
			continue
		}

		if quality == "low" {
			if format.Bitrate < selected.Bitrate {
				selected = &format
			}
		} else if format.Bitrate > selected.Bitrate {
			selected = &format
		}
	}

	return selected
}

// selectVideoFormat picks a muxed format (video with audio channels) by
// quality label.
func selectVideoFormat(formats youtube.FormatList, quality string) (*youtube.Format, error) {
	var best *youtube.Format

	for _, format := range formats {
		if format.MimeType == "" || !strings.Contains(format.MimeType, "video") {
			continue
		}
		if format.AudioChannels == 0 {
			continue
		}

		if knownVideoQualities[quality] && format.QualityLabel == quality {
			return &format, nil
		}

		if best == nil || format.Height > best.Height {
			best = &format
		}
	}

	if knownVideoQualities[quality] {
		return nil, ErrNoMatchingFormat
	}
	if best == nil {
		return nil, ErrNoMatchingFormat
	}

	return best, nil
}

func projectFormats(formats youtube.FormatList) []StreamFormat {
	projected := make([]StreamFormat, 0, len(formats))
	for _, format := range formats {
		projected = append(projected, projectFormat(&format))
	}
	return projected
}

func projectFormat(format *youtube.Format) StreamFormat {
	kind := KindVideo
	switch {
	case strings.Contains(format.MimeType, "audio"):
		kind = KindAudio
	case format.AudioChannels > 0:
		kind = KindMuxed
	}

	quality := format.QualityLabel
	if quality == "" {
		quality = format.Quality
	}

	return StreamFormat{
		Itag:          format.ItagNo,
		Kind:          kind,
		MimeType:      format.MimeType,
		Quality:       quality,
		Bitrate:       format.Bitrate,
		FPS:           format.FPS,
		Width:         format.Width,
		Height:        format.Height,
		AudioChannels: format.AudioChannels,
		ContentLength: format.ContentLength,
		URL:           format.URL,
	}
}

func bestThumbnail(thumbnails youtube.Thumbnails) string {
	var best youtube.Thumbnail
	for _, t := range thumbnails {
		if t.Width >= best.Width {
			best = t
		}
	}
	return best.URL
}
