package youtube

import (
	"errors"
	"testing"

	"github.com/kkdai/youtube/v2"
)

func TestParseVideoID(t *testing.T) {
	const id = "dQw4w9WgXcQ"

	testCases := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "Bare video ID", input: id},
		{name: "Watch URL", input: "https://www.youtube.com/watch?v=" + id},
		{name: "Watch URL with extra params", input: "https://www.youtube.com/watch?v=" + id + "&t=42s"},
		{name: "Short link", input: "https://youtu.be/" + id},
		{name: "Embed URL", input: "https://www.youtube.com/embed/" + id},
		{name: "Legacy /v/ URL", input: "https://www.youtube.com/v/" + id},
		{name: "Shorts URL", input: "https://www.youtube.com/shorts/" + id},
		{name: "Empty string", input: "", expectError: true},
		{name: "Too short", input: "short", expectError: true},
		{name: "Ten characters", input: "abcdefghij", expectError: true},
		{name: "Unrelated URL", input: "https://example.com/page", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseVideoID(tc.input)
			if tc.expectError {
				if err == nil {
					t.Errorf("ParseVideoID(%q) = %q, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoID(%q) returned error: %v", tc.input, err)
			}
			if got != id {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tc.input, got, id)
			}
		})
	}
}

func testFormats() youtube.FormatList {
	return youtube.FormatList{
		{ItagNo: 139, MimeType: `audio/mp4; codecs="mp4a.40.5"`, Bitrate: 48000, AudioChannels: 2},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130000, AudioChannels: 2},
		{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, Bitrate: 160000, AudioChannels: 2},
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", Height: 360, Bitrate: 500000, AudioChannels: 2},
		{ItagNo: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, QualityLabel: "720p", Height: 720, Bitrate: 2000000, AudioChannels: 2},
		{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p", Height: 1080, Bitrate: 4000000},
	}
}

func TestSelectAudioFormat(t *testing.T) {
	formats := testFormats()

	testCases := []struct {
		name     string
		quality  string
		wantItag int
	}{
		{name: "Low picks lowest bitrate", quality: "low", wantItag: 139},
		{name: "High picks highest bitrate", quality: "high", wantItag: 251},
		{name: "Medium collapses to highest", quality: "medium", wantItag: 251},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			format := selectAudioFormat(formats, tc.quality)
			if format == nil {
				t.Fatal("expected a format, got nil")
			}
			if format.ItagNo != tc.wantItag {
				t.Errorf("selectAudioFormat(%q) picked itag %d, want %d", tc.quality, format.ItagNo, tc.wantItag)
			}
		})
	}
}

func TestSelectAudioFormatNoAudio(t *testing.T) {
	formats := youtube.FormatList{
		{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p"},
	}
	if format := selectAudioFormat(formats, "high"); format != nil {
		t.Errorf("expected nil for a list without audio, got itag %d", format.ItagNo)
	}
}

func TestSelectVideoFormat(t *testing.T) {
	formats := testFormats()

	t.Run("Exact label match", func(t *testing.T) {
		format, err := selectVideoFormat(formats, "720p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if format.ItagNo != 22 {
			t.Errorf("picked itag %d, want 22", format.ItagNo)
		}
	})

	t.Run("Recognized label without match", func(t *testing.T) {
		// 1080p exists only as video-only; no muxed 1080p stream.
		_, err := selectVideoFormat(formats, "1080p")
		if !errors.Is(err, ErrNoMatchingFormat) {
			t.Errorf("expected ErrNoMatchingFormat, got %v", err)
		}
	})

	t.Run("Unrecognized label falls back to highest", func(t *testing.T) {
		format, err := selectVideoFormat(formats, "9999p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if format.ItagNo != 22 {
			t.Errorf("picked itag %d, want 22 (highest muxed)", format.ItagNo)
		}
	})

	t.Run("No muxed formats at all", func(t *testing.T) {
		videoOnly := youtube.FormatList{
			{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p", Height: 1080},
		}
		_, err := selectVideoFormat(videoOnly, "best")
		if !errors.Is(err, ErrNoMatchingFormat) {
			t.Errorf("expected ErrNoMatchingFormat, got %v", err)
		}
	})
}

func TestProjectFormatKinds(t *testing.T) {
	testCases := []struct {
		name     string
		format   youtube.Format
		expected string
	}{
		{
			name:     "Audio only",
			format:   youtube.Format{MimeType: `audio/webm; codecs="opus"`, AudioChannels: 2},
			expected: KindAudio,
		},
		{
			name:     "Muxed",
			format:   youtube.Format{MimeType: `video/mp4; codecs="avc1, mp4a"`, AudioChannels: 2},
			expected: KindMuxed,
		},
		{
			name:     "Video only",
			format:   youtube.Format{MimeType: `video/mp4; codecs="avc1"`},
			expected: KindVideo,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := projectFormat(&tc.format); got.Kind != tc.expected {
				t.Errorf("kind = %q, want %q", got.Kind, tc.expected)
			}
		})
	}
}
