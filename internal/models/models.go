package models

// Request structs

// InfoRequest carries the query parameters of /api/info and /api/formats.
type InfoRequest struct {
	URL string `form:"url" binding:"required"`
}

// AudioRequest carries the query parameters of /api/audio. Quality selects
// the source stream (low picks the lowest available audio bitrate; medium and
// high both pick the highest), Bitrate the MP3 output bitrate in kbit/s.
type AudioRequest struct {
	URL     string `form:"url" binding:"required"`
	Quality string `form:"quality,default=high" binding:"omitempty,oneof=low medium high"`
	Bitrate int    `form:"bitrate,default=192" binding:"omitempty,min=32,max=320"`
}

// VideoRequest carries the query parameters of /api/video. Unrecognized
// quality labels fall back to the highest available format.
type VideoRequest struct {
	URL     string `form:"url" binding:"required"`
	Quality string `form:"quality,default=360p"`
}

// StudioRequest carries the query parameters of /api/studio.
type StudioRequest struct {
	URL string `form:"url" binding:"required"`
}

// SearchRequest carries the query parameters of /api/search.
type SearchRequest struct {
	Query string `form:"q" binding:"required,min=2"`
	Limit int    `form:"limit,default=10" binding:"omitempty,min=1,max=50"`
}

// Response structs

type StatusResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

type VideoInfoResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Duration     int                  `json:"duration"`
	DurationText string               `json:"duration_text"`
	Thumbnail    string               `json:"thumbnail,omitempty"`
	Channel      string               `json:"channel"`
	Views        int                  `json:"views"`
	AudioFormats []AudioFormatSummary `json:"audio_formats"`
	VideoFormats []VideoFormatSummary `json:"video_formats"`
}

type AudioFormatSummary struct {
	Itag     int    `json:"itag"`
	MimeType string `json:"mime_type"`
	Bitrate  int    `json:"bitrate"`
	Size     string `json:"size,omitempty"`
}

type VideoFormatSummary struct {
	Itag     int    `json:"itag"`
	MimeType string `json:"mime_type"`
	Quality  string `json:"quality"`
	FPS      int    `json:"fps,omitempty"`
	Size     string `json:"size,omitempty"`
}

// FormatDetail is the full projection of one stream descriptor, including
// the (ephemeral, signed) direct source URL for out-of-band fetching.
type FormatDetail struct {
	Itag          int    `json:"itag"`
	Kind          string `json:"kind"`
	MimeType      string `json:"mime_type"`
	Quality       string `json:"quality,omitempty"`
	Bitrate       int    `json:"bitrate"`
	FPS           int    `json:"fps,omitempty"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	AudioChannels int    `json:"audio_channels,omitempty"`
	ContentLength int64  `json:"content_length,omitempty"`
	Size          string `json:"size,omitempty"`
	URL           string `json:"url,omitempty"`
}

type FormatsResponse struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Formats []FormatDetail `json:"formats"`
}

type SearchResponse struct {
	Query   string        `json:"query"`
	Results []interface{} `json:"results"`
	Message string        `json:"message"`
}
