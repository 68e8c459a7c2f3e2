package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/services/cache"
	"github.com/ytgate/ytgate/internal/services/transcode"
	"github.com/ytgate/ytgate/internal/services/youtube"
	"github.com/ytgate/ytgate/internal/utils"
)

const studioBitrate = 320

type AudioHandler struct {
	youtube    youtube.YouTubeClient
	transcoder transcode.Transcoder
	cache      *cache.Manager
	timeout    time.Duration
}

func NewAudioHandler(yt youtube.YouTubeClient, tc transcode.Transcoder, cm *cache.Manager, timeout time.Duration) *AudioHandler {
	return &AudioHandler{
		youtube:    yt,
		transcoder: tc,
		cache:      cm,
		timeout:    timeout,
	}
}

// Audio godoc
// @Summary Download audio as MP3
// @Description Transcode the source audio to MP3 at the requested bitrate. Results are cached on disk; a cache hit is served without any external calls.
// @Tags audio
// @Produce audio/mpeg
// @Param url query string true "YouTube URL or 11-character video ID"
// @Param quality query string false "low/medium/high, default high"
// @Param bitrate query int false "MP3 output bitrate in kbit/s, default 192"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/audio [get]
func (h *AudioHandler) Audio(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.AudioRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		errorResponse(c, utils.NewValidationError("url is required; quality must be low, medium or high; bitrate must be 32-320"))
		return
	}

	videoID, err := h.youtube.ParseVideoID(req.URL)
	if err != nil {
		errorResponse(c, utils.NewInvalidURLError(req.URL))
		return
	}

	key := cache.Key{
		Kind:    youtube.KindAudio,
		VideoID: videoID,
		Quality: req.Quality,
		Bitrate: req.Bitrate,
	}

	// Cache hits are served as-is with no external calls, so the filename
	// falls back to the video ID rather than the title.
	if path, ok := h.cache.Lookup(key); ok {
		utils.LogInfo(ctx, "Audio cache hit", utils.Fields{
			"video_id": videoID,
			"quality":  req.Quality,
			"bitrate":  req.Bitrate,
		})
		c.Header("Content-Type", "audio/mpeg")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.mp3\"", videoID))
		c.File(path)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	info, err := h.youtube.GetVideoInfo(ctx, videoID)
	if err != nil {
		utils.LogError(ctx, "Failed to fetch video metadata", err, utils.Fields{
			"video_id": videoID,
		})
		errorResponse(c, utils.NewExtractorError(err))
		return
	}

	source, _, err := h.youtube.GetAudioStream(ctx, videoID, req.Quality)
	if err != nil {
		utils.LogError(ctx, "Failed to open audio stream", err, utils.Fields{
			"video_id": videoID,
			"quality":  req.Quality,
		})
		errorResponse(c, utils.NewExtractorError(err))
		return
	}
	defer source.Close()

	output, err := h.transcoder.Transcode(ctx, source, transcode.Options{Bitrate: req.Bitrate})
	if err != nil {
		utils.LogError(ctx, "Failed to start transcode", err, utils.Fields{
			"video_id": videoID,
		})
		errorResponse(c, utils.NewTranscodeError(err))
		return
	}
	defer output.Close()

	c.Header("Content-Type", "audio/mpeg")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.mp3\"", audioFilename(info.Title, videoID)))

	written, err := h.cache.WriteThrough(ctx, key, output, c.Writer)
	if err != nil {
		utils.LogError(ctx, "Audio populate failed", err, utils.Fields{
			"video_id": videoID,
			"quality":  req.Quality,
			"bitrate":  req.Bitrate,
		})
		if !c.Writer.Written() {
			errorResponse(c, utils.NewTranscodeError(err))
		}
		return
	}

	utils.LogInfo(ctx, "Audio transcoded and cached", utils.Fields{
		"video_id":      videoID,
		"quality":       req.Quality,
		"bitrate":       req.Bitrate,
		"bytes_written": written,
	})
}

// Studio godoc
// @Summary Download enhanced audio as MP3
// @Description Transcode the highest-quality source audio at 320 kbit/s through the studio enhancement filter chain. Streamed directly, not cached.
// @Tags audio
// @Produce audio/mpeg
// @Param url query string true "YouTube URL or 11-character video ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/studio [get]
func (h *AudioHandler) Studio(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.StudioRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		errorResponse(c, utils.NewValidationError("url query parameter is required"))
		return
	}

	videoID, err := h.youtube.ParseVideoID(req.URL)
	if err != nil {
		errorResponse(c, utils.NewInvalidURLError(req.URL))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	info, err := h.youtube.GetVideoInfo(ctx, videoID)
	if err != nil {
		utils.LogError(ctx, "Failed to fetch video metadata", err, utils.Fields{
			"video_id": videoID,
		})
		errorResponse(c, utils.NewExtractorError(err))
		return
	}

	source, _, err := h.youtube.GetAudioStream(ctx, videoID, "high")
	if err != nil {
		utils.LogError(ctx, "Failed to open audio stream", err, utils.Fields{
			"video_id": videoID,
		})
		errorResponse(c, utils.NewExtractorError(err))
		return
	}
	defer source.Close()

	output, err := h.transcoder.Transcode(ctx, source, transcode.Options{
		Bitrate: studioBitrate,
		Filters: transcode.StudioFilters,
	})
	if err != nil {
		utils.LogError(ctx, "Failed to start studio transcode", err, utils.Fields{
			"video_id": videoID,
		})
		errorResponse(c, utils.NewTranscodeError(err))
		return
	}
	defer output.Close()

	c.Header("Content-Type", "audio/mpeg")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.mp3\"", audioFilename(info.Title, videoID)))

	written, err := io.Copy(c.Writer, output)
	if err != nil {
		utils.LogError(ctx, "Studio stream interrupted", err, utils.Fields{
			"video_id":      videoID,
			"bytes_written": written,
		})
		if !c.Writer.Written() {
			errorResponse(c, utils.NewTranscodeError(err))
		}
		return
	}

	utils.LogInfo(ctx, "Studio audio streamed", utils.Fields{
		"video_id":      videoID,
		"bytes_written": written,
	})
}

func audioFilename(title, videoID string) string {
	name := utils.SanitizeFilename(title)
	if name == "" {
		name = videoID
	}
	return name
}
