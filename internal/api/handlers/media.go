package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/services/youtube"
	"github.com/ytgate/ytgate/internal/utils"
)

// maxVideoFormatSummaries bounds the video format list on /api/info; the
// full list stays available on /api/formats.
const maxVideoFormatSummaries = 5

type MediaHandler struct {
	youtube youtube.YouTubeClient
	timeout time.Duration
}

func NewMediaHandler(yt youtube.YouTubeClient, timeout time.Duration) *MediaHandler {
	return &MediaHandler{
		youtube: yt,
		timeout: timeout,
	}
}

// Info godoc
// @Summary Get video metadata
// @Description Resolve a YouTube URL or video ID and return title, duration, thumbnail, channel, view count and format summaries
// @Tags media
// @Produce json
// @Param url query string true "YouTube URL or 11-character video ID"
// @Success 200 {object} models.VideoInfoResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/info [get]
func (h *MediaHandler) Info(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.InfoRequest
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

	seconds := int(info.Duration.Seconds())

	response := models.VideoInfoResponse{
		ID:           info.ID,
		Title:        info.Title,
		Duration:     seconds,
		DurationText: utils.FormatDuration(seconds),
		Thumbnail:    info.ThumbnailURL,
		Channel:      info.Author,
		Views:        info.Views,
		AudioFormats: []models.AudioFormatSummary{},
		VideoFormats: []models.VideoFormatSummary{},
	}

	for _, f := range info.AudioFormats() {
		response.AudioFormats = append(response.AudioFormats, models.AudioFormatSummary{
			Itag:     f.Itag,
			MimeType: f.MimeType,
			Bitrate:  f.Bitrate,
			Size:     sizeText(f.ContentLength),
		})
	}

	for _, f := range info.VideoFormats() {
		if len(response.VideoFormats) >= maxVideoFormatSummaries {
			break
		}
		response.VideoFormats = append(response.VideoFormats, models.VideoFormatSummary{
			Itag:     f.Itag,
			MimeType: f.MimeType,
			Quality:  f.Quality,
			FPS:      f.FPS,
			Size:     sizeText(f.ContentLength),
		})
	}

	c.JSON(http.StatusOK, response)
}

// Formats godoc
// @Summary List all stream formats
// @Description Return the full, unfiltered list of stream descriptors including direct source URLs
// @Tags media
// @Produce json
// @Param url query string true "YouTube URL or 11-character video ID"
// @Success 200 {object} models.FormatsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/formats [get]
func (h *MediaHandler) Formats(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.InfoRequest
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
		utils.LogError(ctx, "Failed to fetch video formats", err, utils.Fields{
			"video_id": videoID,
		})
		errorResponse(c, utils.NewExtractorError(err))
		return
	}

	response := models.FormatsResponse{
		ID:      info.ID,
		Title:   info.Title,
		Formats: make([]models.FormatDetail, 0, len(info.Formats)),
	}

	for _, f := range info.Formats {
		response.Formats = append(response.Formats, models.FormatDetail{
			Itag:          f.Itag,
			Kind:          f.Kind,
			MimeType:      f.MimeType,
			Quality:       f.Quality,
			Bitrate:       f.Bitrate,
			FPS:           f.FPS,
			Width:         f.Width,
			Height:        f.Height,
			AudioChannels: f.AudioChannels,
			ContentLength: f.ContentLength,
			Size:          sizeText(f.ContentLength),
			URL:           f.URL,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Video godoc
// @Summary Stream a video
// @Description Stream a muxed MP4 matching the requested quality label directly to the client, no caching or transcoding
// @Tags media
// @Produce video/mp4
// @Param url query string true "YouTube URL or 11-character video ID"
// @Param quality query string false "144p/240p/360p/480p/720p/1080p, default 360p; unrecognized labels select the highest available"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/video [get]
func (h *MediaHandler) Video(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.VideoRequest
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

	stream, format, err := h.youtube.GetVideoStream(ctx, videoID, req.Quality)
	if err != nil {
		if errors.Is(err, youtube.ErrNoMatchingFormat) {
			errorResponse(c, utils.NewFormatNotFoundError(req.Quality))
			return
		}
		utils.LogError(ctx, "Failed to open video stream", err, utils.Fields{
			"video_id": videoID,
			"quality":  req.Quality,
		})
		errorResponse(c, utils.NewExtractorError(err))
		return
	}
	defer stream.Close()

	filename := utils.SanitizeFilename(info.Title)
	if filename == "" {
		filename = videoID
	}

	c.Header("Content-Type", "video/mp4")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.mp4\"", filename))
	if format.ContentLength > 0 {
		c.Header("Content-Length", strconv.FormatInt(format.ContentLength, 10))
	}

	written, err := io.Copy(c.Writer, stream)
	if err != nil {
		utils.LogError(ctx, "Video stream interrupted", err, utils.Fields{
			"video_id":      videoID,
			"bytes_written": written,
		})
		return
	}

	utils.LogInfo(ctx, "Video streamed", utils.Fields{
		"video_id":      videoID,
		"quality":       format.Quality,
		"bytes_written": written,
	})
}

func sizeText(contentLength int64) string {
	if contentLength <= 0 {
		return ""
	}
	return utils.FormatBytes(contentLength)
}
