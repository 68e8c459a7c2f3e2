package transcode

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/ytgate/ytgate/internal/config"
)

// FFmpeg runs the ffmpeg binary as a subprocess, reading raw audio from
// stdin and writing MP3 to stdout. No temporary files are written.
type FFmpeg struct {
	path string
	sem  chan struct{}
}

var _ Transcoder = (*FFmpeg)(nil)

// NewFFmpeg creates an ffmpeg-backed transcoder. MaxConcurrent caps the
// number of simultaneous ffmpeg processes.
func NewFFmpeg(cfg *config.FFmpegConfig) *FFmpeg {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	path := cfg.Path
	if path == "" {
		path = "ffmpeg"
	}

	return &FFmpeg{
		path: path,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

func (f *FFmpeg) Transcode(ctx context.Context, input io.Reader, opts Options) (io.ReadCloser, error) {
	if _, err := exec.LookPath(f.path); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	select {
	case f.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	cmd := exec.CommandContext(ctx, f.path, buildArgs(opts)...)
	cmd.Stdin = input

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		<-f.sem
		return nil, fmt.Errorf("failed to open ffmpeg stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		<-f.sem
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	return &processReader{
		stdout:  stdout,
		cmd:     cmd,
		stderr:  &stderr,
		release: func() { <-f.sem },
	}, nil
}

func buildArgs(opts Options) []string {
	bitrate := opts.Bitrate
	if bitrate <= 0 {
		bitrate = 192
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vn",
		"-c:a", "libmp3lame",
		"-b:a", fmt.Sprintf("%dk", bitrate),
	}

	if len(opts.Filters) > 0 {
		args = append(args, "-af", strings.Join(opts.Filters, ","))
	}

	return append(args, "-f", "mp3", "pipe:1")
}

// processReader exposes ffmpeg stdout as a ReadCloser. A non-zero exit is
// reported on the Read that observes EOF, so a mid-stream pipeline failure
// is never mistaken for a clean end of stream.
type processReader struct {
	stdout   io.ReadCloser
	cmd      *exec.Cmd
	stderr   *bytes.Buffer
	waitOnce sync.Once
	waitErr  error
	release  func()
}

func (p *processReader) Read(b []byte) (int, error) {
	n, err := p.stdout.Read(b)
	if err == io.EOF {
		if werr := p.wait(); werr != nil {
			return n, werr
		}
	}
	return n, err
}

func (p *processReader) Close() error {
	p.stdout.Close()
	if p.cmd.Process != nil && p.cmd.ProcessState == nil {
		p.cmd.Process.Kill()
	}
	p.wait()
	return nil
}

func (p *processReader) wait() error {
	p.waitOnce.Do(func() {
		err := p.cmd.Wait()
		p.release()
		if err != nil {
			msg := strings.TrimSpace(p.stderr.String())
			if msg != "" {
				p.waitErr = fmt.Errorf("ffmpeg failed: %w: %s", err, msg)
			} else {
				p.waitErr = fmt.Errorf("ffmpeg failed: %w", err)
			}
		}
	})
	return p.waitErr
}
