// Package cache implements the disk cache for transcoded audio. Entries are
// keyed by {kind, video ID, quality, bitrate}, written once, never updated,
// and reaped by a periodic sweep once older than the retention window.
package cache

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ytgate/ytgate/internal/config"
	"github.com/ytgate/ytgate/internal/utils"
)

// Key uniquely identifies a cached artifact. The deterministic file name is
// derived from the key only, never from user-controlled titles.
type Key struct {
	Kind    string
	VideoID string
	Quality string
	Bitrate int
}

// Filename returns the deterministic cache file name for the key.
func (k Key) Filename() string {
	return fmt.Sprintf("%s_%s_%s_%d.mp3", k.Kind, k.VideoID, k.Quality, k.Bitrate)
}

// Manager owns the cache directory and the background sweep.
type Manager struct {
	dir           string
	retention     time.Duration
	sweepInterval time.Duration
	stop          chan struct{}
	done          chan struct{}
}

// NewManager creates the cache directory if needed.
func NewManager(cfg *config.CacheConfig) (*Manager, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Manager{
		dir:           cfg.Dir,
		retention:     cfg.Retention,
		sweepInterval: cfg.SweepInterval,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}, nil
}

// Path returns the file path a key maps to.
func (m *Manager) Path(key Key) string {
	return filepath.Join(m.dir, key.Filename())
}

// Lookup reports whether a completed entry exists for the key.
func (m *Manager) Lookup(key Key) (string, bool) {
	path := m.Path(key)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// WriteThrough consumes src once and feeds two sinks: the cache file and w.
// Every byte reaches the cache file; bytes reach w only until the first
// write error there (a disconnected client), after which the cache write
// still runs to completion. Any source or file error aborts the populate and
// removes the partial file, so a truncated entry is never served. Returns
// the number of bytes produced by src.
func (m *Manager) WriteThrough(ctx context.Context, key Key, src io.Reader, w io.Writer) (int64, error) {
	path := m.Path(key)

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create cache file: %w", err)
	}

	abort := func(cause error) (int64, error) {
		file.Close()
		m.remove(ctx, path)
		return 0, cause
	}

	var total int64
	clientGone := false
	buf := make([]byte, 32*1024)

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			total += int64(n)

			if _, err := file.Write(buf[:n]); err != nil {
				return abort(fmt.Errorf("failed to write cache file: %w", err))
			}

			if !clientGone {
				if _, err := w.Write(buf[:n]); err != nil {
					// Client is gone; keep populating the cache.
					clientGone = true
					utils.LogWarn(ctx, "Client disconnected mid-stream, finishing cache write", utils.Fields{
						"key": key.Filename(),
					})
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return abort(fmt.Errorf("stream failed mid-transfer: %w", readErr))
		}
	}

	if err := file.Close(); err != nil {
		m.remove(ctx, path)
		return 0, fmt.Errorf("failed to finalize cache file: %w", err)
	}

	return total, nil
}

// StartSweeper launches the periodic eviction pass. It runs until Stop.
func (m *Manager) StartSweeper() {
	go func() {
		defer close(m.done)

		ticker := time.NewTicker(m.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Sweep(context.Background())
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper and waits for it to exit.
func (m *Manager) Stop() {
	close(m.stop)
	<-m.done
}

// Sweep deletes every cache entry older than the retention window. Each file
// is handled independently; one bad file never aborts the pass.
func (m *Manager) Sweep(ctx context.Context) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		utils.LogError(ctx, "Failed to read cache directory", err, utils.Fields{
			"dir": m.dir,
		})
		return
	}

	now := time.Now()
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			utils.LogWarn(ctx, "Failed to stat cache entry, skipping", utils.Fields{
				"entry": entry.Name(),
				"error": err.Error(),
			})
			continue
		}

		if now.Sub(info.ModTime()) <= m.retention {
			continue
		}

		if m.remove(ctx, filepath.Join(m.dir, entry.Name())) {
			removed++
		}
	}

	if removed > 0 {
		utils.LogInfo(ctx, "Cache sweep completed", utils.Fields{
			"removed": removed,
		})
	}
}

// remove deletes a cache file, treating not-found as success.
func (m *Manager) remove(ctx context.Context, path string) bool {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.LogWarn(ctx, "Failed to remove cache file", utils.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return false
	}
	return true
}
