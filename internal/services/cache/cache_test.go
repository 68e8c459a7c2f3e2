package cache

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytgate/ytgate/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(&config.CacheConfig{
		Dir:           t.TempDir(),
		Retention:     6 * time.Hour,
		SweepInterval: time.Hour,
	})
	require.NoError(t, err)

	return m
}

func TestKeyFilename(t *testing.T) {
	key := Key{Kind: "audio", VideoID: "dQw4w9WgXcQ", Quality: "high", Bitrate: 192}
	assert.Equal(t, "audio_dQw4w9WgXcQ_high_192.mp3", key.Filename())

	// Same key, same path: one file per key at most.
	m := newTestManager(t)
	assert.Equal(t, m.Path(key), m.Path(key))
}

func TestLookup(t *testing.T) {
	m := newTestManager(t)
	key := Key{Kind: "audio", VideoID: "dQw4w9WgXcQ", Quality: "high", Bitrate: 192}

	_, ok := m.Lookup(key)
	assert.False(t, ok, "lookup should miss on an empty cache")

	require.NoError(t, os.WriteFile(m.Path(key), []byte("mp3 bytes"), 0o644))

	path, ok := m.Lookup(key)
	assert.True(t, ok)
	assert.Equal(t, m.Path(key), path)
}

func TestWriteThroughFeedsBothSinks(t *testing.T) {
	m := newTestManager(t)
	key := Key{Kind: "audio", VideoID: "abc123def45", Quality: "high", Bitrate: 192}

	payload := strings.Repeat("mp3 frame ", 10000)
	var response bytes.Buffer

	written, err := m.WriteThrough(context.Background(), key, strings.NewReader(payload), &response)
	require.NoError(t, err)

	assert.Equal(t, int64(len(payload)), written)
	assert.Equal(t, payload, response.String())

	cached, err := os.ReadFile(m.Path(key))
	require.NoError(t, err)
	assert.Equal(t, payload, string(cached))
}

// failWriter simulates a client that disconnected mid-stream.
type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestWriteThroughFinishesAfterClientDisconnect(t *testing.T) {
	m := newTestManager(t)
	key := Key{Kind: "audio", VideoID: "abc123def45", Quality: "high", Bitrate: 128}

	payload := strings.Repeat("x", 64*1024)

	written, err := m.WriteThrough(context.Background(), key, strings.NewReader(payload), failWriter{})
	require.NoError(t, err, "a gone client must not fail the cache write")
	assert.Equal(t, int64(len(payload)), written)

	cached, err := os.ReadFile(m.Path(key))
	require.NoError(t, err)
	assert.Len(t, cached, len(payload), "cache file must be complete")
}

// brokenReader emits some bytes, then fails.
type brokenReader struct {
	emitted bool
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if !r.emitted {
		r.emitted = true
		return copy(p, []byte("partial mp3 data")), nil
	}
	return 0, errors.New("transcode pipeline broke")
}

func TestWriteThroughRemovesPartialFileOnSourceError(t *testing.T) {
	m := newTestManager(t)
	key := Key{Kind: "audio", VideoID: "abc123def45", Quality: "low", Bitrate: 192}

	var response bytes.Buffer
	_, err := m.WriteThrough(context.Background(), key, &brokenReader{}, &response)
	require.Error(t, err)

	_, statErr := os.Stat(m.Path(key))
	assert.True(t, os.IsNotExist(statErr), "no partial file may remain at the key path")

	_, ok := m.Lookup(key)
	assert.False(t, ok)
}

func TestSweepEvictsExpiredEntries(t *testing.T) {
	m := newTestManager(t)

	oldKey := Key{Kind: "audio", VideoID: "oldoldold12", Quality: "high", Bitrate: 192}
	freshKey := Key{Kind: "audio", VideoID: "freshfresh1", Quality: "high", Bitrate: 192}

	require.NoError(t, os.WriteFile(m.Path(oldKey), []byte("stale"), 0o644))
	require.NoError(t, os.WriteFile(m.Path(freshKey), []byte("fresh"), 0o644))

	expired := time.Now().Add(-7 * time.Hour)
	require.NoError(t, os.Chtimes(m.Path(oldKey), expired, expired))

	m.Sweep(context.Background())

	_, ok := m.Lookup(oldKey)
	assert.False(t, ok, "expired entry must be reaped")

	_, ok = m.Lookup(freshKey)
	assert.True(t, ok, "fresh entry must survive the sweep")
}

func TestSweepToleratesForeignFiles(t *testing.T) {
	m := newTestManager(t)

	// A subdirectory must be skipped, not deleted or fatal.
	require.NoError(t, os.Mkdir(filepath.Join(m.dir, "nested"), 0o755))

	m.Sweep(context.Background())

	_, err := os.Stat(filepath.Join(m.dir, "nested"))
	assert.NoError(t, err)
}

func TestRemoveToleratesMissingFile(t *testing.T) {
	m := newTestManager(t)
	assert.True(t, m.remove(context.Background(), filepath.Join(m.dir, "never-existed.mp3")))
}

func TestSweeperStartStop(t *testing.T) {
	m, err := NewManager(&config.CacheConfig{
		Dir:           t.TempDir(),
		Retention:     time.Hour,
		SweepInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	m.StartSweeper()
	time.Sleep(30 * time.Millisecond)
	m.Stop()
}

var _ io.Reader = (*brokenReader)(nil)
