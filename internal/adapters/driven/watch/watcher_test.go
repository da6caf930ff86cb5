package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create image", "/photos/a.jpg", fsnotify.Create, true},
		{"write image", "/photos/a.PNG", fsnotify.Write, true},
		{"remove image", "/photos/a.jpeg", fsnotify.Remove, true},
		{"rename image", "/photos/a.png", fsnotify.Rename, true},
		{"write and chmod", "/photos/a.png", fsnotify.Write | fsnotify.Chmod, true},
		{"chmod only", "/photos/a.png", fsnotify.Chmod, false},
		{"text file", "/photos/notes.txt", fsnotify.Create, false},
		{"hidden image", "/photos/.a.png", fsnotify.Create, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestNew_DefaultDebounce(t *testing.T) {
	assert.Equal(t, DefaultDebounce, New(0).debounce)
	assert.Equal(t, time.Second, New(time.Second).debounce)
}

func TestWatcher_Watch_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- New(100*time.Millisecond).Watch(ctx, dir, func() { calls.Add(1) })
	}()

	time.Sleep(50 * time.Millisecond)
	for _, name := range []string{"a.png", "b.png", "c.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_Watch_MissingDirectory(t *testing.T) {
	err := New(0).Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), func() {})

	require.Error(t, err)
	assert.Equal(t, domain.KindEnumeration, domain.KindOf(err))
}
