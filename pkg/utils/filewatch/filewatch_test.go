package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/opst/hbnb/pkg/utils/filewatch"
)

// watch starts OnModify and returns a channel receiving events.
func watch(t *testing.T, path string) <-chan fsnotify.Event {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan fsnotify.Event, 16)
	done := make(chan error, 1)
	go func() {
		done <- filewatch.OnModify(ctx, path, func(ev fsnotify.Event) { events <- ev })
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	// let the watcher start.
	time.Sleep(100 * time.Millisecond)
	return events
}

func expectEvent(t *testing.T, events <-chan fsnotify.Event) {
	t.Helper()
	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no events are notified")
	}
}

func TestOnModify(t *testing.T) {
	t.Run("when the watched file is created, it calls handler", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.json")
		events := watch(t, file)

		if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		expectEvent(t, events)
	})

	t.Run("when the watched file is written, it calls handler", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.json")
		if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		events := watch(t, file)

		if err := os.WriteFile(file, []byte(`{"a": 1}`), 0644); err != nil {
			t.Fatal(err)
		}
		expectEvent(t, events)
	})

	t.Run("when another file is renamed onto the watched file, it calls handler", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "file.json")
		if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		events := watch(t, file)

		tmp := filepath.Join(dir, ".file.json.tmp")
		if err := os.WriteFile(tmp, []byte(`{"a": 1}`), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Rename(tmp, file); err != nil {
			t.Fatal(err)
		}
		expectEvent(t, events)
	})

	t.Run("when the watched file is removed, it calls handler", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.json")
		if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		events := watch(t, file)

		if err := os.Remove(file); err != nil {
			t.Fatal(err)
		}
		expectEvent(t, events)
	})

	t.Run("when other files are modified, it does not call handler", func(t *testing.T) {
		dir := t.TempDir()
		events := watch(t, filepath.Join(dir, "file.json"))

		if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		select {
		case ev := <-events:
			t.Errorf("unexpected event: %v", ev)
		case <-time.After(300 * time.Millisecond):
		}
	})
}

func TestOnModify_MissingDirectory(t *testing.T) {
	err := filewatch.OnModify(
		context.Background(),
		filepath.Join(t.TempDir(), "no", "such", "file.json"),
		func(fsnotify.Event) {},
	)
	if err == nil {
		t.Error("expected error, but got nil")
	}
}
