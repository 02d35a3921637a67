package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/quarrydata/tributary/internal/source"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestListRecursiveSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "song_data/A/B/TRB.json", "{}")
	writeFile(t, root, "song_data/A/A/TRA.json", "{}")
	writeFile(t, root, "song_data/A/A/notes.txt", "ignore me")
	writeFile(t, root, "log_data/2018/11/events.json", "{}")

	src, err := New(source.Config{Scheme: "file", Root: root})
	if err != nil {
		t.Fatal(err)
	}

	keys, err := src.List(context.Background(), "song_data")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"song_data/A/A/TRA.json", "song_data/A/B/TRB.json"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("List = %v, want %v", keys, want)
	}
}

func TestListMissingPrefix(t *testing.T) {
	src, err := New(source.Config{Scheme: "file", Root: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	keys, err := src.List(context.Background(), "song_data")
	if err != nil {
		t.Fatal(err)
	}
	if keys != nil {
		t.Fatalf("expected nil keys for missing prefix, got %v", keys)
	}
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "log_data/2018/11/events.json", `{"page":"NextSong"}`)

	src, err := New(source.Config{Scheme: "file", Root: root})
	if err != nil {
		t.Fatal(err)
	}
	r, err := src.Open(context.Background(), "log_data/2018/11/events.json")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"page":"NextSong"}` {
		t.Fatalf("unexpected content: %s", data)
	}
}

func TestNewRejectsMissingRoot(t *testing.T) {
	if _, err := New(source.Config{Scheme: "file"}); err == nil {
		t.Fatal("expected error for empty root")
	}
	if _, err := New(source.Config{Scheme: "file", Root: "/nonexistent/tributary"}); err == nil {
		t.Fatal("expected error for nonexistent root")
	}
}
