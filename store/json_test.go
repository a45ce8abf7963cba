package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	j := NewJSONFile(path)

	snap := testSnapshot(t)
	if err := j.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := j.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Password hashes are deliberately dropped by the JSON encoding.
	snap.Persons[0].PasswordHash = ""
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip changed the snapshot:\ngot  %+v\nwant %+v", got, snap)
	}
}

func TestJSONFileOmitsPasswordHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	j := NewJSONFile(path)
	snap := testSnapshot(t)
	hash := snap.Persons[0].PasswordHash
	if hash == "" {
		t.Fatalf("fixture has no password hash")
	}
	if err := j.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), hash) {
		t.Fatalf("snapshot file leaks the password hash")
	}
}

func TestJSONFileLoadMissing(t *testing.T) {
	j := NewJSONFile(filepath.Join(t.TempDir(), "absent.json"))
	got, err := j.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "Library" || len(got.Authors) != 0 {
		t.Fatalf("missing file should yield an empty snapshot, got %+v", got)
	}
}

func TestJSONFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	j := NewJSONFile(path)
	if err := j.Save(testSnapshot(t)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := j.Save(testSnapshot(t)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}
