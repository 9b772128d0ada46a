package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasVideoExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"movie.mp4", true},
		{"Movie.MP4", true},
		{"clip.MkV", true},
		{"a.avi", true},
		{"a.mov", true},
		{"a.wmv", true},
		{"a.flv", true},
		{"a.webm", true},
		{"movie.txt", false},
		{"movie.m4v", false},
		{"mp4", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasVideoExtension(tt.name); got != tt.want {
				t.Errorf("HasVideoExtension(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsTrashDirName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".Trash", true},
		{".Trash-1000", true},
		{".hidden", false},
		{".cache", false},
		{"Trash", false},
		{"videos", false},
	}
	for _, tt := range tests {
		if got := IsTrashDirName(tt.name); got != tt.want {
			t.Errorf("IsTrashDirName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHomeTrashDirs(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	dirs := HomeTrashDirs()
	if len(dirs) == 0 || dirs[0] != filepath.Join(dataHome, "Trash") {
		t.Errorf("HomeTrashDirs() = %v, want %s first", dirs, filepath.Join(dataHome, "Trash"))
	}
}

func TestEnsureDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDirectory(dir); err != nil {
		t.Fatalf("EnsureDirectory() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	if err := EnsureDirectory(dir); err != nil {
		t.Errorf("EnsureDirectory() on existing dir error = %v", err)
	}
}
