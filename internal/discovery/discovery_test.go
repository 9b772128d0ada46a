package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	verrors "github.com/five82/vidsweep/internal/errors"
	"github.com/five82/vidsweep/internal/metadata"
	"github.com/five82/vidsweep/internal/reporter"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

type stubExtractor struct {
	fail  map[string]error
	calls []string
	// onCall runs before each extraction.
	onCall func(path string)
}

func (s *stubExtractor) Extract(ctx context.Context, path string) (metadata.Record, error) {
	s.calls = append(s.calls, path)
	if s.onCall != nil {
		s.onCall(path)
	}
	if err := ctx.Err(); err != nil {
		return metadata.Record{}, err
	}
	if err, ok := s.fail[filepath.Base(path)]; ok {
		return metadata.Record{}, err
	}
	return metadata.Record{Path: path, Filename: filepath.Base(path), Width: 1920, Height: 1080, FPS: 30, SizeMB: 1}, nil
}

type skipCounter struct {
	reporter.NullReporter
	skipped  []reporter.SkippedFile
	summary  *reporter.ScanSummary
	progress int
}

func (c *skipCounter) FileSkipped(s reporter.SkippedFile) { c.skipped = append(c.skipped, s) }
func (c *skipCounter) FileProbed(reporter.ProbeProgress)  { c.progress++ }
func (c *skipCounter) ScanComplete(s reporter.ScanSummary) {
	c.summary = &s
}

func TestFindVideoFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp4"))
	touch(t, filepath.Join(root, "B.MKV"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "deep", "c.webm"))
	touch(t, filepath.Join(root, "sub", "d.Mov"))
	touch(t, filepath.Join(root, ".hidden.mp4"))
	touch(t, filepath.Join(root, ".cache", "e.mp4"))
	touch(t, filepath.Join(root, ".Trash-1000", "files", "old.mp4"))
	touch(t, filepath.Join(root, ".Trash", "older.mkv"))
	touch(t, filepath.Join(root, "noext"))

	files, err := FindVideoFiles(root, nil)
	if err != nil {
		t.Fatalf("FindVideoFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "B.MKV"),
		filepath.Join(root, "a.mp4"),
		filepath.Join(root, "sub", "d.Mov"),
		filepath.Join(root, "sub", "deep", "c.webm"),
		filepath.Join(root, ".hidden.mp4"),
		filepath.Join(root, ".cache", "e.mp4"),
	}
	sort.Strings(files)
	sort.Strings(want)
	if len(files) != len(want) {
		t.Fatalf("FindVideoFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestFindVideoFiles_HiddenRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".videos")
	touch(t, filepath.Join(root, "a.mp4"))

	files, err := FindVideoFiles(root, nil)
	if err != nil {
		t.Fatalf("FindVideoFiles() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("len(files) = %d, want 1", len(files))
	}
}

func TestFindVideoFiles_HomeTrashSkipped(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_DATA_HOME", root)
	touch(t, filepath.Join(root, "Trash", "files", "gone.mp4"))
	touch(t, filepath.Join(root, "keep.mp4"))

	files, err := FindVideoFiles(root, nil)
	if err != nil {
		t.Fatalf("FindVideoFiles() error = %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.mp4" {
		t.Errorf("FindVideoFiles() = %v, want only keep.mp4", files)
	}
}

func TestFindVideoFiles_Symlinks(t *testing.T) {
	outside := t.TempDir()
	linkedDir := filepath.Join(outside, "library")
	touch(t, filepath.Join(linkedDir, "inner.mp4"))
	target := filepath.Join(outside, "target.mp4")
	touch(t, target)

	root := t.TempDir()
	if err := os.Symlink(linkedDir, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(root, "l.mp4")); err != nil {
		t.Fatal(err)
	}

	files, err := FindVideoFiles(root, nil)
	if err != nil {
		t.Fatalf("FindVideoFiles() error = %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(root, "l.mp4") {
		t.Errorf("FindVideoFiles() = %v, want only the symlinked file l.mp4", files)
	}
}

func TestFindVideoFiles_InvalidRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp4")
	touch(t, file)

	tests := []struct {
		name string
		root string
	}{
		{"missing", filepath.Join(dir, "nope")},
		{"file", file},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindVideoFiles(tt.root, nil)
			if !verrors.IsKind(err, verrors.KindPath) {
				t.Errorf("error = %v, want KindPath", err)
			}
		})
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	ext := &stubExtractor{}
	result, err := NewScanner(ext, nil, nil).Scan(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Candidates != 0 || len(result.Records) != 0 || len(result.Skipped) != 0 {
		t.Errorf("Scan() = %+v, want empty result", result)
	}
	if result.Records == nil {
		t.Error("Records should be an empty slice, not nil")
	}
	if len(ext.calls) != 0 {
		t.Errorf("extractor called %d times, want 0", len(ext.calls))
	}
}

func TestScan_SkipsFailuresAndContinues(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp4"))
	touch(t, filepath.Join(root, "b.mkv"))
	touch(t, filepath.Join(root, "c.avi"))

	ext := &stubExtractor{fail: map[string]error{
		"b.mkv": verrors.NewNoVideoStreamError("b.mkv"),
	}}
	rep := &skipCounter{}

	result, err := NewScanner(ext, nil, rep).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.Candidates != 3 {
		t.Errorf("Candidates = %d, want 3", result.Candidates)
	}
	if len(result.Records) != 2 {
		t.Errorf("len(Records) = %d, want 2", len(result.Records))
	}
	if len(result.Skipped) != 1 || filepath.Base(result.Skipped[0].Path) != "b.mkv" {
		t.Fatalf("Skipped = %+v, want b.mkv", result.Skipped)
	}
	if !verrors.IsKind(result.Skipped[0].Err, verrors.KindNoVideoStream) {
		t.Errorf("Skipped[0].Err = %v, want KindNoVideoStream", result.Skipped[0].Err)
	}

	if len(rep.skipped) != 1 {
		t.Errorf("reporter saw %d skips, want 1", len(rep.skipped))
	}
	if rep.progress != 3 {
		t.Errorf("reporter saw %d progress events, want 3", rep.progress)
	}
	if rep.summary == nil || rep.summary.Probed != 2 || rep.summary.Skipped != 1 {
		t.Errorf("ScanComplete summary = %+v", rep.summary)
	}
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp4"))
	touch(t, filepath.Join(root, "b.mp4"))
	touch(t, filepath.Join(root, "c.mp4"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ext := &stubExtractor{}
	ext.onCall = func(string) {
		if len(ext.calls) == 2 {
			cancel()
		}
	}
	rep := &skipCounter{}

	result, err := NewScanner(ext, nil, rep).Scan(ctx, root)
	if !verrors.IsCancelled(err) {
		t.Fatalf("Scan() error = %v, want cancelled", err)
	}
	if result == nil {
		t.Fatal("Scan() should return the partial result on cancellation")
	}
	if len(result.Records) != 1 {
		t.Errorf("len(Records) = %d, want 1", len(result.Records))
	}
	if len(ext.calls) != 2 {
		t.Errorf("extractor called %d times, want 2", len(ext.calls))
	}
	if rep.summary != nil {
		t.Error("ScanComplete should not be reported for a cancelled scan")
	}
}

func TestScan_InvalidRoot(t *testing.T) {
	_, err := NewScanner(&stubExtractor{}, nil, nil).Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Scan() expected error for missing root")
	}
	var coreErr *verrors.CoreError
	if !errors.As(err, &coreErr) || coreErr.Kind != verrors.KindPath {
		t.Errorf("error = %v, want KindPath", err)
	}
}
