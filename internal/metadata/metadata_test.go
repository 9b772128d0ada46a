package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	verrors "github.com/five82/vidsweep/internal/errors"
	"github.com/five82/vidsweep/internal/ffprobe"
)

type stubProber struct {
	out *ffprobe.Output
	err error
}

func (s stubProber) Probe(context.Context, string) (*ffprobe.Output, error) {
	return s.out, s.err
}

func videoOutput(width, height, rate string) *ffprobe.Output {
	return &ffprobe.Output{Streams: []ffprobe.Stream{
		{Index: 0, CodecType: "audio"},
		{Index: 1, CodecType: "video", Width: json.RawMessage(width), Height: json.RawMessage(height), RFrameRate: rate},
	}}
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExtract_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Movie.MP4")
	writeFile(t, path, 3*1048576/2)

	e := NewExtractor(stubProber{out: videoOutput("1920", "1080", "30000/1001")})
	rec, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if rec.Path != path {
		t.Errorf("Path = %q, want %q", rec.Path, path)
	}
	if rec.Filename != "Movie.MP4" {
		t.Errorf("Filename = %q, want Movie.MP4", rec.Filename)
	}
	if rec.Width != 1920 || rec.Height != 1080 {
		t.Errorf("resolution = %dx%d, want 1920x1080", rec.Width, rec.Height)
	}
	if math.Abs(rec.FPS-29.97) > 0.01 {
		t.Errorf("FPS = %v, want ~29.97", rec.FPS)
	}
	if rec.SizeMB != 1.5 {
		t.Errorf("SizeMB = %v, want 1.5", rec.SizeMB)
	}
	if rec.SizeBytes != 3*1048576/2 {
		t.Errorf("SizeBytes = %d", rec.SizeBytes)
	}
}

func TestExtract_ZeroDenominatorFrameRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mkv")
	writeFile(t, path, 10)

	rec, err := NewExtractor(stubProber{out: videoOutput("640", "480", "25/0")}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if rec.FPS != 0 {
		t.Errorf("FPS = %v, want 0", rec.FPS)
	}
}

func TestExtract_Failures(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.mp4")
	writeFile(t, present, 10)
	missing := filepath.Join(dir, "vanished.mp4")

	tests := []struct {
		name   string
		prober stubProber
		path   string
		kind   verrors.ErrorKind
	}{
		{
			name:   "probe fails",
			prober: stubProber{err: errors.New("exit status 1")},
			path:   present,
			kind:   verrors.KindProbeFailed,
		},
		{
			name:   "no video stream",
			prober: stubProber{out: &ffprobe.Output{Streams: []ffprobe.Stream{{CodecType: "audio"}}}},
			path:   present,
			kind:   verrors.KindNoVideoStream,
		},
		{
			name:   "missing width",
			prober: stubProber{out: videoOutput("", "1080", "25")},
			path:   present,
			kind:   verrors.KindMalformedMetadata,
		},
		{
			name:   "non-numeric height",
			prober: stubProber{out: videoOutput("1920", `"tall"`, "25")},
			path:   present,
			kind:   verrors.KindMalformedMetadata,
		},
		{
			name:   "garbage frame rate",
			prober: stubProber{out: videoOutput("1920", "1080", "os.system('rm')")},
			path:   present,
			kind:   verrors.KindMalformedMetadata,
		},
		{
			name:   "file vanished before stat",
			prober: stubProber{out: videoOutput("1920", "1080", "25")},
			path:   missing,
			kind:   verrors.KindFileUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtractor(tt.prober).Extract(context.Background(), tt.path)
			if err == nil {
				t.Fatal("Extract() expected error")
			}
			if !verrors.IsKind(err, tt.kind) {
				t.Errorf("Extract() error = %v, want kind %v", err, tt.kind)
			}
			if !verrors.IsSkippable(err) {
				t.Errorf("extraction failure should be skippable: %v", err)
			}
		})
	}
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor(stubProber{err: context.Canceled}).Extract(ctx, "a.mp4")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}
