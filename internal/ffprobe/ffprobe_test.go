package ffprobe

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	verrors "github.com/five82/vidsweep/internal/errors"
)

// loadTestData loads a JSON fixture from the testdata directory.
func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to load test data %s: %v", filename, err)
	}
	return data
}

func TestParseFFprobeOutput_Valid1080p(t *testing.T) {
	probe, err := parseFFprobeOutput(loadTestData(t, "video_1080p.json"))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	if len(probe.Streams) != 2 {
		t.Fatalf("len(Streams) = %d, want 2", len(probe.Streams))
	}

	video, ok := probe.FirstVideoStream()
	if !ok {
		t.Fatal("FirstVideoStream() found nothing")
	}
	w, h, err := video.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 1920 || h != 1080 {
		t.Errorf("Dimensions() = %dx%d, want 1920x1080", w, h)
	}
	if video.RFrameRate != "30000/1001" {
		t.Errorf("RFrameRate = %q, want %q", video.RFrameRate, "30000/1001")
	}
}

func TestFirstVideoStream_SkipsLeadingAudio(t *testing.T) {
	probe, err := parseFFprobeOutput(loadTestData(t, "audio_first.json"))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	video, ok := probe.FirstVideoStream()
	if !ok {
		t.Fatal("FirstVideoStream() found nothing")
	}
	if video.Index != 1 {
		t.Errorf("FirstVideoStream().Index = %d, want 1", video.Index)
	}

	// String-typed dimensions are accepted.
	w, h, err := video.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 640 || h != 360 {
		t.Errorf("Dimensions() = %dx%d, want 640x360", w, h)
	}
}

func TestFirstVideoStream_None(t *testing.T) {
	probe, err := parseFFprobeOutput(loadTestData(t, "no_video_stream.json"))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}
	if _, ok := probe.FirstVideoStream(); ok {
		t.Error("FirstVideoStream() should report no video stream")
	}

	var nilOutput *Output
	if _, ok := nilOutput.FirstVideoStream(); ok {
		t.Error("nil Output should have no video stream")
	}
}

func TestDimensions_MissingHeight(t *testing.T) {
	probe, err := parseFFprobeOutput(loadTestData(t, "missing_height.json"))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}
	video, _ := probe.FirstVideoStream()
	if _, _, err := video.Dimensions(); err == nil {
		t.Error("Dimensions() expected error for missing height")
	}
}

func TestParseFFprobeOutput_MalformedJSON(t *testing.T) {
	_, err := parseFFprobeOutput([]byte(`{"streams": [}`))
	if err == nil {
		t.Fatal("parseFFprobeOutput() expected error for malformed JSON, got nil")
	}
	if !verrors.IsKind(err, verrors.KindJSONParse) {
		t.Errorf("error kind = %v, want KindJSONParse", err)
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{`1920`, 1920, false},
		{`"1080"`, 1080, false},
		{`" 720 "`, 720, false},
		{``, 0, true},
		{`null`, 0, true},
		{`0`, 0, true},
		{`-5`, 0, true},
		{`"wide"`, 0, true},
		{`12.5`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDimension(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDimension(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDimension(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"30000/1001", 29.97002997, false},
		{"25/0", 0, false},
		{"0/0", 0, false},
		{"25", 25, false},
		{"23.976", 23.976, false},
		{"24/1", 24, false},
		{"", 0, false},
		{" 60/1 ", 60, false},
		{"abc", 0, true},
		{"1/2/3", 0, true},
		{"__import__('os')/1", 0, true},
		{"-30/1", 0, true},
		{"NaN", 0, true},
		{"Inf/1", 0, true},
		{"/", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrameRate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFrameRate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ParseFrameRate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommandProber_MissingBinary(t *testing.T) {
	p := NewCommandProber(filepath.Join(t.TempDir(), "no-such-ffprobe"))
	_, err := p.Probe(context.Background(), "whatever.mp4")
	if err == nil {
		t.Fatal("Probe() expected error for missing binary")
	}
	if !verrors.IsKind(err, verrors.KindCommand) {
		t.Errorf("error kind = %v, want KindCommand", err)
	}
}

func TestCommandProber_FakeBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a unix shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "ffprobe")
	body := "#!/bin/sh\ncat <<'JSON'\n" + string(loadTestData(t, "video_1080p.json")) + "JSON\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}

	out, err := NewCommandProber(script).Probe(context.Background(), "a.mp4")
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if _, ok := out.FirstVideoStream(); !ok {
		t.Error("expected a video stream from fake ffprobe output")
	}
}

func TestCommandProber_Arguments(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a unix shell")
	}

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	script := filepath.Join(dir, "ffprobe")
	body := "#!/bin/sh\nprintf '%s\\n' \"$@\" > '" + argsFile + "'\necho '{\"streams\":[]}'\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := NewCommandProber(script).Probe(context.Background(), "clip.mkv"); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	want := "-v\nerror\n-print_format\njson\n-show_streams\n-i\nclip.mkv\n"
	if string(data) != want {
		t.Errorf("ffprobe args = %q, want %q", data, want)
	}
}

func TestCommandProber_DefaultBinary(t *testing.T) {
	var p *CommandProber
	if got := p.binary(); got != DefaultBinary {
		t.Errorf("binary() = %q, want %q", got, DefaultBinary)
	}
}
