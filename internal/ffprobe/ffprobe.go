// Package ffprobe provides functions for reading stream metadata using ffprobe.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	verrors "github.com/five82/vidsweep/internal/errors"
)

// DefaultBinary is the probe executable looked up on PATH.
const DefaultBinary = "ffprobe"

// Output represents the JSON output from ffprobe.
type Output struct {
	Streams []Stream `json:"streams"`
}

// Stream is a single entry of the ffprobe streams array. Width and Height
// are kept raw because some demuxers report them as strings.
type Stream struct {
	Index      int             `json:"index"`
	CodecType  string          `json:"codec_type"`
	CodecName  string          `json:"codec_name"`
	Width      json.RawMessage `json:"width"`
	Height     json.RawMessage `json:"height"`
	RFrameRate string          `json:"r_frame_rate"`
}

// Prober runs a media probe against a single file.
type Prober interface {
	Probe(ctx context.Context, path string) (*Output, error)
}

// CommandProber invokes the ffprobe binary.
type CommandProber struct {
	// Binary is the ffprobe executable; DefaultBinary when empty.
	Binary string
}

// NewCommandProber creates a prober for the given binary.
func NewCommandProber(binary string) *CommandProber {
	return &CommandProber{Binary: binary}
}

func (p *CommandProber) binary() string {
	if p == nil || p.Binary == "" {
		return DefaultBinary
	}
	return p.Binary
}

// Probe executes ffprobe and returns the parsed stream list.
func (p *CommandProber) Probe(ctx context.Context, path string) (*Output, error) {
	bin := p.binary()
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-i", path,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, verrors.WrapExecError(bin, err, strings.TrimSpace(stderr.String()))
	}

	return parseFFprobeOutput(output)
}

// parseFFprobeOutput decodes raw ffprobe JSON.
func parseFFprobeOutput(data []byte) (*Output, error) {
	var result Output
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, verrors.NewJSONParseError("failed to parse ffprobe output", err)
	}
	return &result, nil
}

// FirstVideoStream returns the first stream whose codec_type is "video".
func (o *Output) FirstVideoStream() (*Stream, bool) {
	if o == nil {
		return nil, false
	}
	for i := range o.Streams {
		if o.Streams[i].CodecType == "video" {
			return &o.Streams[i], true
		}
	}
	return nil, false
}

// Dimensions parses the stream's width and height as positive integers.
func (s *Stream) Dimensions() (width, height int, err error) {
	width, err = ParseDimension(s.Width)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	height, err = ParseDimension(s.Height)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	return width, height, nil
}

// ParseDimension accepts a JSON number or a numeric JSON string and returns
// it as a positive integer.
func ParseDimension(raw json.RawMessage) (int, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, fmt.Errorf("missing")
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(s)
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", text)
	}
	if n <= 0 {
		return 0, fmt.Errorf("not positive: %d", n)
	}
	return n, nil
}

// ParseFrameRate converts an ffprobe rate such as "30000/1001" or "25" to a
// decimal. A zero denominator yields 0. The string is only ever split and
// parsed as numbers.
func ParseFrameRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	num, den, isRatio := strings.Cut(s, "/")
	if !isRatio {
		return parseRatePart(s)
	}
	if strings.Contains(den, "/") {
		return 0, fmt.Errorf("invalid frame rate %q", s)
	}

	n, err := parseRatePart(num)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
	}
	d, err := parseRatePart(den)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}

func parseRatePart(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("out of range: %q", s)
	}
	return v, nil
}
