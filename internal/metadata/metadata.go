// Package metadata turns probe output into normalized video records.
package metadata

import (
	"context"
	"os"
	"path/filepath"

	verrors "github.com/five82/vidsweep/internal/errors"
	"github.com/five82/vidsweep/internal/ffprobe"
	"github.com/five82/vidsweep/internal/util"
)

// Record is the normalized metadata of one probed video file. Records are
// created by the Extractor and never modified afterwards.
type Record struct {
	Path      string  `json:"path"`
	Filename  string  `json:"filename"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FPS       float64 `json:"fps"`
	SizeMB    float64 `json:"size_mb"`
	SizeBytes uint64  `json:"size_bytes"`
}

// Extractor probes a file and builds its Record.
type Extractor struct {
	prober ffprobe.Prober
	stat   func(string) (os.FileInfo, error)
}

// NewExtractor creates an extractor backed by the given prober.
func NewExtractor(prober ffprobe.Prober) *Extractor {
	if prober == nil {
		prober = ffprobe.NewCommandProber(ffprobe.DefaultBinary)
	}
	return &Extractor{prober: prober, stat: os.Stat}
}

// Extract probes path and returns its Record. Failures are CoreErrors of
// kind ProbeFailed, NoVideoStream, MalformedMetadata or FileUnreadable; a
// cancelled context is returned as-is.
func (e *Extractor) Extract(ctx context.Context, path string) (Record, error) {
	out, err := e.prober.Probe(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return Record{}, ctx.Err()
		}
		return Record{}, verrors.NewProbeFailedError(path, err)
	}

	video, ok := out.FirstVideoStream()
	if !ok {
		return Record{}, verrors.NewNoVideoStreamError(path)
	}

	width, height, err := video.Dimensions()
	if err != nil {
		return Record{}, verrors.NewMalformedMetadataError("invalid dimensions in "+path, err)
	}

	fps, err := ffprobe.ParseFrameRate(video.RFrameRate)
	if err != nil {
		return Record{}, verrors.NewMalformedMetadataError("invalid frame rate in "+path, err)
	}

	info, err := e.stat(path)
	if err != nil {
		return Record{}, verrors.NewFileUnreadableError(path, err)
	}
	size := uint64(info.Size())

	return Record{
		Path:      path,
		Filename:  filepath.Base(path),
		Width:     width,
		Height:    height,
		FPS:       fps,
		SizeMB:    util.BytesToMegabytes(size),
		SizeBytes: size,
	}, nil
}
