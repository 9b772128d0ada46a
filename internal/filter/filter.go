// Package filter selects video records that satisfy threshold conditions.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/vidsweep/internal/metadata"
)

// Combinator merges the per-condition results into one match decision.
type Combinator string

const (
	And Combinator = "and"
	Or  Combinator = "or"
)

// Sentinel errors for condition validation.
var (
	// ErrInvalidCombinator indicates a mode other than and/or.
	ErrInvalidCombinator = errors.New("invalid combinator")

	// ErrNegativeThreshold indicates a threshold below zero.
	ErrNegativeThreshold = errors.New("threshold must not be negative")
)

// ParseCombinator parses "and" or "or", ignoring case.
func ParseCombinator(s string) (Combinator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and":
		return And, nil
	case "or":
		return Or, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: and, or", ErrInvalidCombinator, s)
	}
}

// String returns the upper-case form used in summaries.
func (c Combinator) String() string {
	return strings.ToUpper(string(c))
}

// Condition holds the optional thresholds. A nil field is not supplied and
// takes no part in evaluation. The resolution check needs both MinWidth and
// MinHeight.
type Condition struct {
	MinWidth   *int
	MinHeight  *int
	MinFPS     *float64
	MinSizeMB  *float64
	Combinator Combinator
}

// Validate rejects negative thresholds and unknown combinators. An empty
// combinator means And.
func (c Condition) Validate() error {
	if c.MinWidth != nil && *c.MinWidth < 0 {
		return fmt.Errorf("%w: min width %d", ErrNegativeThreshold, *c.MinWidth)
	}
	if c.MinHeight != nil && *c.MinHeight < 0 {
		return fmt.Errorf("%w: min height %d", ErrNegativeThreshold, *c.MinHeight)
	}
	if c.MinFPS != nil && *c.MinFPS < 0 {
		return fmt.Errorf("%w: min fps %g", ErrNegativeThreshold, *c.MinFPS)
	}
	if c.MinSizeMB != nil && *c.MinSizeMB < 0 {
		return fmt.Errorf("%w: min size %g MB", ErrNegativeThreshold, *c.MinSizeMB)
	}
	if c.Combinator == "" {
		return nil
	}
	if _, err := ParseCombinator(string(c.Combinator)); err != nil {
		return err
	}
	return nil
}

// HasResolution reports whether the resolution check is active.
func (c Condition) HasResolution() bool {
	return c.MinWidth != nil && c.MinHeight != nil
}

// PartialResolution reports whether exactly one of width/height was
// supplied, in which case the resolution check is skipped.
func (c Condition) PartialResolution() bool {
	return (c.MinWidth == nil) != (c.MinHeight == nil)
}

// Supplied returns the number of active sub-conditions.
func (c Condition) Supplied() int {
	n := 0
	if c.HasResolution() {
		n++
	}
	if c.MinFPS != nil {
		n++
	}
	if c.MinSizeMB != nil {
		n++
	}
	return n
}

// Describe renders the active sub-conditions, e.g.
// "resolution >= 1920x1080 AND fps >= 25.00".
func (c Condition) Describe() string {
	var parts []string
	if c.HasResolution() {
		parts = append(parts, fmt.Sprintf("resolution >= %dx%d", *c.MinWidth, *c.MinHeight))
	}
	if c.MinFPS != nil {
		parts = append(parts, fmt.Sprintf("fps >= %.2f", *c.MinFPS))
	}
	if c.MinSizeMB != nil {
		parts = append(parts, fmt.Sprintf("size >= %.2f MB", *c.MinSizeMB))
	}
	if len(parts) == 0 {
		if c.combinator() == Or {
			return "no conditions (OR matches nothing)"
		}
		return "no conditions (AND matches everything)"
	}
	return strings.Join(parts, " "+c.combinator().String()+" ")
}

func (c Condition) combinator() Combinator {
	if m, err := ParseCombinator(string(c.Combinator)); err == nil {
		return m
	}
	return And
}

// Matches evaluates every supplied sub-condition against r and combines
// them. AND with nothing supplied is true; OR with nothing supplied is false.
func Matches(r metadata.Record, c Condition) bool {
	results := make([]bool, 0, 3)

	if c.HasResolution() {
		results = append(results, r.Width >= *c.MinWidth && r.Height >= *c.MinHeight)
	}
	if c.MinFPS != nil {
		results = append(results, r.FPS >= *c.MinFPS)
	}
	if c.MinSizeMB != nil {
		results = append(results, r.SizeMB >= *c.MinSizeMB)
	}

	if c.combinator() == Or {
		for _, ok := range results {
			if ok {
				return true
			}
		}
		return false
	}

	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}

// Apply returns the records matching c, preserving input order. The input
// slice is not modified.
func Apply(records []metadata.Record, c Condition) []metadata.Record {
	matched := make([]metadata.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Int returns a pointer to v, for building conditions.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for building conditions.
func Float(v float64) *float64 { return &v }
