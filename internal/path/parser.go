// internal/path/parser.go
package path

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned for strings that do not follow the path grammar.
var ErrInvalidPath = errors.New("invalid path")

var (
	nameSegmentRegex  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	indexSegmentRegex = regexp.MustCompile(`^\[(\d+)\]$`)
)

// Parse creates a Path by parsing its string representation. "/" is the
// root; any other empty segment, as produced by repeated or trailing
// separators, is an error.
func Parse(raw string) (*Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	p := &Path{Absolute: strings.HasPrefix(raw, "/")}
	if raw == "/" {
		return p, nil
	}
	for _, segmentStr := range strings.Split(strings.TrimPrefix(raw, "/"), "/") {
		if segmentStr == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, raw)
		}
		segment, err := parseSegment(segmentStr)
		if err != nil {
			return nil, err
		}
		p.Segments = append(p.Segments, segment)
	}

	return p, nil
}

func parseSegment(raw string) (Segment, error) {
	switch raw {
	case ".":
		return Segment{Kind: Self, Index: -1}, nil
	case "..":
		return Segment{Kind: Parent, Index: -1}, nil
	}

	if nameSegmentRegex.MatchString(raw) {
		return NewNameSegment(raw), nil
	}

	matches := indexSegmentRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Segment{}, fmt.Errorf("%w: invalid path segment format: %q", ErrInvalidPath, raw)
	}
	index, err := strconv.Atoi(matches[1])
	if err != nil {
		return Segment{}, fmt.Errorf("%w: index out of range in segment %q", ErrInvalidPath, raw)
	}
	return NewIndexSegment(index), nil
}
