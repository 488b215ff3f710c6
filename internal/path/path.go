// internal/path/path.go
package path

import (
	"reflect"
	"strconv"
	"strings"
)

// String serializes the Path into its canonical string representation.
func (p *Path) String() string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	if p.Absolute {
		sb.WriteByte('/')
	}
	for i, segment := range p.Segments {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(segment.String())
	}
	if sb.Len() == 0 {
		return "."
	}
	return sb.String()
}

// String renders a single segment.
func (s Segment) String() string {
	switch s.Kind {
	case Self:
		return "."
	case Parent:
		return ".."
	case Index:
		return "[" + strconv.Itoa(s.Index) + "]"
	default:
		return s.Name
	}
}

// Equal checks for deep equality between two Path pointers.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Absolute != other.Absolute || len(p.Segments) != len(other.Segments) {
		return false
	}
	return reflect.DeepEqual(p.Segments, other.Segments)
}

// Join builds an absolute path string from already formatted segments.
func Join(segments ...string) string {
	return "/" + strings.Join(segments, "/")
}
