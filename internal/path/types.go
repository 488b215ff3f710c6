// internal/path/types.go
package path

// Kind distinguishes the four segment forms.
type Kind int

const (
	// Name selects a named child.
	Name Kind = iota
	// Index selects an element by position.
	Index
	// Self stays on the current node (".").
	Self
	// Parent moves to the parent node ("..").
	Parent
)

// Segment represents a single component of a path.
type Segment struct {
	Kind  Kind
	Name  string
	Index int // -1 unless Kind is Index.
}

// NewNameSegment creates a segment selecting a child by name.
func NewNameSegment(name string) Segment {
	return Segment{Kind: Name, Name: name, Index: -1}
}

// NewIndexSegment creates a segment selecting an element by position.
func NewIndexSegment(index int) Segment {
	return Segment{Kind: Index, Index: index}
}

// HasIndex returns true if the segment is an index selector.
func (s Segment) HasIndex() bool {
	return s.Kind == Index
}

// Path is the structured representation of a graph address.
type Path struct {
	Absolute bool
	Segments []Segment
}
