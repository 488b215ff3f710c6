package object

// Object is a named, described node of the runtime graph.
//
// Parent returns nil for a root. The parent link never owns the parent: a node
// is owned by whichever collection holds it, or by the embedding application
// for roots.
type Object interface {
	Name() string
	Description() string
	Parent() Object
}

// Base is the reusable implementation of Object. Concrete node types embed a
// *Base built by New.
type Base struct {
	name        string
	description string
	parent      Object
}

// New validates name and builds the identity of a node.
func New(name, description string, parent Object) (*Base, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Base{name: name, description: description, parent: parent}, nil
}

// MustNew is like New but panics on an invalid name. It is meant for
// statically known names.
func MustNew(name, description string, parent Object) *Base {
	b, err := New(name, description, parent)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Base) Name() string        { return b.name }
func (b *Base) Description() string { return b.description }
func (b *Base) Parent() Object      { return b.parent }

// SetDescription replaces the description of the node.
func (b *Base) SetDescription(description string) {
	b.description = description
}

// IsIndexName reports whether name is a bracketed index such as "[3]".
func IsIndexName(name string) bool {
	return len(name) > 2 && name[0] == '[' && indexNameRegex.MatchString(name)
}
