package sim

import (
	"fmt"
	"io"

	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/object"
	"gopkg.in/yaml.v3"
)

// NodeDump is the YAML view of a component and its children.
type NodeDump struct {
	Name         string              `yaml:"name"`
	Path         string              `yaml:"path"`
	Description  string              `yaml:"description,omitempty"`
	Uuid         string              `yaml:"uuid,omitempty"`
	Type         string              `yaml:"type,omitempty"`
	Fields       yaml.Node           `yaml:"fields,omitempty"`
	Failures     map[string]bool     `yaml:"failures,omitempty"`
	EntryPoints  []string            `yaml:"entry_points,omitempty"`
	EventSinks   []string            `yaml:"event_sinks,omitempty"`
	EventSources []string            `yaml:"event_sources,omitempty"`
	References   map[string][]string `yaml:"references,omitempty"`
	Containers   []ContainerDump     `yaml:"containers,omitempty"`
}

// ContainerDump is the YAML view of a container.
type ContainerDump struct {
	Name       string     `yaml:"name"`
	Components []NodeDump `yaml:"components"`
}

// Snapshot builds the dump tree of the whole graph.
func (s *Simulator) Snapshot() NodeDump {
	root := NodeDump{Name: s.Name(), Path: "/", Description: s.Description()}
	for _, c := range s.Containers() {
		root.Containers = append(root.Containers, s.dumpContainer(c))
	}
	return root
}

// Dump writes the graph to w as YAML.
func (s *Simulator) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("dumping graph: %w", err)
	}
	return enc.Close()
}

func (s *Simulator) dumpContainer(c *component.Container) ContainerDump {
	out := ContainerDump{Name: c.Name(), Components: []NodeDump{}}
	for _, child := range c.Items() {
		out.Components = append(out.Components, s.dumpComponent(child))
	}
	return out
}

func (s *Simulator) dumpComponent(c component.Component) NodeDump {
	n := NodeDump{
		Name:        c.Name(),
		Path:        s.PathOf(c),
		Description: c.Description(),
		Uuid:        c.Uuid().String(),
		Type:        fmt.Sprintf("%T", c),
	}
	if f := s.factories.ByUUID(c.Uuid()); f != nil {
		n.Type = f.Name()
	}

	if holder, ok := c.(component.FieldHolder); ok && len(holder.Fields()) > 0 {
		n.Fields = fieldsNode(holder.Fields())
	}
	if fallible, ok := c.(component.Fallible); ok {
		for _, failure := range fallible.Failures() {
			if n.Failures == nil {
				n.Failures = make(map[string]bool)
			}
			n.Failures[failure.Name()] = failure.IsFailed()
		}
	}
	if publisher, ok := c.(component.EntryPointPublisher); ok {
		n.EntryPoints = names(publisher.EntryPoints())
	}
	if consumer, ok := c.(component.EventConsumer); ok {
		n.EventSinks = names(consumer.EventSinks())
	}
	if provider, ok := c.(component.EventProvider); ok {
		n.EventSources = names(provider.EventSources())
	}
	if aggregate, ok := c.(component.Aggregate); ok {
		for _, ref := range aggregate.References() {
			if n.References == nil {
				n.References = make(map[string][]string)
			}
			paths := []string{}
			for _, target := range ref.Items() {
				paths = append(paths, s.PathOf(target))
			}
			n.References[ref.Name()] = paths
		}
	}
	if composite, ok := c.(component.Composite); ok {
		for _, container := range composite.Containers() {
			n.Containers = append(n.Containers, s.dumpContainer(container))
		}
	}
	return n
}

// fieldsNode keeps the declaration order of the fields, which a Go map
// would lose.
func fieldsNode(fields []component.Field) yaml.Node {
	node := yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		var value yaml.Node
		if err := value.Encode(fieldValue(f)); err != nil {
			value = yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("<%v>", err)}
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name()},
			&value,
		)
	}
	return node
}

func fieldValue(f component.Field) any {
	switch field := f.(type) {
	case component.ValueField:
		return field.Value()
	case component.IndexedField:
		items := make([]any, field.Len())
		for i := range items {
			items[i] = fieldValue(field.Item(i))
		}
		return items
	case component.FieldHolder:
		return fieldsNode(field.Fields())
	default:
		return nil
	}
}

func names[T object.Object](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name()
	}
	return out
}
