/*
Package component defines the components of the runtime graph and the
capability facets they expose.

A component embeds *Base for its identity and UUID, then embeds the facets
it needs:

	CompositeFacet   named child Containers
	AggregateFacet   named References to other components
	ConsumerFacet    inbound EventSinks
	ProviderFacet    outbound EventSources
	PublisherFacet   EntryPoints
	FallibleFacet    Failures
	FieldFacet       Fields (the published state)

Facets are zero-value ready. Elements are wired in two explicit steps: build
the element against its parent, then add it to the parent's facet:

	count, err := component.NewField("count", "", c, codec.Int64, true)
	...
	err = c.AddField(count)

Nothing registers itself as a side effect of construction. Collections only
grow; the owner of an element controls its lifetime.
*/
package component
