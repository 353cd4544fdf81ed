package ast

// Action tells Walk how to proceed after entering a node.
type Action int

const (
	// Continue visits the node's children.
	Continue Action = iota
	// Skip leaves the node's children unvisited; siblings are still visited.
	Skip
	// Break stops the walk immediately.
	Break
)

// Visitor receives enter and leave events from Walk. Leave is called for
// every entered node whose Enter did not return Break, including skipped
// ones.
type Visitor interface {
	Enter(Node) Action
	Leave(Node)
}

// Walk visits node and its descendants depth-first in source order. It
// returns false if the walk was stopped by Break.
func Walk(node Node, v Visitor) bool {
	switch v.Enter(node) {
	case Break:
		return false
	case Skip:
		v.Leave(node)
		return true
	}
	ok := true
	for _, child := range Children(node) {
		if !Walk(child, v) {
			ok = false
			break
		}
	}
	if !ok {
		return false
	}
	v.Leave(node)
	return true
}

// Children returns the direct children of node in source order. Absent
// optional children are omitted.
func Children(node Node) []Node {
	var c children
	switch n := node.(type) {
	case *Name, *IntValue, *FloatValue, *StringValue, *BooleanValue, *EnumValue, *NullValue:
	case *Document:
		for _, d := range n.Definitions {
			c.add(d)
		}
	case *OperationDefinition:
		c.name(n.Name)
		addAll(&c, n.VariableDefinitions)
		addAll(&c, n.Directives)
		c.selectionSet(n.SelectionSet)
	case *VariableDefinition:
		c.add(n.Variable)
		c.add(n.Type)
		c.add(n.DefaultValue)
		addAll(&c, n.Directives)
	case *Variable:
		c.name(n.Name)
	case *SelectionSet:
		for _, s := range n.Selections {
			c.add(s)
		}
	case *Field:
		c.name(n.Alias)
		c.name(n.Name)
		addAll(&c, n.Arguments)
		addAll(&c, n.Directives)
		c.selectionSet(n.SelectionSet)
	case *Argument:
		c.name(n.Name)
		c.add(n.Value)
	case *FragmentSpread:
		c.name(n.Name)
		addAll(&c, n.Directives)
	case *InlineFragment:
		c.namedType(n.TypeCondition)
		addAll(&c, n.Directives)
		c.selectionSet(n.SelectionSet)
	case *FragmentDefinition:
		c.name(n.Name)
		c.namedType(n.TypeCondition)
		addAll(&c, n.Directives)
		c.selectionSet(n.SelectionSet)
	case *ListValue:
		for _, v := range n.Values {
			c.add(v)
		}
	case *ObjectValue:
		addAll(&c, n.Fields)
	case *ObjectField:
		c.name(n.Name)
		c.add(n.Value)
	case *Directive:
		c.name(n.Name)
		addAll(&c, n.Arguments)
	case *NamedType:
		c.name(n.Name)
	case *ListType:
		c.add(n.Type)
	case *NonNullType:
		c.add(n.Type)
	case *SchemaDefinition:
		addAll(&c, n.Directives)
		addAll(&c, n.OperationTypes)
	case *OperationTypeDefinition:
		c.namedType(n.Type)
	case *ScalarTypeDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Directives)
	case *ObjectTypeDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Interfaces)
		addAll(&c, n.Directives)
		addAll(&c, n.Fields)
	case *FieldDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Arguments)
		c.add(n.Type)
		addAll(&c, n.Directives)
	case *InputValueDefinition:
		c.description(n.Description)
		c.name(n.Name)
		c.add(n.Type)
		c.add(n.DefaultValue)
		addAll(&c, n.Directives)
	case *InterfaceTypeDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Interfaces)
		addAll(&c, n.Directives)
		addAll(&c, n.Fields)
	case *UnionTypeDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Directives)
		addAll(&c, n.Types)
	case *EnumTypeDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Directives)
		addAll(&c, n.Values)
	case *EnumValueDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Directives)
	case *InputObjectTypeDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Directives)
		addAll(&c, n.Fields)
	case *ScalarTypeExtension:
		c.name(n.Name)
		addAll(&c, n.Directives)
	case *ObjectTypeExtension:
		c.name(n.Name)
		addAll(&c, n.Interfaces)
		addAll(&c, n.Directives)
		addAll(&c, n.Fields)
	case *InterfaceTypeExtension:
		c.name(n.Name)
		addAll(&c, n.Interfaces)
		addAll(&c, n.Directives)
		addAll(&c, n.Fields)
	case *UnionTypeExtension:
		c.name(n.Name)
		addAll(&c, n.Directives)
		addAll(&c, n.Types)
	case *EnumTypeExtension:
		c.name(n.Name)
		addAll(&c, n.Directives)
		addAll(&c, n.Values)
	case *InputObjectTypeExtension:
		c.name(n.Name)
		addAll(&c, n.Directives)
		addAll(&c, n.Fields)
	case *DirectiveDefinition:
		c.description(n.Description)
		c.name(n.Name)
		addAll(&c, n.Arguments)
		addAll(&c, n.Locations)
	default:
		panic("ast: unknown node type")
	}
	return c
}

type children []Node

// add appends n unless it is a nil interface. Typed nil pointers are
// handled by the dedicated helpers below.
func (c *children) add(n Node) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *children) name(n *Name) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *children) namedType(n *NamedType) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *children) selectionSet(n *SelectionSet) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *children) description(n *StringValue) {
	if n != nil {
		*c = append(*c, n)
	}
}

func addAll[T Node](c *children, nodes []T) {
	for _, n := range nodes {
		*c = append(*c, n)
	}
}
