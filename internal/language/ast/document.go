package ast

// Operations returns the operation definitions of the document in order.
func (d *Document) Operations() []*OperationDefinition {
	var ops []*OperationDefinition
	for _, def := range d.Definitions {
		if op, ok := def.(*OperationDefinition); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Fragments returns the fragment definitions of the document in order.
func (d *Document) Fragments() []*FragmentDefinition {
	var frags []*FragmentDefinition
	for _, def := range d.Definitions {
		if frag, ok := def.(*FragmentDefinition); ok {
			frags = append(frags, frag)
		}
	}
	return frags
}

// Operation finds an operation by name. An empty name selects the only
// operation of a single-operation document.
func (d *Document) Operation(name string) *OperationDefinition {
	ops := d.Operations()
	if name == "" {
		if len(ops) == 1 {
			return ops[0]
		}
		return nil
	}
	for _, op := range ops {
		if op.Name != nil && op.Name.Value == name {
			return op
		}
	}
	return nil
}

// Fragment returns the first fragment definition with the given name.
func (d *Document) Fragment(name string) *FragmentDefinition {
	for _, frag := range d.Fragments() {
		if frag.Name.Value == name {
			return frag
		}
	}
	return nil
}

// OperationName returns the operation's name or "" when anonymous.
func (op *OperationDefinition) OperationName() string {
	if op.Name == nil {
		return ""
	}
	return op.Name.Value
}
